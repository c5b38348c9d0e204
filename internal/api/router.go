package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/topicosweb/backend/internal/api/handler"
	"github.com/topicosweb/backend/internal/api/middleware"
	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// Services groups the business services the routes delegate to.
type Services struct {
	Auth         ports.AuthService
	ConsProjects ports.ConsProjectService
	Vehicles     ports.VehicleService
	Users        ports.UserService
	Events       ports.EventService
	Products     ports.ProductService
	Projects     ports.ProjectService
	Patients     ports.PatientService
	Access       ports.AccessService
	Reports      ports.ReportService
}

// Deps is everything NewRouter needs to assemble the HTTP surface.
type Deps struct {
	Services Services
	Tokens   ports.TokenVerifier
	Sink     ports.AccessSink
	Health   map[string]handler.Pinger
	Log      zerolog.Logger

	// LoginRate and LoginBurst throttle POST /api/auth/login per client IP.
	// A zero LoginRate disables the limiter.
	LoginRate  float64
	LoginBurst int

	// Registerer receives the HTTP metrics; nil uses the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "topicos",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health)
	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Gates ---
	required := middleware.Authenticate(d.Tokens, middleware.Required, d.Log)
	optional := middleware.Authenticate(d.Tokens, middleware.Optional, d.Log)
	analyst := middleware.RequireRole(domain.RoleAnalyst)
	admin := middleware.RequireRole(domain.RoleAdmin)

	api := e.Group("/api")
	api.GET("/", handler.Home)
	api.GET("", handler.Home)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Services.Auth)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, loginLimiter(d.LoginRate, d.LoginBurst)...)
	auth.GET("/check-status", authHandler.CheckStatus, required)

	s := d.Services
	r := routes{sink: d.Sink}

	r.mount(api.Group("/cons-projects", required), domain.ResourceConsProject,
		handler.NewConsProjectHandler(s.ConsProjects),
		gates{list: chain(analyst), get: chain(analyst), create: chain(admin), update: chain(admin), delete: chain(admin)})

	r.mount(api.Group("/vehicles", required), domain.ResourceVehicle,
		handler.NewVehicleHandler(s.Vehicles),
		gates{create: chain(analyst), update: chain(analyst), delete: chain(admin)})

	r.mount(api.Group("/users", required), domain.ResourceUser,
		handler.NewUserHandler(s.Users),
		gates{list: chain(analyst), get: chain(analyst), create: chain(admin), update: chain(admin), delete: chain(admin)})

	r.mount(api.Group("/events"), domain.ResourceEvent,
		handler.NewEventHandler(s.Events),
		gates{list: chain(optional), get: chain(optional), create: chain(required, analyst), update: chain(required, analyst), delete: chain(required, admin)})

	products := handler.NewProductHandler(s.Products)
	productGroup := api.Group("/products")
	productGroup.GET("/find", products.Find, optional)
	r.mount(productGroup, domain.ResourceProduct, products,
		gates{list: chain(optional), get: chain(optional), create: chain(required, analyst), update: chain(required, analyst), delete: chain(required, admin)})

	r.mount(api.Group("/projects"), domain.ResourceProject,
		handler.NewProjectHandler(s.Projects),
		gates{list: chain(optional), get: chain(optional), create: chain(required, analyst), update: chain(required, analyst), delete: chain(required, admin)})

	patients := handler.NewPatientHandler(s.Patients)
	patientGroup := api.Group("/patients", required)
	patientGroup.POST("/cargar-datos", patients.Seed, admin, middleware.LogAccess(d.Sink, domain.ResourcePatient, domain.ActionCreate))
	r.mount(patientGroup, domain.ResourcePatient, patients,
		gates{create: chain(analyst), update: chain(analyst), delete: chain(admin)})

	// --- Reports ---
	reportHandler := handler.NewReportHandler(s.Access, s.Reports)
	reports := api.Group("/reports", required, analyst)
	reports.GET("/access", reportHandler.Access)
	reports.POST("/collection", reportHandler.Collection)

	return e
}

// crudHandler is the route surface every resource handler exposes.
type crudHandler interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

// gates lists the middleware placed in front of each CRUD route, ahead of the recorder.
type gates struct {
	list, get, create, update, delete []echo.MiddlewareFunc
}

func chain(mw ...echo.MiddlewareFunc) []echo.MiddlewareFunc { return mw }

type routes struct {
	sink ports.AccessSink
}

// mount registers the five CRUD routes of a resource on g. Each route runs its
// gates first and the access recorder last, so only authorised requests reach it.
func (r routes) mount(g *echo.Group, tag domain.ResourceTag, h crudHandler, gt gates) {
	g.GET("", h.List, append(gt.list, middleware.LogListAccess(r.sink, tag))...)
	g.GET("/:id", h.Get, append(gt.get, middleware.LogAccess(r.sink, tag, domain.ActionRetrieve))...)
	g.POST("", h.Create, append(gt.create, middleware.LogAccess(r.sink, tag, domain.ActionCreate))...)
	g.PUT("/:id", h.Update, append(gt.update, middleware.LogAccess(r.sink, tag, domain.ActionUpdate))...)
	g.DELETE("/:id", h.Delete, append(gt.delete, middleware.LogAccess(r.sink, tag, domain.ActionDelete))...)
}

// loginLimiter returns a per-IP rate limiter for the login route, or nothing
// when limiting is disabled.
func loginLimiter(perSecond float64, burst int) []echo.MiddlewareFunc {
	if perSecond <= 0 {
		return nil
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return []echo.MiddlewareFunc{echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
		},
	})}
}
