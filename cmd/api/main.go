// @title                       Topicos Web API
// @version                     1.0
// @description                 Role-gated REST API for construction projects, vehicles and users with an access audit trail.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/topicosweb/backend/docs"
	"github.com/topicosweb/backend/internal/api"
	"github.com/topicosweb/backend/internal/api/handler"
	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/service"
	"github.com/topicosweb/backend/internal/infrastructure/db/mongo"
	"github.com/topicosweb/backend/internal/infrastructure/db/redis"
	"github.com/topicosweb/backend/internal/infrastructure/queue"
	"github.com/topicosweb/backend/internal/pkg/config"
	"github.com/topicosweb/backend/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty || cfg.IsDevelopment(),
		Service: "topicos-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "topicos-api",
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to redis")
	}

	// --- Stores ---
	projectStore := mongo.NewStore[domain.ConsProject](db, domain.ResourceConsProject.Collection())
	vehicleStore := mongo.NewStore[domain.Vehicle](db, domain.ResourceVehicle.Collection())
	userStore := mongo.NewStore[domain.User](db, domain.ResourceUser.Collection())
	eventStore := mongo.NewStore[domain.Event](db, domain.ResourceEvent.Collection())
	productStore := mongo.NewStore[domain.Product](db, domain.ResourceProduct.Collection())
	projectsStore := mongo.NewStore[domain.Project](db, domain.ResourceProject.Collection())
	patientStore := mongo.NewStore[domain.Patient](db, domain.ResourcePatient.Collection())

	// --- Services ---
	tokens := service.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	accessService := service.NewAccessService(
		mongo.NewAccessRepository(db),
		userStore,
		mongo.NewResolver(db),
		logger.Component("access"),
	)
	services := api.Services{
		Auth:         service.NewAuthService(userStore, tokens),
		ConsProjects: service.NewConsProjectService(projectStore),
		Vehicles:     service.NewVehicleService(vehicleStore, projectStore),
		Users:        service.NewUserService(userStore),
		Events:       service.NewEventService(eventStore, mongo.NewSequence(db)),
		Products:     service.NewProductService(productStore),
		Projects:     service.NewProjectService(projectsStore),
		Patients:     service.NewPatientService(patientStore),
		Access:       accessService,
		Reports: service.NewReportService(
			projectStore, vehicleStore, userStore,
			redis.NewReportCache(rdb), cfg.Redis.ReportCacheTTL,
			logger.Component("reports"),
		),
	}

	// --- Access recorder ---
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	dispatcher := queue.NewAccessDispatcher(cfg.Audit.Workers, cfg.Audit.QueueSize, accessService, logger.Component("dispatcher"))
	dispatcher.Start(dispatcherCtx)

	e := api.NewRouter(api.Deps{
		Services: services,
		Tokens:   tokens,
		Sink:     dispatcher,
		Health: map[string]handler.Pinger{
			"mongodb": handler.PingFunc(func(ctx context.Context) error { return mongo.Ping(ctx, db) }),
			"redis":   handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		},
		Log:        logger.Component("http"),
		LoginRate:  cfg.RateLimit.LoginRate,
		LoginBurst: cfg.RateLimit.LoginBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Order matters: stop accepting requests, drain pending access records, then close stores.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("access dispatcher did not drain")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	log.Info().Msg("stopped")
}
