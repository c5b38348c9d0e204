package ports

import (
	"context"
	"time"

	"github.com/topicosweb/backend/internal/core/domain"
)

// CRUDService is the shape shared by every resource service. F filters lists,
// In carries create/update payloads; nil fields in In are left untouched on update.
type CRUDService[T, F, In any] interface {
	List(ctx context.Context, f F, p Page) (*ListResult[T], error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id string, in In) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// ── Construction projects ─────────────────────────────────────────────────────

type ConsProjectFilter struct {
	Status string
	Client string
	Place  string
}

type ConsProjectInput struct {
	Name      *string    `json:"name" validate:"omitempty,min=1"`
	Place     *string    `json:"place" validate:"omitempty,min=1"`
	Status    *string    `json:"status" validate:"omitempty,oneof='Pending' 'In Progress' 'Completed'"`
	StartDate *time.Time `json:"startDate"`
	Client    *string    `json:"client" validate:"omitempty,min=1"`
}

type ConsProjectService = CRUDService[domain.ConsProject, ConsProjectFilter, ConsProjectInput]

// ── Vehicles ──────────────────────────────────────────────────────────────────

type VehicleFilter struct {
	State   string
	Type    string
	Project string
}

type VehicleInput struct {
	Plate   *string `json:"plate" validate:"omitempty,min=1"`
	Type    *string `json:"type" validate:"omitempty,min=1"`
	Project *string `json:"project" validate:"omitempty,objectid|len=0"`
	State   *string `json:"state" validate:"omitempty,oneof=active inactive 'in maintenance'"`
}

type VehicleService = CRUDService[domain.Vehicle, VehicleFilter, VehicleInput]

// ── Users ─────────────────────────────────────────────────────────────────────

type UserFilter struct {
	Role     string
	Name     string
	IsActive *bool
}

type UserInput struct {
	Name     *string `json:"name" validate:"omitempty,min=2"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=visitor analyst admin"`
	IsActive *bool   `json:"isActive"`
}

type UserService interface {
	CRUDService[domain.User, UserFilter, UserInput]
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ── Events ────────────────────────────────────────────────────────────────────

type EventFilter struct {
	Name string
}

type EventInput struct {
	Name *string    `json:"name" validate:"omitempty,min=1"`
	Date *time.Time `json:"date"`
}

type EventService = CRUDService[domain.Event, EventFilter, EventInput]

// ── Products ──────────────────────────────────────────────────────────────────

type ProductFilter struct {
	Name     string
	Category string
}

type ProductInput struct {
	Name     *string  `json:"name" validate:"omitempty,min=1"`
	Category *string  `json:"category" validate:"omitempty,min=1"`
	Price    *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock    *int     `json:"stock" validate:"omitempty,gte=0"`
}

type ProductService interface {
	CRUDService[domain.Product, ProductFilter, ProductInput]
	Search(ctx context.Context, f ProductFilter) ([]domain.Product, error)
}

// ── Projects ──────────────────────────────────────────────────────────────────

type ProjectFilter struct {
	Status string
	Title  string
}

type TaskInput struct {
	TaskName  string `json:"taskName" validate:"required"`
	Completed bool   `json:"completed"`
}

type ProjectInput struct {
	Title       *string      `json:"title" validate:"omitempty,min=1"`
	Description *string      `json:"description" validate:"omitempty,min=1"`
	StartDate   *time.Time   `json:"startDate"`
	DueDate     *time.Time   `json:"dueDate"`
	Status      *string      `json:"status" validate:"omitempty,oneof='Pending' 'In Progress' 'Completed'"`
	Tasks       *[]TaskInput `json:"tasks" validate:"omitempty,dive"`
}

type ProjectService = CRUDService[domain.Project, ProjectFilter, ProjectInput]

// ── Patients ──────────────────────────────────────────────────────────────────

type PatientFilter struct {
	Genero string
	Nombre string
}

type PatientInput struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=1"`
	Apellido    *string `json:"apellido" validate:"omitempty,min=1"`
	Edad        *int    `json:"edad" validate:"omitempty,gte=0"`
	Genero      *string `json:"genero" validate:"omitempty,oneof=Masculino Femenino Otro"`
	Diagnostico *string `json:"diagnostico" validate:"omitempty,min=1"`
}

type PatientService interface {
	CRUDService[domain.Patient, PatientFilter, PatientInput]
	// Seed loads the sample data set, failing with domain.ErrConflict if any patient exists.
	Seed(ctx context.Context) ([]domain.Patient, error)
}
