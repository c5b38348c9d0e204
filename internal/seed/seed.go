// Package seed loads the demo accounts and sample construction data.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// Account is a demo login created by Users.
type Account struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

var Accounts = []Account{
	{Name: "Admin", Email: "admin@example.com", Password: "admin123", Role: domain.RoleAdmin},
	{Name: "Juan Pérez", Email: "juan.perez@example.com", Password: "analyst123", Role: domain.RoleAnalyst},
	{Name: "Carlos Ramírez", Email: "carlos.ramirez@example.com", Password: "visitor123", Role: domain.RoleVisitor},
}

type sampleProject struct {
	name, place, client string
	status              domain.ConsProjectStatus
	start               string
}

var sampleProjects = []sampleProject{
	{"Construcción Torre Corporativa", "Ciudad de México, CDMX", "Corporativo XYZ S.A. de C.V.", domain.ConsProjectInProgress, "2024-01-15"},
	{"Remodelación Centro Comercial", "Guadalajara, Jalisco", "Inversiones Mall SA", domain.ConsProjectInProgress, "2024-03-10"},
	{"Edificio Residencial Las Palmas", "Monterrey, Nuevo León", "Desarrollos Inmobiliarios Norte", domain.ConsProjectCompleted, "2023-06-01"},
	{"Puente Vehicular Norte", "Querétaro, Querétaro", "Gobierno del Estado de Querétaro", domain.ConsProjectPending, "2024-12-01"},
	{"Planta Industrial Automotriz", "Aguascalientes, Aguascalientes", "AutoParts International", domain.ConsProjectInProgress, "2024-02-20"},
}

// project is an index into sampleProjects.
type sampleVehicle struct {
	plate, kind string
	project     int
	state       domain.VehicleState
}

var sampleVehicles = []sampleVehicle{
	{"ABC-123-XY", "Camión de volteo", 0, domain.VehicleActive},
	{"DEF-456-ZW", "Retroexcavadora", 0, domain.VehicleActive},
	{"GHI-789-UV", "Grúa torre", 1, domain.VehicleInMaintenance},
	{"JKL-012-ST", "Camión mezclador", 1, domain.VehicleActive},
	{"MNO-345-QR", "Montacargas", 2, domain.VehicleInactive},
	{"PQR-678-OP", "Bulldozer", 4, domain.VehicleActive},
	{"STU-901-NM", "Camioneta pickup", 4, domain.VehicleActive},
	{"VWX-234-KL", "Excavadora", 0, domain.VehicleActive},
}

// Summary reports what Data inserted.
type Summary struct {
	Projects int
	Vehicles int
	Accesses int
}

// Seeder writes through the regular services so every invariant they enforce
// (unique emails and plates, hashed passwords, project references) holds for
// seeded data too.
type Seeder struct {
	users    ports.UserService
	projects ports.ConsProjectService
	vehicles ports.VehicleService
	access   ports.AccessService
	log      zerolog.Logger
}

func New(users ports.UserService, projects ports.ConsProjectService, vehicles ports.VehicleService, access ports.AccessService, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, projects: projects, vehicles: vehicles, access: access, log: log}
}

// Users creates the demo accounts, skipping emails that already exist.
// It returns the number of accounts created.
func (s *Seeder) Users(ctx context.Context) (int, error) {
	created := 0
	for _, a := range Accounts {
		role := string(a.Role)
		active := true
		_, err := s.users.Create(ctx, ports.UserInput{
			Name:     &a.Name,
			Email:    &a.Email,
			Password: &a.Password,
			Role:     &role,
			IsActive: &active,
		})
		if errors.Is(err, domain.ErrConflict) {
			s.log.Info().Str("email", a.Email).Msg("user already exists, skipping")
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed user %s: %w", a.Email, err)
		}
		created++
		s.log.Info().Str("email", a.Email).Str("role", role).Msg("user created")
	}
	return created, nil
}

// Data inserts the sample construction projects, their vehicles and a few
// access records attributed to existing users. At least one user must exist.
func (s *Seeder) Data(ctx context.Context) (Summary, error) {
	var sum Summary

	users, err := s.users.List(ctx, ports.UserFilter{}, ports.NewPage(1, ports.MaxPageLimit, ports.MaxPageLimit))
	if err != nil {
		return sum, fmt.Errorf("seed data: %w", err)
	}
	if len(users.Data) == 0 {
		return sum, errors.New("seed data: no users found, run with -users first")
	}

	projects := make([]*domain.ConsProject, 0, len(sampleProjects))
	for _, p := range sampleProjects {
		start, err := time.Parse(time.DateOnly, p.start)
		if err != nil {
			return sum, fmt.Errorf("seed project %q: %w", p.name, err)
		}
		status := string(p.status)
		doc, err := s.projects.Create(ctx, ports.ConsProjectInput{
			Name:      &p.name,
			Place:     &p.place,
			Client:    &p.client,
			Status:    &status,
			StartDate: &start,
		})
		if err != nil {
			return sum, fmt.Errorf("seed project %q: %w", p.name, err)
		}
		projects = append(projects, doc)
	}
	sum.Projects = len(projects)

	vehicles := make([]*domain.Vehicle, 0, len(sampleVehicles))
	for _, v := range sampleVehicles {
		state := string(v.state)
		doc, err := s.vehicles.Create(ctx, ports.VehicleInput{
			Plate:   &v.plate,
			Type:    &v.kind,
			Project: &projects[v.project].ID,
			State:   &state,
		})
		if err != nil {
			return sum, fmt.Errorf("seed vehicle %s: %w", v.plate, err)
		}
		vehicles = append(vehicles, doc)
	}
	sum.Vehicles = len(vehicles)

	for _, rec := range sampleAccesses(users.Data, projects, vehicles) {
		if err := s.access.Record(ctx, rec); err != nil {
			return sum, fmt.Errorf("seed access: %w", err)
		}
		sum.Accesses++
	}

	s.log.Info().
		Int("projects", sum.Projects).
		Int("vehicles", sum.Vehicles).
		Int("accesses", sum.Accesses).
		Msg("sample data loaded")
	return sum, nil
}

func sampleAccesses(users []domain.User, projects []*domain.ConsProject, vehicles []*domain.Vehicle) []domain.AccessRecord {
	var out []domain.AccessRecord
	for i := 0; i < len(users) && i < 3; i++ {
		u := users[i].ID
		out = append(out,
			domain.AccessRecord{User: u, Resource: domain.ResourceConsProject, ResourceID: projects[i%len(projects)].ID, Action: domain.ActionRetrieve},
			domain.AccessRecord{User: u, Resource: domain.ResourceConsProject, ResourceID: projects[(i+1)%len(projects)].ID, Action: domain.ActionUpdate},
			domain.AccessRecord{User: u, Resource: domain.ResourceVehicle, ResourceID: vehicles[i%len(vehicles)].ID, Action: domain.ActionRetrieve},
		)
	}

	admin := users[0]
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			admin = u
			break
		}
	}
	out = append(out,
		domain.AccessRecord{User: admin.ID, Resource: domain.ResourceConsProject, ResourceID: projects[0].ID, Action: domain.ActionCreate},
		domain.AccessRecord{User: admin.ID, Resource: domain.ResourceVehicle, ResourceID: vehicles[0].ID, Action: domain.ActionDelete},
	)
	if len(users) > 1 {
		out = append(out, domain.AccessRecord{User: admin.ID, Resource: domain.ResourceUser, ResourceID: users[1].ID, Action: domain.ActionRetrieve})
	}
	return out
}
