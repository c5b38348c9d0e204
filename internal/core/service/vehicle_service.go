package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

type vehicleService struct {
	crud[domain.Vehicle]
	projects ports.DocumentStore[domain.ConsProject]
}

// NewVehicleService returns a VehicleService. Vehicles reference construction
// projects, which are populated on every read.
func NewVehicleService(store ports.DocumentStore[domain.Vehicle], projects ports.DocumentStore[domain.ConsProject]) ports.VehicleService {
	return &vehicleService{crud: newCrud(store), projects: projects}
}

func (s *vehicleService) List(ctx context.Context, f ports.VehicleFilter, p ports.Page) (*ports.ListResult[domain.Vehicle], error) {
	q := ports.Query{}
	if f.State != "" {
		q = q.Where("state", ports.OpEq, f.State)
	}
	if f.Type != "" {
		q = q.Where("type", ports.OpContains, f.Type)
	}
	if f.Project != "" {
		q = q.Where("project", ports.OpEq, f.Project)
	}
	res, err := s.list(ctx, q, p)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	if err := s.populate(ctx, ptrs(res.Data)...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *vehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	v, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return v, s.populate(ctx, v)
}

func (s *vehicleService) Create(ctx context.Context, in ports.VehicleInput) (*domain.Vehicle, error) {
	if blank(in.Plate) || blank(in.Type) {
		return nil, required("plate", "type")
	}
	if err := s.ensurePlateFree(ctx, *in.Plate, ""); err != nil {
		return nil, err
	}
	if err := s.ensureProject(ctx, in.Project); err != nil {
		return nil, err
	}

	now := s.now()
	doc := &domain.Vehicle{
		Plate:     *in.Plate,
		Type:      *in.Type,
		ProjectID: deref(in.Project),
		State:     domain.VehicleActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.State != nil {
		doc.State = domain.VehicleState(*in.State)
	}
	created, err := s.store.Insert(ctx, doc)
	if err != nil {
		return nil, err
	}
	return created, s.populate(ctx, created)
}

func (s *vehicleService) Update(ctx context.Context, id string, in ports.VehicleInput) (*domain.Vehicle, error) {
	if in.Plate != nil {
		if err := s.ensurePlateFree(ctx, *in.Plate, id); err != nil {
			return nil, err
		}
	}
	if err := s.ensureProject(ctx, in.Project); err != nil {
		return nil, err
	}

	set := setter{}
	set.str("plate", in.Plate)
	set.str("type", in.Type)
	set.str("project", in.Project)
	set.str("state", in.State)
	if err := set.stamp(s.now()); err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateByID(ctx, id, set)
	if err != nil {
		return nil, err
	}
	return updated, s.populate(ctx, updated)
}

func (s *vehicleService) Delete(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.store.DeleteByID(ctx, id)
}

// ensurePlateFree fails with ErrConflict if another vehicle already uses plate.
func (s *vehicleService) ensurePlateFree(ctx context.Context, plate, exceptID string) error {
	q := ports.Query{}.Where("plate", ports.OpEq, plate)
	if exceptID != "" {
		q = q.Where("_id", ports.OpNe, exceptID)
	}
	_, err := s.store.FindOne(ctx, q)
	switch {
	case err == nil:
		return domain.NewConflictError(fmt.Sprintf("vehicle with plate %q already exists", plate))
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *vehicleService) ensureProject(ctx context.Context, projectID *string) error {
	if projectID == nil || *projectID == "" {
		return nil
	}
	if _, err := s.projects.FindByID(ctx, *projectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return domain.NewValidationError("project does not reference an existing construction project")
		}
		return err
	}
	return nil
}

// populate fills Vehicle.Project from ProjectID, loading each project once.
func (s *vehicleService) populate(ctx context.Context, vehicles ...*domain.Vehicle) error {
	cache := make(map[string]*domain.ProjectRef)
	for _, v := range vehicles {
		if v.ProjectID == "" {
			continue
		}
		ref, seen := cache[v.ProjectID]
		if !seen {
			p, err := s.projects.FindByID(ctx, v.ProjectID)
			switch {
			case err == nil:
				ref = &domain.ProjectRef{ID: p.ID, Name: p.Name, Place: p.Place, Client: p.Client, Status: p.Status}
			case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidID):
			default:
				return fmt.Errorf("populate vehicle project: %w", err)
			}
			cache[v.ProjectID] = ref
		}
		v.Project = ref
	}
	return nil
}
