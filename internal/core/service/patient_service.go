package service

import (
	"context"
	"fmt"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

type patientService struct {
	crud[domain.Patient]
}

func NewPatientService(store ports.DocumentStore[domain.Patient]) ports.PatientService {
	return &patientService{crud: newCrud(store)}
}

// List fails with ErrNotFound when no patient matches.
func (s *patientService) List(ctx context.Context, f ports.PatientFilter, p ports.Page) (*ports.ListResult[domain.Patient], error) {
	q := ports.Query{}
	if f.Genero != "" {
		q = q.Where("genero", ports.OpEq, f.Genero)
	}
	if f.Nombre != "" {
		q = q.Where("nombre", ports.OpContains, f.Nombre)
	}
	res, err := s.list(ctx, q, p)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	if res.Pagination.Total == 0 {
		return nil, fmt.Errorf("no patients found: %w", domain.ErrNotFound)
	}
	return res, nil
}

func (s *patientService) Get(ctx context.Context, id string) (*domain.Patient, error) {
	return s.store.FindByID(ctx, id)
}

func (s *patientService) Create(ctx context.Context, in ports.PatientInput) (*domain.Patient, error) {
	if blank(in.Nombre) || blank(in.Apellido) || in.Edad == nil || blank(in.Genero) {
		return nil, required("nombre", "apellido", "edad", "genero")
	}
	now := s.now()
	return s.store.Insert(ctx, &domain.Patient{
		Nombre:        *in.Nombre,
		Apellido:      *in.Apellido,
		Edad:          *in.Edad,
		Genero:        *in.Genero,
		Diagnostico:   deref(in.Diagnostico),
		FechaRegistro: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func (s *patientService) Seed(ctx context.Context) ([]domain.Patient, error) {
	n, err := s.store.Count(ctx, ports.Query{})
	if err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}
	if n > 0 {
		return nil, domain.NewConflictError("patients already loaded")
	}
	now := s.now()
	docs := domain.SamplePatients()
	for i := range docs {
		docs[i].FechaRegistro = now
		docs[i].CreatedAt = now
		docs[i].UpdatedAt = now
	}
	return s.store.InsertMany(ctx, docs)
}

// Update applies only the fields present in in.
func (s *patientService) Update(ctx context.Context, id string, in ports.PatientInput) (*domain.Patient, error) {
	set := setter{}
	set.str("nombre", in.Nombre)
	set.str("apellido", in.Apellido)
	set.val("edad", deref(in.Edad), in.Edad != nil)
	set.str("genero", in.Genero)
	set.str("diagnostico", in.Diagnostico)
	if err := set.stamp(s.now()); err != nil {
		return nil, err
	}
	return s.store.UpdateByID(ctx, id, set)
}

func (s *patientService) Delete(ctx context.Context, id string) (*domain.Patient, error) {
	return s.store.DeleteByID(ctx, id)
}
