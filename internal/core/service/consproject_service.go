package service

import (
	"context"
	"fmt"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

type consProjectService struct {
	crud[domain.ConsProject]
}

// NewConsProjectService returns a ConsProjectService backed by store.
func NewConsProjectService(store ports.DocumentStore[domain.ConsProject]) ports.ConsProjectService {
	return &consProjectService{crud: newCrud(store)}
}

func (s *consProjectService) List(ctx context.Context, f ports.ConsProjectFilter, p ports.Page) (*ports.ListResult[domain.ConsProject], error) {
	q := ports.Query{}
	if f.Status != "" {
		q = q.Where("status", ports.OpEq, f.Status)
	}
	if f.Client != "" {
		q = q.Where("client", ports.OpContains, f.Client)
	}
	if f.Place != "" {
		q = q.Where("place", ports.OpContains, f.Place)
	}
	res, err := s.list(ctx, q, p)
	if err != nil {
		return nil, fmt.Errorf("list cons projects: %w", err)
	}
	return res, nil
}

func (s *consProjectService) Get(ctx context.Context, id string) (*domain.ConsProject, error) {
	return s.store.FindByID(ctx, id)
}

func (s *consProjectService) Create(ctx context.Context, in ports.ConsProjectInput) (*domain.ConsProject, error) {
	if blank(in.Name) || blank(in.Place) || blank(in.Client) {
		return nil, required("name", "place", "client")
	}
	now := s.now()
	doc := &domain.ConsProject{
		Name:      *in.Name,
		Place:     *in.Place,
		Client:    *in.Client,
		Status:    domain.ConsProjectPending,
		StartDate: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Status != nil {
		doc.Status = domain.ConsProjectStatus(*in.Status)
	}
	if in.StartDate != nil {
		doc.StartDate = in.StartDate.UTC()
	}
	return s.store.Insert(ctx, doc)
}

func (s *consProjectService) Update(ctx context.Context, id string, in ports.ConsProjectInput) (*domain.ConsProject, error) {
	set := setter{}
	set.str("name", in.Name)
	set.str("place", in.Place)
	set.str("status", in.Status)
	set.str("client", in.Client)
	set.val("startDate", deref(in.StartDate), in.StartDate != nil)
	if err := set.stamp(s.now()); err != nil {
		return nil, err
	}
	return s.store.UpdateByID(ctx, id, set)
}

func (s *consProjectService) Delete(ctx context.Context, id string) (*domain.ConsProject, error) {
	return s.store.DeleteByID(ctx, id)
}
