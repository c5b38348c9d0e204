package service

import (
	"context"
	"errors"
	"testing"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

func newProductStore(products ...domain.Product) *memStore[domain.Product] {
	return &memStore[domain.Product]{
		docs:  products,
		id:    func(p *domain.Product) string { return p.ID },
		setID: func(p *domain.Product, id string) { p.ID = id },
		field: func(*domain.Product, string) any { return nil },
	}
}

func newTrackedProjectStore(projects ...domain.Project) *memStore[domain.Project] {
	return &memStore[domain.Project]{
		docs:  projects,
		id:    func(p *domain.Project) string { return p.ID },
		setID: func(p *domain.Project, id string) { p.ID = id },
		field: func(p *domain.Project, f string) any {
			if f == "status" {
				return p.Status
			}
			return nil
		},
	}
}

func TestProductService_SearchNeedsCriteria(t *testing.T) {
	svc := NewProductService(newProductStore())

	_, err := svc.Search(context.Background(), ports.ProductFilter{})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestProductService_SearchEmptyIsSlice(t *testing.T) {
	svc := NewProductService(newProductStore())

	items, err := svc.Search(context.Background(), ports.ProductFilter{Category: "tools"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestProductService_Create(t *testing.T) {
	store := newProductStore()
	svc := NewProductService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, ports.ProductInput{Name: ptr("Drill")})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for missing fields, got %v", err)
	}

	p, err := svc.Create(ctx, ports.ProductInput{
		Name:     ptr("Drill"),
		Category: ptr("tools"),
		Price:    ptr(49.9),
		Stock:    ptr(0),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.ID == "" || p.Stock != 0 || p.Price != 49.9 {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.CreatedAt.IsZero() || !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("timestamps not stamped: %+v", p)
	}
	if len(store.docs) != 1 {
		t.Fatalf("expected 1 stored product, got %d", len(store.docs))
	}
}

func TestProductService_UpdateSetsOnlyGivenFields(t *testing.T) {
	store := newProductStore(domain.Product{ID: "p1", Name: "Drill"})
	svc := NewProductService(store)

	if _, err := svc.Update(context.Background(), "p1", ports.ProductInput{Stock: ptr(7)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if store.lastSet["stock"] != 7 {
		t.Fatalf("stock not in $set: %+v", store.lastSet)
	}
	if _, ok := store.lastSet["price"]; ok {
		t.Fatalf("absent price must not be set: %+v", store.lastSet)
	}
}

func TestProjectService_CreateDefaultsAndTasks(t *testing.T) {
	svc := NewProjectService(newTrackedProjectStore())

	p, err := svc.Create(context.Background(), ports.ProjectInput{
		Title:       ptr("Website"),
		Description: ptr("Relaunch"),
		Tasks:       &[]ports.TaskInput{{TaskName: "design"}, {TaskName: "build", Completed: true}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Status != domain.ConsProjectPending {
		t.Fatalf("expected default status %q, got %q", domain.ConsProjectPending, p.Status)
	}
	if len(p.Tasks) != 2 || !p.Tasks[1].Completed {
		t.Fatalf("unexpected tasks: %+v", p.Tasks)
	}
}

func TestProjectService_CreateWithoutTasks(t *testing.T) {
	svc := NewProjectService(newTrackedProjectStore())

	p, err := svc.Create(context.Background(), ports.ProjectInput{Title: ptr("A"), Description: ptr("B")})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Tasks == nil {
		t.Fatalf("tasks should be an empty list, not nil")
	}
}

func TestProjectService_BlankTaskNameRejected(t *testing.T) {
	store := newTrackedProjectStore(domain.Project{ID: "p1", Title: "A"})
	svc := NewProjectService(store)
	ctx := context.Background()

	tasks := &[]ports.TaskInput{{TaskName: "ok"}, {TaskName: "  "}}

	_, err := svc.Create(ctx, ports.ProjectInput{Title: ptr("A"), Description: ptr("B"), Tasks: tasks})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("create: expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0] != "task 1 must have a taskName" {
		t.Fatalf("unexpected messages: %v", ve.Fields)
	}

	if _, err := svc.Update(ctx, "p1", ports.ProjectInput{Tasks: tasks}); !errors.As(err, &ve) {
		t.Fatalf("update: expected ValidationError, got %v", err)
	}
	if store.lastSet != nil {
		t.Fatalf("store must not be touched on invalid tasks: %+v", store.lastSet)
	}
}
