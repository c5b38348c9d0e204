package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

type stubAccessRepo struct {
	mu       sync.Mutex
	inserted []domain.AccessRecord
	records  []domain.AccessRecord
	stats    []domain.ResourceStats
	listErr  error
}

func (r *stubAccessRepo) Insert(_ context.Context, rec *domain.AccessRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserted = append(r.inserted, *rec)
	return nil
}

func (r *stubAccessRepo) List(context.Context, domain.AccessFilter, ports.Page) ([]domain.AccessRecord, error) {
	return r.records, r.listErr
}

func (r *stubAccessRepo) Count(context.Context, domain.AccessFilter) (int64, error) {
	return int64(len(r.records)), nil
}

func (r *stubAccessRepo) Stats(context.Context, domain.AccessFilter) ([]domain.ResourceStats, error) {
	return r.stats, nil
}

type stubResolver struct {
	docs  map[string]map[string]any
	calls []string
}

func (r *stubResolver) Resolve(_ context.Context, tag domain.ResourceTag, id string) (map[string]any, error) {
	r.calls = append(r.calls, string(tag)+"/"+id)
	if id == "broken" {
		return nil, errors.New("decode failed")
	}
	return r.docs[id], nil
}

func TestAccessService_RecordValidates(t *testing.T) {
	repo := &stubAccessRepo{}
	svc := NewAccessService(repo, newUserStore(), &stubResolver{}, zerolog.Nop())
	ctx := context.Background()

	err := svc.Record(ctx, domain.AccessRecord{User: "u1", Resource: "Spaceship", ResourceID: "x", Action: domain.ActionCreate})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	rec := domain.AccessRecord{User: "u1", Resource: domain.ResourceVehicle, ResourceID: "v1", Action: domain.ActionDelete}
	if err := svc.Record(ctx, rec); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].CreatedAt.IsZero() {
		t.Fatalf("record not stamped and stored: %+v", repo.inserted)
	}
}

func TestAccessService_ReportPopulates(t *testing.T) {
	repo := &stubAccessRepo{
		records: []domain.AccessRecord{
			{ID: "a1", User: "u1", Resource: domain.ResourceVehicle, ResourceID: "v1", Action: domain.ActionRetrieve},
			{ID: "a2", User: "u1", Resource: domain.ResourceConsProject, ResourceID: domain.ListPlaceholderID, Action: domain.ActionRetrieve},
			{ID: "a3", User: "ghost", Resource: domain.ResourceVehicle, ResourceID: "broken", Action: domain.ActionUpdate},
		},
		stats: []domain.ResourceStats{{Resource: domain.ResourceVehicle, Total: 2}},
	}
	resolver := &stubResolver{docs: map[string]map[string]any{"v1": {"_id": "v1", "plate": "ABC"}}}
	users := newUserStore(domain.User{ID: "u1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin})
	svc := NewAccessService(repo, users, resolver, zerolog.Nop())

	report, err := svc.Report(context.Background(), domain.AccessFilter{}, ports.NewPage(1, 50, 50))
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if report.Pagination.Total != 3 || report.Pagination.Pages != 1 {
		t.Fatalf("unexpected pagination: %+v", report.Pagination)
	}
	if len(report.Stats) != 1 {
		t.Fatalf("stats not passed through: %+v", report.Stats)
	}

	first := report.Data[0]
	if first.User == nil || first.User.Email != "admin@example.com" || first.ResourceID["plate"] != "ABC" {
		t.Fatalf("first entry not populated: %+v", first)
	}
	if report.Data[1].ResourceID != nil {
		t.Fatalf("placeholder should resolve to nil, got %+v", report.Data[1].ResourceID)
	}
	if report.Data[2].User != nil || report.Data[2].ResourceID != nil {
		t.Fatalf("missing references should be nil: %+v", report.Data[2])
	}
	for _, call := range resolver.calls {
		if call == "ConsProject/"+domain.ListPlaceholderID {
			t.Fatal("placeholder ids must not be resolved")
		}
	}
}

func TestAccessService_ReportPropagatesRepoErrors(t *testing.T) {
	repo := &stubAccessRepo{listErr: errors.New("mongo down")}
	svc := NewAccessService(repo, newUserStore(), &stubResolver{}, zerolog.Nop())

	if _, err := svc.Report(context.Background(), domain.AccessFilter{}, ports.NewPage(1, 50, 50)); err == nil {
		t.Fatal("expected an error")
	}
}
