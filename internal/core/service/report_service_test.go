package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

type memCache struct {
	entries map[string][]byte
	getErr  error
	sets    int
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	raw, ok := c.entries[key]
	return raw, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.sets++
	c.entries[key] = value
	return nil
}

type reportFixture struct {
	svc      ports.ReportService
	projects *memStore[domain.ConsProject]
	vehicles *memStore[domain.Vehicle]
	users    *memStore[domain.User]
	cache    *memCache
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		projects: newProjectStore(
			domain.ConsProject{ID: "p1", Client: "ACME", Status: domain.ConsProjectPending},
			domain.ConsProject{ID: "p2", Client: "ACME", Status: domain.ConsProjectCompleted},
			domain.ConsProject{ID: "p3", Client: "Globex", Status: domain.ConsProjectPending},
		),
		vehicles: newVehicleStore(
			domain.Vehicle{ID: "v1", Type: "truck", State: domain.VehicleActive, ProjectID: "p1"},
			domain.Vehicle{ID: "v2", Type: "crane", State: domain.VehicleInMaintenance},
		),
		users: newUserStore(
			domain.User{ID: "u1", Role: domain.RoleAdmin, IsActive: true},
			domain.User{ID: "u2", Role: domain.RoleVisitor, IsActive: false},
		),
		cache: &memCache{entries: map[string][]byte{}},
	}
	f.svc = NewReportService(f.projects, f.vehicles, f.users, f.cache, time.Minute, zerolog.Nop())
	return f
}

var (
	adminID   = domain.Identity{ID: "u1", Role: domain.RoleAdmin}
	analystID = domain.Identity{ID: "u3", Role: domain.RoleAnalyst}
)

func TestReportService_ProjectSummary(t *testing.T) {
	f := newReportFixture()

	report, err := f.svc.Collection(context.Background(), analystID, ports.CollectionReportInput{
		Collection: "ConsProject",
		Filters:    map[string]any{"client": "ACME"},
	})
	if err != nil {
		t.Fatalf("Collection returned error: %v", err)
	}
	if report.ReportType != domain.ReportSummary {
		t.Fatalf("report type should default to summary, got %s", report.ReportType)
	}
	sum, ok := report.Data.(projectSummary)
	if !ok {
		t.Fatalf("unexpected data type %T", report.Data)
	}
	if sum.Total != 2 || sum.ByStatus["Pending"] != 1 || sum.ByStatus["Completed"] != 1 || sum.ByStatus["In Progress"] != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestReportService_VehicleSummary(t *testing.T) {
	f := newReportFixture()

	report, err := f.svc.Collection(context.Background(), analystID, ports.CollectionReportInput{Collection: "Vehicle"})
	if err != nil {
		t.Fatalf("Collection returned error: %v", err)
	}
	sum := report.Data.(vehicleSummary)
	if sum.Total != 2 || sum.WithProject != 1 || sum.WithoutProject != 1 || sum.ByType["crane"] != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestReportService_UserReportNeedsAdmin(t *testing.T) {
	f := newReportFixture()
	in := ports.CollectionReportInput{Collection: "User", ReportType: domain.ReportDetailed}

	if _, err := f.svc.Collection(context.Background(), analystID, in); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("analyst: expected ErrForbidden, got %v", err)
	}

	report, err := f.svc.Collection(context.Background(), adminID, in)
	if err != nil {
		t.Fatalf("admin: unexpected error: %v", err)
	}
	detail := report.Data.(map[string]any)
	sum := detail["summary"].(userSummary)
	if sum.Active != 1 || sum.Inactive != 1 || sum.ByRole["admin"] != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestReportService_RejectsFilters(t *testing.T) {
	f := newReportFixture()

	cases := []ports.CollectionReportInput{
		{Collection: "Patient"},
		{Collection: "ConsProject", Filters: map[string]any{"name": "x"}},
		{Collection: "User", Filters: map[string]any{"isActive": "yes"}},
		{Collection: "Vehicle", Filters: map[string]any{"state": map[string]any{"$ne": "x"}}},
		{Collection: "Vehicle", ReportType: "full"},
	}
	for _, in := range cases {
		_, err := f.svc.Collection(context.Background(), adminID, in)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%+v: expected ValidationError, got %v", in, err)
		}
	}
}

func TestReportService_CachesResults(t *testing.T) {
	f := newReportFixture()
	in := ports.CollectionReportInput{Collection: "Cons-Project", Filters: map[string]any{"status": "Pending"}}

	if _, err := f.svc.Collection(context.Background(), analystID, in); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if f.cache.sets != 1 || f.projects.finds != 1 {
		t.Fatalf("expected one store read and one cache write, got %d/%d", f.projects.finds, f.cache.sets)
	}

	report, err := f.svc.Collection(context.Background(), analystID, in)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if f.projects.finds != 1 {
		t.Fatalf("second call should be served from cache")
	}
	if report.Collection != domain.ResourceConsProject {
		t.Fatalf("unexpected collection %q", report.Collection)
	}
}

func TestReportService_CacheErrorsAreBypassed(t *testing.T) {
	f := newReportFixture()
	f.cache.getErr = errors.New("redis down")

	if _, err := f.svc.Collection(context.Background(), analystID, ports.CollectionReportInput{Collection: "Vehicle"}); err != nil {
		t.Fatalf("cache failure must not fail the report: %v", err)
	}
	if f.vehicles.finds != 1 {
		t.Fatalf("expected a store read, got %d", f.vehicles.finds)
	}
}
