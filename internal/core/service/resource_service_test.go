package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

func TestPatientService_Seed(t *testing.T) {
	store := newPatientStore()
	svc := NewPatientService(store)
	ctx := context.Background()

	docs, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if len(docs) != len(domain.SamplePatients()) {
		t.Fatalf("expected %d patients, got %d", len(domain.SamplePatients()), len(docs))
	}

	if _, err := svc.Seed(ctx); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second seed: expected ErrConflict, got %v", err)
	}
}

func TestPatientService_ListEmptyIsNotFound(t *testing.T) {
	svc := NewPatientService(newPatientStore())

	_, err := svc.List(context.Background(), ports.PatientFilter{}, ports.NewPage(1, 10, 10))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPatientService_UpdateNeedsFields(t *testing.T) {
	store := newPatientStore(domain.Patient{ID: "p1", Nombre: "Ana"})
	svc := NewPatientService(store)
	ctx := context.Background()

	if _, err := svc.Update(ctx, "p1", ports.PatientInput{}); !errors.Is(err, domain.ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}

	if _, err := svc.Update(ctx, "p1", ports.PatientInput{Edad: ptr(41)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if store.lastSet["edad"] != 41 {
		t.Fatalf("edad not in $set: %+v", store.lastSet)
	}
	if _, ok := store.lastSet["nombre"]; ok {
		t.Fatalf("absent fields must not be set: %+v", store.lastSet)
	}
	if _, ok := store.lastSet["updatedAt"]; !ok {
		t.Fatalf("updatedAt should be stamped")
	}
}

func TestParseEventID(t *testing.T) {
	for raw, want := range map[string]int64{"1": 1, "42": 42} {
		got, err := parseEventID(raw)
		if err != nil || got != want {
			t.Errorf("parseEventID(%q) = %d, %v", raw, got, err)
		}
	}
	for _, raw := range []string{"", "0", "-3", "abc", "65a1b2c3d4e5f60718293a4b"} {
		if _, err := parseEventID(raw); !errors.Is(err, domain.ErrInvalidID) {
			t.Errorf("parseEventID(%q): expected ErrInvalidID, got %v", raw, err)
		}
	}
}

func TestEventService_CreateUsesSequence(t *testing.T) {
	store := newEventStore()
	seq := &stubSequence{next: 6}
	svc := NewEventService(store, seq)
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	ev, err := svc.Create(context.Background(), ports.EventInput{Name: ptr("Kickoff"), Date: &date})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if ev.ID != 7 {
		t.Fatalf("expected id 7, got %d", ev.ID)
	}

	got, err := svc.Get(context.Background(), "7")
	if err != nil || got.Name != "Kickoff" {
		t.Fatalf("Get by numeric id failed: %+v, %v", got, err)
	}
}

func TestEventService_CreateRequiresFields(t *testing.T) {
	svc := NewEventService(newEventStore(), &stubSequence{})

	_, err := svc.Create(context.Background(), ports.EventInput{Name: ptr("x")})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestVehicleService_DuplicatePlate(t *testing.T) {
	vehicles := newVehicleStore(domain.Vehicle{ID: "v1", Plate: "ABC-123"})
	svc := NewVehicleService(vehicles, newProjectStore())

	_, err := svc.Create(context.Background(), ports.VehicleInput{Plate: ptr("ABC-123"), Type: ptr("truck")})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err.Error() != `vehicle with plate "ABC-123" already exists` {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestVehicleService_UpdateClearsProject(t *testing.T) {
	vehicles := newVehicleStore(domain.Vehicle{ID: "v1", Plate: "A", ProjectID: "p1"})
	projects := newProjectStore(domain.ConsProject{ID: "p1", Name: "Tower"})
	svc := NewVehicleService(vehicles, projects)

	if _, err := svc.Update(context.Background(), "v1", ports.VehicleInput{Project: ptr("")}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if v, ok := vehicles.lastSet["project"]; !ok || v != "" {
		t.Fatalf("project should be cleared, $set was %+v", vehicles.lastSet)
	}
}

func TestVehicleService_PopulatesProject(t *testing.T) {
	projects := newProjectStore(domain.ConsProject{ID: "p1", Name: "Tower", Client: "XYZ", Status: domain.ConsProjectPending})
	vehicles := newVehicleStore(
		domain.Vehicle{ID: "v1", Plate: "A", ProjectID: "p1"},
		domain.Vehicle{ID: "v2", Plate: "B"},
	)
	svc := NewVehicleService(vehicles, projects)

	res, err := svc.List(context.Background(), ports.VehicleFilter{}, ports.NewPage(1, 10, 10))
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if res.Pagination.Total != 2 {
		t.Fatalf("expected total 2, got %d", res.Pagination.Total)
	}
	for _, v := range res.Data {
		switch v.ID {
		case "v1":
			if v.Project == nil || v.Project.Name != "Tower" {
				t.Fatalf("v1 project not populated: %+v", v.Project)
			}
		case "v2":
			if v.Project != nil {
				t.Fatalf("v2 has no project, got %+v", v.Project)
			}
		}
	}
}

func TestVehicleService_UnknownProject(t *testing.T) {
	svc := NewVehicleService(newVehicleStore(), newProjectStore())

	_, err := svc.Create(context.Background(), ports.VehicleInput{
		Plate: ptr("Z-1"), Type: ptr("crane"), Project: ptr("65a1b2c3d4e5f60718293a4b"),
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestConsProjectService_CreateDefaults(t *testing.T) {
	store := newProjectStore()
	svc := NewConsProjectService(store)

	p, err := svc.Create(context.Background(), ports.ConsProjectInput{
		Name: ptr("Bridge"), Place: ptr("Querétaro"), Client: ptr("State"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.Status != domain.ConsProjectPending || p.StartDate.IsZero() {
		t.Fatalf("defaults not applied: %+v", p)
	}

	if _, err := svc.Create(context.Background(), ports.ConsProjectInput{Name: ptr("x")}); err == nil {
		t.Fatal("expected missing place and client to fail")
	}
}
