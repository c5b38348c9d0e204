package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

func TestBuildFilter_Empty(t *testing.T) {
	f, err := buildFilter(ports.Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f) != 0 {
		t.Fatalf("expected empty filter, got %v", f)
	}
}

func TestBuildFilter_ContainsIsEscapedAndCaseInsensitive(t *testing.T) {
	f, err := buildFilter(ports.Query{}.Where("client", ports.OpContains, "a.b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ops := f[0].Value.(bson.D)
	re, ok := ops[0].Value.(primitive.Regex)
	if !ok || ops[0].Key != "$regex" {
		t.Fatalf("expected $regex, got %v", ops)
	}
	if re.Pattern != `a\.b` || re.Options != "i" {
		t.Fatalf("unexpected regex: %+v", re)
	}
}

func TestBuildFilter_MergesConditionsOnSameField(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	q := ports.Query{}.
		Where("createdAt", ports.OpGte, from).
		Where("createdAt", ports.OpLte, to).
		Where("state", ports.OpEq, "active")

	f, err := buildFilter(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(f), f)
	}
	rng := f[0].Value.(bson.D)
	if len(rng) != 2 || rng[0].Key != "$gte" || rng[1].Key != "$lte" {
		t.Fatalf("unexpected range: %v", rng)
	}
}

func TestBuildFilter_ObjectIDConversion(t *testing.T) {
	oid := primitive.NewObjectID()
	f, err := buildFilter(ports.Query{}.Where("_id", ports.OpNe, oid.Hex()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := f[0].Value.(bson.D)[0]
	if got.Key != "$ne" || got.Value != oid {
		t.Fatalf("expected $ne %v, got %v", oid, got)
	}

	_, err = buildFilter(ports.Query{}.Where("_id", ports.OpEq, "not-hex"))
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestBuildFilter_NumericIDLeftAlone(t *testing.T) {
	f, err := buildFilter(ports.Query{}.Where("_id", ports.OpEq, int64(7)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := f[0].Value.(bson.D)[0].Value; v != int64(7) {
		t.Fatalf("expected int64 7, got %v", v)
	}
}

func TestBuildSort(t *testing.T) {
	s := buildSort([]ports.SortField{{Field: "createdAt", Desc: true}, {Field: "name"}})
	if s[0].Value != -1 || s[1].Value != 1 {
		t.Fatalf("unexpected sort: %v", s)
	}
}

func TestAccessFilter(t *testing.T) {
	from := time.Now().Add(-time.Hour)
	f := accessFilter(domain.AccessFilter{From: &from, Resource: domain.ResourceVehicle, Action: domain.ActionDelete})
	if len(f) != 3 {
		t.Fatalf("expected 3 conditions, got %v", f)
	}
	if f[0].Key != "createdAt" || f[1].Key != "resource" || f[2].Key != "action" {
		t.Fatalf("unexpected order: %v", f)
	}
}

func TestResolveKey(t *testing.T) {
	if _, ok := resolveKey(domain.ResourceLocation{Numeric: true}, "12"); !ok {
		t.Fatalf("numeric id should resolve")
	}
	if _, ok := resolveKey(domain.ResourceLocation{}, domain.ListPlaceholderID); !ok {
		t.Fatalf("placeholder is a valid ObjectID")
	}
	if _, ok := resolveKey(domain.ResourceLocation{}, "xyz"); ok {
		t.Fatalf("garbage id must not resolve")
	}
}
