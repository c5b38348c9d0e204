package service

import (
	"context"
	"fmt"
	"time"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// memStore is an in-memory DocumentStore. Conditions are evaluated through
// field, which returns a document's value for a field name.
type memStore[T any] struct {
	docs    []T
	id      func(*T) string
	setID   func(*T, string)
	field   func(*T, string) any
	failing error

	finds   int
	lastSet map[string]any
}

func (m *memStore[T]) matches(doc *T, q ports.Query) bool {
	for _, c := range q.Conditions {
		v := m.field(doc, c.Field)
		switch c.Op {
		case ports.OpEq:
			if fmt.Sprint(v) != fmt.Sprint(c.Value) {
				return false
			}
		case ports.OpNe:
			if fmt.Sprint(v) == fmt.Sprint(c.Value) {
				return false
			}
		}
	}
	return true
}

func (m *memStore[T]) Find(_ context.Context, q ports.Query) ([]T, error) {
	m.finds++
	if m.failing != nil {
		return nil, m.failing
	}
	var out []T
	for i := range m.docs {
		if m.matches(&m.docs[i], q) {
			out = append(out, m.docs[i])
		}
	}
	if q.Skip > 0 {
		if int(q.Skip) >= len(out) {
			return nil, nil
		}
		out = out[q.Skip:]
	}
	if q.Limit > 0 && int(q.Limit) < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStore[T]) Count(ctx context.Context, q ports.Query) (int64, error) {
	q.Skip, q.Limit = 0, 0
	docs, err := m.Find(ctx, q)
	return int64(len(docs)), err
}

func (m *memStore[T]) FindOne(ctx context.Context, q ports.Query) (*T, error) {
	docs, err := m.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &docs[0], nil
}

func (m *memStore[T]) FindByID(_ context.Context, id string) (*T, error) {
	if m.failing != nil {
		return nil, m.failing
	}
	for i := range m.docs {
		if m.id(&m.docs[i]) == id {
			doc := m.docs[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore[T]) Insert(_ context.Context, doc *T) (*T, error) {
	if m.failing != nil {
		return nil, m.failing
	}
	if m.id(doc) == "" {
		m.setID(doc, fmt.Sprintf("id-%d", len(m.docs)+1))
	}
	m.docs = append(m.docs, *doc)
	out := *doc
	return &out, nil
}

func (m *memStore[T]) InsertMany(ctx context.Context, docs []T) ([]T, error) {
	out := make([]T, 0, len(docs))
	for i := range docs {
		doc, err := m.Insert(ctx, &docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, nil
}

func (m *memStore[T]) UpdateByID(ctx context.Context, id string, set map[string]any) (*T, error) {
	m.lastSet = set
	return m.FindByID(ctx, id)
}

func (m *memStore[T]) UpdateOne(ctx context.Context, q ports.Query, set map[string]any) (*T, error) {
	m.lastSet = set
	return m.FindOne(ctx, q)
}

func (m *memStore[T]) DeleteByID(ctx context.Context, id string) (*T, error) {
	doc, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range m.docs {
		if m.id(&m.docs[i]) == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			break
		}
	}
	return doc, nil
}

func (m *memStore[T]) DeleteOne(ctx context.Context, q ports.Query) (*T, error) {
	doc, err := m.FindOne(ctx, q)
	if err != nil {
		return nil, err
	}
	return m.DeleteByID(ctx, m.id(doc))
}

// --- typed constructors ---

func newUserStore(users ...domain.User) *memStore[domain.User] {
	return &memStore[domain.User]{
		docs:  users,
		id:    func(u *domain.User) string { return u.ID },
		setID: func(u *domain.User, id string) { u.ID = id },
		field: func(u *domain.User, f string) any {
			switch f {
			case "_id":
				return u.ID
			case "email":
				return u.Email
			case "role":
				return u.Role
			case "isActive":
				return u.IsActive
			}
			return nil
		},
	}
}

func newProjectStore(projects ...domain.ConsProject) *memStore[domain.ConsProject] {
	return &memStore[domain.ConsProject]{
		docs:  projects,
		id:    func(p *domain.ConsProject) string { return p.ID },
		setID: func(p *domain.ConsProject, id string) { p.ID = id },
		field: func(p *domain.ConsProject, f string) any {
			switch f {
			case "_id":
				return p.ID
			case "status":
				return p.Status
			case "client":
				return p.Client
			case "place":
				return p.Place
			}
			return nil
		},
	}
}

func newVehicleStore(vehicles ...domain.Vehicle) *memStore[domain.Vehicle] {
	return &memStore[domain.Vehicle]{
		docs:  vehicles,
		id:    func(v *domain.Vehicle) string { return v.ID },
		setID: func(v *domain.Vehicle, id string) { v.ID = id },
		field: func(v *domain.Vehicle, f string) any {
			switch f {
			case "_id":
				return v.ID
			case "plate":
				return v.Plate
			case "state":
				return v.State
			case "type":
				return v.Type
			case "project":
				return v.ProjectID
			}
			return nil
		},
	}
}

func newPatientStore(patients ...domain.Patient) *memStore[domain.Patient] {
	return &memStore[domain.Patient]{
		docs:  patients,
		id:    func(p *domain.Patient) string { return p.ID },
		setID: func(p *domain.Patient, id string) { p.ID = id },
		field: func(p *domain.Patient, f string) any {
			switch f {
			case "genero":
				return p.Genero
			}
			return nil
		},
	}
}

func newEventStore(events ...domain.Event) *memStore[domain.Event] {
	return &memStore[domain.Event]{
		docs:  events,
		id:    func(e *domain.Event) string { return fmt.Sprint(e.ID) },
		setID: func(*domain.Event, string) {},
		field: func(e *domain.Event, f string) any {
			if f == "_id" {
				return e.ID
			}
			return nil
		},
	}
}

type stubSequence struct{ next int64 }

func (s *stubSequence) Next(context.Context, string) (int64, error) {
	s.next++
	return s.next, nil
}

var fixedTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }
