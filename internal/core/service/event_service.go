package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

const eventSequence = "events"

type eventService struct {
	crud[domain.Event]
	seq ports.Sequence
}

// NewEventService returns an EventService. Event ids come from seq.
func NewEventService(store ports.DocumentStore[domain.Event], seq ports.Sequence) ports.EventService {
	return &eventService{crud: newCrud(store), seq: seq}
}

// parseEventID accepts positive decimal ids only.
func parseEventID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("event id %q: %w", raw, domain.ErrInvalidID)
	}
	return id, nil
}

func byEventID(id int64) ports.Query {
	return ports.Query{}.Where("_id", ports.OpEq, id)
}

func (s *eventService) List(ctx context.Context, f ports.EventFilter, p ports.Page) (*ports.ListResult[domain.Event], error) {
	q := ports.Query{}
	if f.Name != "" {
		q = q.Where("name", ports.OpContains, f.Name)
	}
	res, err := s.list(ctx, q, p)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return res, nil
}

func (s *eventService) Get(ctx context.Context, rawID string) (*domain.Event, error) {
	id, err := parseEventID(rawID)
	if err != nil {
		return nil, err
	}
	return s.store.FindOne(ctx, byEventID(id))
}

func (s *eventService) Create(ctx context.Context, in ports.EventInput) (*domain.Event, error) {
	if blank(in.Name) || in.Date == nil {
		return nil, required("name", "date")
	}
	id, err := s.seq.Next(ctx, eventSequence)
	if err != nil {
		return nil, fmt.Errorf("next event id: %w", err)
	}
	now := s.now()
	return s.store.Insert(ctx, &domain.Event{
		ID:        id,
		Name:      *in.Name,
		Date:      in.Date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *eventService) Update(ctx context.Context, rawID string, in ports.EventInput) (*domain.Event, error) {
	id, err := parseEventID(rawID)
	if err != nil {
		return nil, err
	}
	set := setter{}
	set.str("name", in.Name)
	set.val("date", deref(in.Date).UTC(), in.Date != nil)
	if err := set.stamp(s.now()); err != nil {
		return nil, err
	}
	return s.store.UpdateOne(ctx, byEventID(id), set)
}

func (s *eventService) Delete(ctx context.Context, rawID string) (*domain.Event, error) {
	id, err := parseEventID(rawID)
	if err != nil {
		return nil, err
	}
	return s.store.DeleteOne(ctx, byEventID(id))
}
