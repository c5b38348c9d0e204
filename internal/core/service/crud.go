package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// crud bundles the list/get/delete plumbing every resource service shares.
type crud[T any] struct {
	store ports.DocumentStore[T]
	now   func() time.Time
}

func newCrud[T any](store ports.DocumentStore[T]) crud[T] {
	return crud[T]{store: store, now: func() time.Time { return time.Now().UTC() }}
}

func (c crud[T]) list(ctx context.Context, q ports.Query, p ports.Page) (*ports.ListResult[T], error) {
	items, err := c.store.Find(ctx, q.Newest().Paged(p))
	if err != nil {
		return nil, err
	}
	total, err := c.store.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return &ports.ListResult[T]{Data: items, Pagination: ports.NewPagination(total, p)}, nil
}

// setter accumulates the $set document for partial updates.
type setter map[string]any

func (s setter) str(field string, v *string) {
	if v != nil {
		s[field] = *v
	}
}

func (s setter) val(field string, v any, present bool) {
	if present {
		s[field] = v
	}
}

// stamp adds updatedAt, failing with ErrNoFields when nothing else was set.
func (s setter) stamp(now time.Time) error {
	if len(s) == 0 {
		return domain.ErrNoFields
	}
	s["updatedAt"] = now
	return nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

// blank reports whether a required string input is missing.
func blank(v *string) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

func required(fields ...string) error {
	return domain.NewValidationError(fmt.Sprintf("%s are required", strings.Join(fields, ", ")))
}

func ptrs[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
