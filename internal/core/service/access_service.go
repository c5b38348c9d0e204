package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

type accessService struct {
	repo     ports.AccessRepository
	users    ports.DocumentStore[domain.User]
	resolver ports.ResourceResolver
	log      zerolog.Logger
}

// NewAccessService returns an AccessService. users and resolver are used to
// populate report entries.
func NewAccessService(
	repo ports.AccessRepository,
	users ports.DocumentStore[domain.User],
	resolver ports.ResourceResolver,
	log zerolog.Logger,
) ports.AccessService {
	return &accessService{repo: repo, users: users, resolver: resolver, log: log}
}

// Record validates and appends rec to the audit trail.
func (s *accessService) Record(ctx context.Context, rec domain.AccessRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("record access: %w", err)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.ID = ""
	if err := s.repo.Insert(ctx, &rec); err != nil {
		return fmt.Errorf("record access: %w", err)
	}
	return nil
}

func (s *accessService) Report(ctx context.Context, f domain.AccessFilter, p ports.Page) (*ports.AccessReport, error) {
	var (
		records []domain.AccessRecord
		total   int64
		stats   []domain.ResourceStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		records, err = s.repo.List(gctx, f, p)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.repo.Count(gctx, f)
		return err
	})
	g.Go(func() (err error) {
		stats, err = s.repo.Stats(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("access report: %w", err)
	}

	entries, err := s.populate(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("access report: %w", err)
	}
	if stats == nil {
		stats = []domain.ResourceStats{}
	}
	return &ports.AccessReport{
		Data:       entries,
		Pagination: ports.NewPagination(total, p),
		Stats:      stats,
	}, nil
}

// populate resolves each record's user and target document. References that
// no longer exist resolve to nil.
func (s *accessService) populate(ctx context.Context, records []domain.AccessRecord) ([]domain.AccessEntry, error) {
	users := make(map[string]*domain.UserSummary)
	entries := make([]domain.AccessEntry, 0, len(records))

	for _, rec := range records {
		summary, seen := users[rec.User]
		if !seen {
			u, err := s.users.FindByID(ctx, rec.User)
			switch {
			case err == nil:
				sum := u.Summary()
				summary = &sum
			case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidID):
			default:
				return nil, err
			}
			users[rec.User] = summary
		}

		var target map[string]any
		if rec.ResourceID != domain.ListPlaceholderID {
			doc, err := s.resolver.Resolve(ctx, rec.Resource, rec.ResourceID)
			if err != nil {
				s.log.Warn().Err(err).
					Str("resource", string(rec.Resource)).
					Str("resource_id", rec.ResourceID).
					Msg("resolve access target failed")
			}
			target = doc
		}

		entries = append(entries, domain.AccessEntry{
			ID:         rec.ID,
			User:       summary,
			Resource:   rec.Resource,
			ResourceID: target,
			Action:     rec.Action,
			CreatedAt:  rec.CreatedAt,
		})
	}
	return entries, nil
}
