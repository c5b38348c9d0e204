package ports

import (
	"context"

	"github.com/topicosweb/backend/internal/core/domain"
)

// AccessRepository persists the audit trail. Records are never updated or deleted.
type AccessRepository interface {
	Insert(ctx context.Context, rec *domain.AccessRecord) error
	List(ctx context.Context, f domain.AccessFilter, p Page) ([]domain.AccessRecord, error)
	Count(ctx context.Context, f domain.AccessFilter) (int64, error)
	Stats(ctx context.Context, f domain.AccessFilter) ([]domain.ResourceStats, error)
}

// ResourceResolver loads the document an access record points at. A missing
// document resolves to nil without error.
type ResourceResolver interface {
	Resolve(ctx context.Context, tag domain.ResourceTag, id string) (map[string]any, error)
}

// AccessSink accepts records for asynchronous persistence. Record must never block.
type AccessSink interface {
	Record(rec domain.AccessRecord)
}

type AccessReport struct {
	Data       []domain.AccessEntry   `json:"data"`
	Pagination Pagination             `json:"pagination"`
	Stats      []domain.ResourceStats `json:"stats"`
}

// AccessService writes audit records and builds the access report.
type AccessService interface {
	Record(ctx context.Context, rec domain.AccessRecord) error
	Report(ctx context.Context, f domain.AccessFilter, p Page) (*AccessReport, error)
}
