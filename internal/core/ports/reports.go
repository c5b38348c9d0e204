package ports

import (
	"context"
	"time"

	"github.com/topicosweb/backend/internal/core/domain"
)

type CollectionReportInput struct {
	Collection string            `json:"collection" validate:"required"`
	Filters    map[string]any    `json:"filters"`
	ReportType domain.ReportType `json:"reportType" validate:"omitempty,oneof=summary detailed"`
}

// ReportService builds aggregate reports over resource collections.
type ReportService interface {
	Collection(ctx context.Context, requester domain.Identity, in CollectionReportInput) (*domain.CollectionReport, error)
}

// ReportCache stores rendered reports for a short time.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
