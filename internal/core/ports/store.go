package ports

import (
	"context"
	"math"
)

// Op is a comparison understood by every DocumentStore.
type Op int

const (
	OpEq Op = iota
	OpNe
	// OpContains is a case-insensitive substring match on strings.
	OpContains
	OpGte
	OpLte
)

// Condition restricts a single field.
type Condition struct {
	Field string
	Op    Op
	Value any
}

type SortField struct {
	Field string
	Desc  bool
}

// Query is a storage-agnostic filter. Conditions are ANDed.
type Query struct {
	Conditions []Condition
	Sort       []SortField
	Skip       int64
	Limit      int64
}

// Where returns a copy of q with an extra condition.
func (q Query) Where(field string, op Op, value any) Query {
	q.Conditions = append(append([]Condition(nil), q.Conditions...), Condition{Field: field, Op: op, Value: value})
	return q
}

// Newest sorts by createdAt descending.
func (q Query) Newest() Query {
	q.Sort = []SortField{{Field: "createdAt", Desc: true}}
	return q
}

// Paged applies p's offset and size.
func (q Query) Paged(p Page) Query {
	q.Skip = p.Skip()
	q.Limit = p.Limit
	return q
}

// DocumentStore is the persistence boundary for one collection of T.
type DocumentStore[T any] interface {
	Find(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, q Query) (int64, error)
	FindOne(ctx context.Context, q Query) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, doc *T) (*T, error)
	InsertMany(ctx context.Context, docs []T) ([]T, error)
	UpdateByID(ctx context.Context, id string, set map[string]any) (*T, error)
	UpdateOne(ctx context.Context, q Query, set map[string]any) (*T, error)
	DeleteByID(ctx context.Context, id string) (*T, error)
	DeleteOne(ctx context.Context, q Query) (*T, error)
}

// Sequence hands out monotonically increasing integers per name.
type Sequence interface {
	Next(ctx context.Context, name string) (int64, error)
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Page  int64
	Limit int64
}

// NewPage clamps page and limit to sane values, falling back to defLimit.
func NewPage(page, limit, defLimit int64) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	// keep (page-1)*limit within int64
	if page-1 > math.MaxInt64/limit {
		page = math.MaxInt64/limit + 1
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Pages int64 `json:"pages"`
}

func NewPagination(total int64, p Page) Pagination {
	pages := int64(0)
	if p.Limit > 0 {
		pages = int64(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Pagination{Total: total, Page: p.Page, Limit: p.Limit, Pages: pages}
}

// ListResult is one page of T plus its pagination metadata.
type ListResult[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
