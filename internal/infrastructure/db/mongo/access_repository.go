package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// CollectionAccesses holds the audit trail.
const CollectionAccesses = "accesses"

// AccessRepository stores the audit trail. It only ever inserts.
type AccessRepository struct {
	col *mongo.Collection
}

func NewAccessRepository(db *mongo.Database) *AccessRepository {
	return &AccessRepository{col: db.Collection(CollectionAccesses)}
}

func (r *AccessRepository) Insert(ctx context.Context, rec *domain.AccessRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert access: %w", err)
	}
	return nil
}

func (r *AccessRepository) List(ctx context.Context, f domain.AccessFilter, p ports.Page) ([]domain.AccessRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit)

	cur, err := r.col.Find(ctx, accessFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find accesses: %w", err)
	}
	out := []domain.AccessRecord{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode accesses: %w", err)
	}
	return out, nil
}

func (r *AccessRepository) Count(ctx context.Context, f domain.AccessFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, accessFilter(f))
	if err != nil {
		return 0, fmt.Errorf("count accesses: %w", err)
	}
	return n, nil
}

// Stats groups matching records by resource, then by action within each resource.
func (r *AccessRepository) Stats(ctx context.Context, f domain.AccessFilter) ([]domain.ResourceStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, statsPipeline(f))
	if err != nil {
		return nil, fmt.Errorf("aggregate accesses: %w", err)
	}
	out := []domain.ResourceStats{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode access stats: %w", err)
	}
	return out, nil
}

func statsPipeline(f domain.AccessFilter) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: accessFilter(f)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "resource", Value: "$resource"},
				{Key: "action", Value: "$action"},
			}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id.resource"},
			{Key: "actions", Value: bson.D{{Key: "$push", Value: bson.D{
				{Key: "action", Value: "$_id.action"},
				{Key: "count", Value: "$count"},
			}}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$count"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

func accessFilter(f domain.AccessFilter) bson.D {
	filter := bson.D{}
	if f.From != nil || f.To != nil {
		rng := bson.D{}
		if f.From != nil {
			rng = append(rng, bson.E{Key: "$gte", Value: *f.From})
		}
		if f.To != nil {
			rng = append(rng, bson.E{Key: "$lte", Value: *f.To})
		}
		filter = append(filter, bson.E{Key: "createdAt", Value: rng})
	}
	if f.Resource != "" {
		filter = append(filter, bson.E{Key: "resource", Value: f.Resource})
	}
	if f.Action != "" {
		filter = append(filter, bson.E{Key: "action", Value: f.Action})
	}
	if f.User != "" {
		filter = append(filter, bson.E{Key: "user", Value: f.User})
	}
	return filter
}
