package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// Store is a DocumentStore over a single collection of T. T must carry bson
// tags; string _id fields hold ObjectID hex.
type Store[T any] struct {
	col *mongo.Collection
}

var _ ports.DocumentStore[domain.Vehicle] = (*Store[domain.Vehicle])(nil)

func NewStore[T any](db *mongo.Database, collection string) *Store[T] {
	return &Store[T]{col: db.Collection(collection)}
}

func (s *Store[T]) Find(ctx context.Context, q ports.Query) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(buildSort(q.Sort))
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.col.Name(), err)
	}
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.col.Name(), err)
	}
	return out, nil
}

func (s *Store[T]) Count(ctx context.Context, q ports.Query) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := buildFilter(q)
	if err != nil {
		return 0, err
	}
	n, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.col.Name(), err)
	}
	return n, nil
}

func (s *Store[T]) FindOne(ctx context.Context, q ports.Query) (*T, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, filter)
}

func (s *Store[T]) FindByID(ctx context.Context, id string) (*T, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, filter)
}

func (s *Store[T]) findOne(ctx context.Context, filter bson.D) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, s.mapErr("find one", err)
	}
	return &doc, nil
}

// Insert stores doc and returns it as persisted, including the generated _id.
func (s *Store[T]) Insert(ctx context.Context, doc *T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, s.mapErr("insert", err)
	}

	// fetch back to get ID and server-side defaults
	return s.findOne(ctx, bson.D{{Key: "_id", Value: res.InsertedID}})
}

func (s *Store[T]) InsertMany(ctx context.Context, docs []T) ([]T, error) {
	if len(docs) == 0 {
		return []T{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	batch := make([]any, len(docs))
	for i := range docs {
		batch[i] = docs[i]
	}
	res, err := s.col.InsertMany(ctx, batch)
	if err != nil {
		return nil, s.mapErr("insert many", err)
	}

	cur, err := s.col.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: res.InsertedIDs}}}})
	if err != nil {
		return nil, fmt.Errorf("find inserted %s: %w", s.col.Name(), err)
	}
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.col.Name(), err)
	}
	return out, nil
}

func (s *Store[T]) UpdateByID(ctx context.Context, id string, set map[string]any) (*T, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, filter, set)
}

func (s *Store[T]) UpdateOne(ctx context.Context, q ports.Query, set map[string]any) (*T, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, filter, set)
}

func (s *Store[T]) update(ctx context.Context, filter bson.D, set map[string]any) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := s.col.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: bson.M(set)}}, opts).Decode(&doc)
	if err != nil {
		return nil, s.mapErr("update", err)
	}
	return &doc, nil
}

func (s *Store[T]) DeleteByID(ctx context.Context, id string) (*T, error) {
	filter, err := idFilter(id)
	if err != nil {
		return nil, err
	}
	return s.delete(ctx, filter)
}

func (s *Store[T]) DeleteOne(ctx context.Context, q ports.Query) (*T, error) {
	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	return s.delete(ctx, filter)
}

func (s *Store[T]) delete(ctx context.Context, filter bson.D) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	if err := s.col.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		return nil, s.mapErr("delete", err)
	}
	return &doc, nil
}

func (s *Store[T]) mapErr(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s %s: %w", op, s.col.Name(), domain.ErrConflict)
	default:
		return fmt.Errorf("%s %s: %w", op, s.col.Name(), err)
	}
}

func idFilter(id string) (bson.D, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", id, domain.ErrInvalidID)
	}
	return bson.D{{Key: "_id", Value: oid}}, nil
}

var operators = map[ports.Op]string{
	ports.OpEq:  "$eq",
	ports.OpNe:  "$ne",
	ports.OpGte: "$gte",
	ports.OpLte: "$lte",
}

// buildFilter translates q into a bson filter. Conditions on the same field
// are merged into one operator document; string values for _id are parsed as
// ObjectIDs.
func buildFilter(q ports.Query) (bson.D, error) {
	filter := bson.D{}
	index := make(map[string]int)

	for _, c := range q.Conditions {
		value := c.Value
		if id, ok := value.(string); ok && c.Field == "_id" {
			oid, err := primitive.ObjectIDFromHex(id)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", id, domain.ErrInvalidID)
			}
			value = oid
		}

		var op bson.E
		if c.Op == ports.OpContains {
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("contains on %s requires a string", c.Field)
			}
			op = bson.E{Key: "$regex", Value: primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}}
		} else {
			name, ok := operators[c.Op]
			if !ok {
				return nil, fmt.Errorf("unsupported operator %d on %s", c.Op, c.Field)
			}
			op = bson.E{Key: name, Value: value}
		}

		if i, seen := index[c.Field]; seen {
			filter[i].Value = append(filter[i].Value.(bson.D), op)
			continue
		}
		index[c.Field] = len(filter)
		filter = append(filter, bson.E{Key: c.Field, Value: bson.D{op}})
	}
	return filter, nil
}

func buildSort(fields []ports.SortField) bson.D {
	sort := make(bson.D, 0, len(fields))
	for _, f := range fields {
		dir := 1
		if f.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: f.Field, Value: dir})
	}
	return sort
}
