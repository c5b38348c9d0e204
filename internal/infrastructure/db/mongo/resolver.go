package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/topicosweb/backend/internal/core/domain"
)

// Resolver loads the document an access record refers to by dispatching on
// its resource tag.
type Resolver struct {
	db *mongo.Database
}

func NewResolver(db *mongo.Database) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) Resolve(ctx context.Context, tag domain.ResourceTag, id string) (map[string]any, error) {
	loc, ok := tag.Location()
	if !ok {
		return nil, fmt.Errorf("resolve %q: unknown resource tag", tag)
	}
	key, ok := resolveKey(loc, id)
	if !ok {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// password hashes never leave the users collection
	opts := options.FindOne().SetProjection(bson.D{{Key: "password", Value: 0}})
	var doc bson.M
	err := r.db.Collection(loc.Collection).FindOne(ctx, bson.D{{Key: loc.Key, Value: key}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve %s %s: %w", tag, id, err)
	}
	return doc, nil
}

func resolveKey(loc domain.ResourceLocation, id string) (any, bool) {
	if loc.Numeric {
		n, err := strconv.ParseInt(id, 10, 64)
		return n, err == nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}
