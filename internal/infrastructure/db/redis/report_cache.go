package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/topicosweb/backend/internal/api/metrics"
)

// ReportCache keeps rendered reports in Redis under a fixed key prefix.
// Key format: topicos:<key>
type ReportCache struct {
	client *redis.Client
	prefix string
}

// NewReportCache creates a ReportCache wrapping the given Redis client.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client, prefix: "topicos:"}
}

// Get returns the cached value, reporting false on a miss.
func (c *ReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ReportCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.ReportCacheTotal.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("report cache get: %w", err)
	}
	metrics.ReportCacheTotal.WithLabelValues("hit").Inc()
	return raw, true, nil
}

// Set stores value, expiring after ttl.
func (c *ReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("report cache set: %w", err)
	}
	return nil
}
