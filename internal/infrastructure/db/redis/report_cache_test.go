package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	dto "github.com/prometheus/client_model/go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topicosweb/backend/internal/api/metrics"
)

func cacheLookups(t *testing.T, result string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, metrics.ReportCacheTotal.WithLabelValues(result).Write(&m))
	return m.GetCounter().GetValue()
}

func newTestCache(t *testing.T) (*ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client), mr
}

func TestReportCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	raw, ok, err := cache.Get(context.Background(), "report:abc")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, raw)
}

func TestReportCache_SetThenGet(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "report:abc", []byte(`{"total":3}`), time.Minute))

	raw, ok, err := cache.Get(ctx, "report:abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"total":3}`, string(raw))
	assert.True(t, mr.Exists("topicos:report:abc"), "key should be namespaced")
}

func TestReportCache_Expires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "report:ttl", []byte("x"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Get(ctx, "report:ttl")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReportCache_ErrorWhenServerDown(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	_, _, err := cache.Get(context.Background(), "report:abc")
	assert.Error(t, err)
}

func TestReportCache_CountsLookups(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	hits, misses, errs := cacheLookups(t, "hit"), cacheLookups(t, "miss"), cacheLookups(t, "error")

	_, _, _ = cache.Get(ctx, "report:none")
	require.NoError(t, cache.Set(ctx, "report:one", []byte("1"), time.Minute))
	_, _, _ = cache.Get(ctx, "report:one")
	mr.Close()
	_, _, _ = cache.Get(ctx, "report:one")

	assert.Equal(t, hits+1, cacheLookups(t, "hit"))
	assert.Equal(t, misses+1, cacheLookups(t, "miss"))
	assert.Equal(t, errs+1, cacheLookups(t, "error"))
}
