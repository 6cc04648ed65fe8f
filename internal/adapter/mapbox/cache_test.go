package mapbox

import (
	"context"
	"errors"
	"testing"

	"github.com/couchcryptid/quake-risk-report/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingResolver struct {
	calls int
	state string
	err   error
}

func (m *countingResolver) ResolveState(_ context.Context, _, _ float64) (string, error) {
	m.calls++
	return m.state, m.err
}

func newTestCache(inner *countingResolver, size int) *CachedResolver {
	return NewCachedResolver(inner, size, observability.NewMetricsForTesting())
}

// --- CachedResolver tests ---

func TestCachedResolver_CacheHit(t *testing.T) {
	inner := &countingResolver{state: "CA"}
	cached := newTestCache(inner, 10)

	s1, err := cached.ResolveState(context.Background(), 40.3012, -124.4987)
	require.NoError(t, err)
	s2, err := cached.ResolveState(context.Background(), 40.3012, -124.4987)
	require.NoError(t, err)

	assert.Equal(t, "CA", s1)
	assert.Equal(t, "CA", s2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedResolver_NearbyPointsShareKey(t *testing.T) {
	inner := &countingResolver{state: "AK"}
	cached := newTestCache(inner, 10)

	_, _ = cached.ResolveState(context.Background(), 59.6012, -151.8804)
	_, _ = cached.ResolveState(context.Background(), 59.6049, -151.8831)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedResolver_DifferentKeysMiss(t *testing.T) {
	inner := &countingResolver{state: "NV"}
	cached := newTestCache(inner, 10)

	_, _ = cached.ResolveState(context.Background(), 38.4, -118.1)
	_, _ = cached.ResolveState(context.Background(), 39.5, -119.8)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedResolver_EmptyNotCached(t *testing.T) {
	inner := &countingResolver{}
	cached := newTestCache(inner, 10)

	_, _ = cached.ResolveState(context.Background(), 52.0, -170.0)
	_, _ = cached.ResolveState(context.Background(), 52.0, -170.0)

	assert.Equal(t, 2, inner.calls)
	assert.Zero(t, cached.cache.size())
}

func TestCachedResolver_ErrorNotCached(t *testing.T) {
	inner := &countingResolver{err: errors.New("timeout")}
	cached := newTestCache(inner, 10)

	_, err := cached.ResolveState(context.Background(), 40.3, -124.5)
	require.Error(t, err)

	inner.err = nil
	inner.state = "CA"
	state, err := cached.ResolveState(context.Background(), 40.3, -124.5)
	require.NoError(t, err)
	assert.Equal(t, "CA", state)
	assert.Equal(t, 2, inner.calls)
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", "CA")
	c.put("b", "NV")

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "CA", v)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", "CA")
	c.put("b", "NV")
	c.put("c", "OR") // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	v, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "NV", v)

	v, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "OR", v)
	assert.Equal(t, 2, c.size())
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", "CA")
	c.put("b", "NV")

	c.get("a")
	c.put("c", "OR") // evicts "b", the least recently used

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", "CA")
	c.put("a", "NV")

	v, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "NV", v)
	assert.Equal(t, 1, c.size())
}
