package mem

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tripsync/internal/models/response_models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func sampleTrips() []response_models.TripCandidate {
	return []response_models.TripCandidate{
		{ID: "t1", Destination: "Tokyo, Japan", Activities: []string{"sushi"}, CostBreakdown: response_models.CostBreakdown{TotalUSD: 1800}},
		{ID: "t2", Destination: "Kyoto, Japan", CostBreakdown: response_models.CostBreakdown{TotalUSD: 1500}},
	}
}

func TestMemoryTripCache_HitWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := NewMemoryTripCache(60*time.Second, clock.Now)
	ctx := context.Background()

	c.Put(ctx, "k", sampleTrips())
	clock.Advance(59 * time.Second)

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, sampleTrips(), got)
}

func TestMemoryTripCache_ExpiresAtTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	c := NewMemoryTripCache(60*time.Second, clock.Now)
	ctx := context.Background()

	c.Put(ctx, "k", sampleTrips())
	clock.Advance(60 * time.Second)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entries are removed on read")
}

func TestMemoryTripCache_Miss(t *testing.T) {
	c := NewMemoryTripCache(time.Minute, nil)
	_, ok := c.Get(context.Background(), "missing")
	assert.False(t, ok)
}

func TestMemoryTripCache_ReturnsCopies(t *testing.T) {
	c := NewMemoryTripCache(time.Minute, nil)
	ctx := context.Background()

	trips := sampleTrips()
	c.Put(ctx, "k", trips)
	trips[0].Destination = "mutated after put"

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	got[0].Activities[0] = "mutated after get"

	again, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "Tokyo, Japan", again[0].Destination)
	assert.Equal(t, "sushi", again[0].Activities[0])
}

func TestMemoryTripCache_EmptyListIsAHit(t *testing.T) {
	c := NewMemoryTripCache(time.Minute, nil)
	ctx := context.Background()

	c.Put(ctx, "k", []response_models.TripCandidate{})
	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisTripCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTripCache(client, ttl, "tripsync:test:", zaptest.NewLogger(t)), srv
}

func TestRedisTripCache_RoundTrip(t *testing.T) {
	c, srv := newRedisCache(t, time.Minute)
	ctx := context.Background()

	c.Put(ctx, `{"budget":20}`, sampleTrips())

	got, ok := c.Get(ctx, `{"budget":20}`)
	require.True(t, ok)
	assert.Equal(t, sampleTrips(), got)

	keys := srv.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "tripsync:test:")
	assert.NotContains(t, keys[0], "budget")
}

func TestRedisTripCache_Expires(t *testing.T) {
	c, srv := newRedisCache(t, time.Minute)
	ctx := context.Background()

	c.Put(ctx, "k", sampleTrips())
	srv.FastForward(time.Minute)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisTripCache_CorruptEntryIsAMiss(t *testing.T) {
	c, srv := newRedisCache(t, time.Minute)
	require.NoError(t, srv.Set(c.redisKey("k"), "not json"))

	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestRedisTripCache_UnavailableIsAMiss(t *testing.T) {
	c, srv := newRedisCache(t, time.Minute)
	srv.Close()

	assert.NotPanics(t, func() {
		c.Put(context.Background(), "k", sampleTrips())
	})
	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
}
