package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache() (*Cache, *clock) {
	clk := &clock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewCache(memory.NewLookupCacheRepository(), logger.NewNop()).WithClock(clk.now), clk
}

func TestKey_String(t *testing.T) {
	t.Run("text only", func(t *testing.T) {
		k := Key{Provider: ProviderPlaces, Query: "  Lawn   Care ", Location: "Dallas,  TX", RadiusMeters: 16093}
		assert.Equal(t, "lawn care|dallas, tx", k.String())
	})

	t.Run("coordinates are rounded and add radius", func(t *testing.T) {
		a := Key{Query: "lawn care", Location: "75201", Latitude: f64(32.787654), Longitude: f64(-96.799912), RadiusMeters: 16093}
		b := Key{Query: "Lawn care", Location: "75201 ", Latitude: f64(32.78771), Longitude: f64(-96.79988), RadiusMeters: 16093}
		assert.Equal(t, "lawn care|75201|32.7877,-96.7999|r16093", a.String())
		assert.Equal(t, a.String(), b.String())
	})

	t.Run("radius matters with coordinates", func(t *testing.T) {
		a := Key{Query: "q", Latitude: f64(1), Longitude: f64(2), RadiusMeters: 1000}
		b := Key{Query: "q", Latitude: f64(1), Longitude: f64(2), RadiusMeters: 2000}
		assert.NotEqual(t, a.String(), b.String())
	})
}

func TestCache_PutThenGet(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()
	key := Key{Provider: ProviderPlaces, Query: "mowing", Location: "75201"}

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	c.Put(ctx, key, "payload-1")
	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, "payload-1", got)
}

func TestCache_ProvidersDoNotCollide(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()

	c.Put(ctx, Key{Provider: ProviderPlaces, Query: "q"}, "places")
	_, ok := c.Get(ctx, Key{Provider: ProviderWebSearch, Query: "q"})
	assert.False(t, ok)
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	c, clk := newTestCache()
	ctx := context.Background()
	key := Key{Provider: ProviderWebSearch, Query: "osha rules"}

	c.Put(ctx, key, "old")

	clk.t = clk.t.Add(TTL - time.Minute)
	_, ok := c.Get(ctx, key)
	assert.True(t, ok)

	clk.t = clk.t.Add(2 * time.Minute)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok, "rows older than the TTL must read as a miss")
}

func TestCache_NewestFreshRowWins(t *testing.T) {
	c, clk := newTestCache()
	ctx := context.Background()
	key := Key{Provider: ProviderPlaces, Query: "q"}

	c.Put(ctx, key, "first")
	clk.t = clk.t.Add(time.Hour)
	c.Put(ctx, key, "second")

	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, "second", got)
}

type failingRepo struct{}

func (failingRepo) FindFresh(ctx context.Context, provider, key string, since time.Time) (*entity.LookupCacheEntry, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) Create(ctx context.Context, entry *entity.LookupCacheEntry) error {
	return errors.New("connection refused")
}

func TestCache_StoreErrorsDegrade(t *testing.T) {
	c := NewCache(failingRepo{}, logger.NewNop())
	key := Key{Provider: ProviderPlaces, Query: "q"}

	c.Put(context.Background(), key, "x")
	_, ok := c.Get(context.Background(), key)
	assert.False(t, ok)
}
