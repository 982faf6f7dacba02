package lookup

import (
	"context"
	"time"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/internal/repository/contract"
)

// TTL is enforced on read; rows are never evicted.
const TTL = 24 * time.Hour

// Cache fronts the lookup repository. Concurrent misses on the same key may
// both call the provider and both write; readers take the newest fresh row.
type Cache struct {
	repo   contract.LookupCacheRepository
	logger logger.ILogger
	now    func() time.Time
}

func NewCache(repo contract.LookupCacheRepository, log logger.ILogger) *Cache {
	return &Cache{repo: repo, logger: log, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Get returns the payload of the newest entry younger than TTL. Store errors read as a miss.
func (c *Cache) Get(ctx context.Context, key Key) (string, bool) {
	k := key.String()
	entry, err := c.repo.FindFresh(ctx, key.Provider, k, c.now().Add(-TTL))
	if err != nil {
		c.logger.Warn("LOOKUP_CACHE", "Cache read failed, treating as miss", map[string]interface{}{
			"provider": key.Provider,
			"key":      k,
			"error":    err.Error(),
		})
		return "", false
	}
	if entry == nil {
		c.logger.Debug("LOOKUP_CACHE", "Cache miss", map[string]interface{}{"provider": key.Provider, "key": k})
		return "", false
	}
	c.logger.Debug("LOOKUP_CACHE", "Cache hit", map[string]interface{}{
		"provider": key.Provider,
		"key":      k,
		"age":      c.now().Sub(entry.CreatedAt).String(),
	})
	return entry.Payload, true
}

// Put inserts a new entry. Failures are logged and otherwise ignored.
func (c *Cache) Put(ctx context.Context, key Key, payload string) {
	entry := &entity.LookupCacheEntry{
		Provider:     key.Provider,
		CacheKey:     key.String(),
		Query:        key.Query,
		Location:     key.Location,
		Latitude:     key.Latitude,
		Longitude:    key.Longitude,
		RadiusMeters: key.RadiusMeters,
		Payload:      payload,
		CreatedAt:    c.now(),
	}
	if err := c.repo.Create(ctx, entry); err != nil {
		c.logger.Warn("LOOKUP_CACHE", "Cache write failed", map[string]interface{}{
			"provider": key.Provider,
			"key":      entry.CacheKey,
			"error":    err.Error(),
		})
	}
}
