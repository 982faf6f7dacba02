package implementation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lookupCacheRedisPrefix = "lookup_cache"

// RedisLookupCacheRepository appends each entry to a list per (provider, key).
// Lists carry no TTL; staleness is checked on read against since.
type RedisLookupCacheRepository struct {
	rdb *redis.Client
}

func NewRedisLookupCacheRepository(rdb *redis.Client) contract.LookupCacheRepository {
	return &RedisLookupCacheRepository{rdb: rdb}
}

func (r *RedisLookupCacheRepository) listKey(provider, key string) string {
	return fmt.Sprintf("%s:%s:%s", lookupCacheRedisPrefix, provider, key)
}

func (r *RedisLookupCacheRepository) FindFresh(ctx context.Context, provider, key string, since time.Time) (*entity.LookupCacheEntry, error) {
	raw, err := r.rdb.LRange(ctx, r.listKey(provider, key), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var newest *entity.LookupCacheEntry
	for _, item := range raw {
		var e entity.LookupCacheEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		if !e.CreatedAt.After(since) {
			continue
		}
		if newest == nil || e.CreatedAt.After(newest.CreatedAt) {
			entry := e
			newest = &entry
		}
	}
	return newest, nil
}

func (r *RedisLookupCacheRepository) Create(ctx context.Context, entry *entity.LookupCacheEntry) error {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.rdb.LPush(ctx, r.listKey(entry.Provider, entry.CacheKey), data).Err()
}
