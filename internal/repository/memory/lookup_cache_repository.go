package memory

import (
	"context"
	"sync"
	"time"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// LookupCacheRepository keeps cache rows in process. Items never expire in
// go-cache itself: freshness is decided by the caller's since bound, like the
// SQL backend.
type LookupCacheRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewLookupCacheRepository() contract.LookupCacheRepository {
	return &LookupCacheRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func slotKey(provider, key string) string {
	return provider + "|" + key
}

func (r *LookupCacheRepository) FindFresh(ctx context.Context, provider, key string, since time.Time) (*entity.LookupCacheEntry, error) {
	x, found := r.cache.Get(slotKey(provider, key))
	if !found {
		return nil, nil
	}

	var newest *entity.LookupCacheEntry
	for _, e := range x.([]*entity.LookupCacheEntry) {
		if !e.CreatedAt.After(since) {
			continue
		}
		if newest == nil || e.CreatedAt.After(newest.CreatedAt) {
			newest = e
		}
	}
	if newest == nil {
		return nil, nil
	}
	cp := *newest
	return &cp, nil
}

func (r *LookupCacheRepository) Create(ctx context.Context, entry *entity.LookupCacheEntry) error {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	cp := *entry

	r.mu.Lock()
	defer r.mu.Unlock()

	slot := slotKey(entry.Provider, entry.CacheKey)
	var rows []*entity.LookupCacheEntry
	if x, found := r.cache.Get(slot); found {
		rows = x.([]*entity.LookupCacheEntry)
	}
	next := make([]*entity.LookupCacheEntry, len(rows), len(rows)+1)
	copy(next, rows)
	r.cache.Set(slot, append(next, &cp), cache.NoExpiration)
	return nil
}
