package contract

import (
	"context"
	"time"

	"trade-advisor-be/internal/entity"
)

type LookupCacheRepository interface {
	// FindFresh returns the newest entry for (provider, key) created after since,
	// or nil when there is none.
	FindFresh(ctx context.Context, provider, key string, since time.Time) (*entity.LookupCacheEntry, error)
	// Create appends an entry. Existing rows for the same key are never touched.
	Create(ctx context.Context, entry *entity.LookupCacheEntry) error
}
