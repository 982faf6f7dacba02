package model

import (
	"time"

	"github.com/google/uuid"
)

// LookupCacheEntry has no unique constraint on CacheKey: concurrent misses may
// insert duplicate rows and readers pick any fresh one.
type LookupCacheEntry struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Provider     string    `gorm:"type:varchar(32);not null;index:idx_lookup_cache_key,priority:1"`
	CacheKey     string    `gorm:"type:text;not null;index:idx_lookup_cache_key,priority:2"`
	Query        string    `gorm:"type:text"`
	Location     string    `gorm:"type:text"`
	Latitude     *float64
	Longitude    *float64
	RadiusMeters int
	Payload      string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

func (LookupCacheEntry) TableName() string {
	return "lookup_cache_entries"
}
