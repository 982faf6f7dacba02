package entity

import (
	"time"

	"github.com/google/uuid"
)

type LookupCacheEntry struct {
	Id           uuid.UUID
	Provider     string
	CacheKey     string
	Query        string
	Location     string
	Latitude     *float64
	Longitude    *float64
	RadiusMeters int
	Payload      string
	CreatedAt    time.Time
}
