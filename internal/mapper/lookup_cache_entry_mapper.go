package mapper

import (
	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/model"
)

type LookupCacheEntryMapper struct{}

func NewLookupCacheEntryMapper() *LookupCacheEntryMapper {
	return &LookupCacheEntryMapper{}
}

func (m *LookupCacheEntryMapper) ToEntity(e *model.LookupCacheEntry) *entity.LookupCacheEntry {
	if e == nil {
		return nil
	}
	return &entity.LookupCacheEntry{
		Id:           e.Id,
		Provider:     e.Provider,
		CacheKey:     e.CacheKey,
		Query:        e.Query,
		Location:     e.Location,
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		RadiusMeters: e.RadiusMeters,
		Payload:      e.Payload,
		CreatedAt:    e.CreatedAt,
	}
}

func (m *LookupCacheEntryMapper) ToModel(e *entity.LookupCacheEntry) *model.LookupCacheEntry {
	if e == nil {
		return nil
	}
	return &model.LookupCacheEntry{
		Id:           e.Id,
		Provider:     e.Provider,
		CacheKey:     e.CacheKey,
		Query:        e.Query,
		Location:     e.Location,
		Latitude:     e.Latitude,
		Longitude:    e.Longitude,
		RadiusMeters: e.RadiusMeters,
		Payload:      e.Payload,
		CreatedAt:    e.CreatedAt,
	}
}
