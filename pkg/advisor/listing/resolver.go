// Package listing resolves local competitor businesses through a geocoder and
// a business-listing text search.
package listing

import (
	"context"
	"errors"
	"strings"

	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/pkg/advisor/lookup"
)

const (
	// RequestResults is asked of the provider so de-duplication still leaves DisplayResults.
	RequestResults      = 15
	DisplayResults      = 10
	DefaultRadiusMeters = 16093
)

type Resolver struct {
	geocoder     Geocoder
	places       PlacesSearcher
	cache        *lookup.Cache
	logger       logger.ILogger
	radiusMeters int
	enabled      bool
}

// NewResolver builds a resolver. When enabled is false every call answers
// UnavailableMessage without touching any provider. geocoder may be nil.
func NewResolver(geocoder Geocoder, places PlacesSearcher, cache *lookup.Cache, log logger.ILogger, radiusMeters int, enabled bool) *Resolver {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	return &Resolver{
		geocoder:     geocoder,
		places:       places,
		cache:        cache,
		logger:       log,
		radiusMeters: radiusMeters,
		enabled:      enabled,
	}
}

// ResolveBusinesses returns a ranked plain-text competitor block, or one of the
// fixed unavailable/error/no-result strings. It never returns an error.
func (r *Resolver) ResolveBusinesses(ctx context.Context, query, locationText string) string {
	if !r.enabled {
		return UnavailableMessage
	}

	query = strings.TrimSpace(query)
	locationText = strings.TrimSpace(locationText)
	usableLocation := !IsPlaceholderLocation(locationText)

	var point *GeoPoint
	if usableLocation && r.geocoder != nil {
		p, err := r.geocoder.Geocode(ctx, locationText)
		if err != nil {
			r.logger.Warn("LISTING", "Geocoding failed, falling back to text search", map[string]interface{}{
				"location": locationText,
				"error":    err.Error(),
			})
		} else {
			point = p
		}
	}

	key := lookup.Key{
		Provider:     lookup.ProviderPlaces,
		Query:        query,
		Location:     locationText,
		RadiusMeters: r.radiusMeters,
	}
	var bias *LocationBias
	if point != nil {
		lat, lng := point.Latitude, point.Longitude
		key.Latitude, key.Longitude = &lat, &lng
		bias = &LocationBias{Latitude: lat, Longitude: lng, RadiusMeters: r.radiusMeters}
	}

	if payload, ok := r.cache.Get(ctx, key); ok {
		r.logger.Info("LISTING", "Competitor data served from cache", map[string]interface{}{"key": key.String()})
		return payload
	}

	textQuery := query
	if bias == nil && usableLocation {
		textQuery = query + " in " + locationText
	}

	listings, err := r.places.SearchText(ctx, textQuery, bias, RequestResults)
	if err != nil {
		if errors.Is(err, ErrPlacesNotConfigured) {
			return UnavailableMessage
		}
		r.logger.Error("LISTING", "Business listing search failed", map[string]interface{}{
			"query": textQuery,
			"error": err.Error(),
		})
		return ErrorMessage(err)
	}

	listings = Dedupe(listings)
	if len(listings) == 0 {
		r.logger.Info("LISTING", "Business listing search returned no results", map[string]interface{}{"query": textQuery})
		return NoResultsMessage
	}

	Rank(listings)
	if len(listings) > DisplayResults {
		listings = listings[:DisplayResults]
	}

	label := locationText
	if point != nil && point.FormattedAddress != "" {
		label = point.FormattedAddress
	}
	if !usableLocation {
		label = ""
	}

	block := Format(listings, label)
	r.cache.Put(ctx, key, block)
	return block
}
