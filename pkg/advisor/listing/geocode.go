package listing

import (
	"context"
	"encoding/json"
	"strings"

	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/pkg/advisor/lookup"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrGeocoderNotConfigured = goerr.New("geocoder not configured")
	ErrNoGeocodeResult       = goerr.New("no geocode result")
)

type GeoPoint struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeoPoint, error)
}

var placeholderLocations = map[string]bool{
	"unknown":       true,
	"n/a":           true,
	"na":            true,
	"none":          true,
	"not specified": true,
	"near me":       true,
	"my area":       true,
	"your area":     true,
	"local":         true,
}

// IsPlaceholderLocation reports whether text carries no usable location.
func IsPlaceholderLocation(text string) bool {
	t := lookup.NormalizeToken(text)
	return t == "" || placeholderLocations[strings.Trim(t, ".")]
}

// CachedGeocoder stores successful geocodes in the lookup cache. Failures are
// never cached.
type CachedGeocoder struct {
	next   Geocoder
	cache  *lookup.Cache
	logger logger.ILogger
}

func NewCachedGeocoder(next Geocoder, cache *lookup.Cache, log logger.ILogger) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache, logger: log}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (*GeoPoint, error) {
	key := lookup.Key{Provider: lookup.ProviderGeocode, Location: address}

	if payload, ok := g.cache.Get(ctx, key); ok {
		var p GeoPoint
		if err := json.Unmarshal([]byte(payload), &p); err == nil {
			return &p, nil
		}
	}

	p, err := g.next.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		g.cache.Put(ctx, key, string(data))
	}
	return p, nil
}
