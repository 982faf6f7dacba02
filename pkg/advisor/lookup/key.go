// Package lookup memoises formatted results of paid external lookups for 24 hours.
package lookup

import (
	"fmt"
	"strings"
)

const (
	ProviderPlaces    = "places"
	ProviderWebSearch = "websearch"
	ProviderGeocode   = "geocode"
)

// Key identifies one logical lookup. Latitude and Longitude are nil when the
// location could not be resolved.
type Key struct {
	Provider     string
	Query        string
	Location     string
	Latitude     *float64
	Longitude    *float64
	RadiusMeters int
}

// NormalizeToken lowercases s and collapses whitespace.
func NormalizeToken(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// HasCoordinates reports whether both coordinates are set.
func (k Key) HasCoordinates() bool {
	return k.Latitude != nil && k.Longitude != nil
}

// String builds the composite cache key. Coordinates are rounded to 4 decimal
// places and the radius only takes part when coordinates do.
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(NormalizeToken(k.Query))
	b.WriteString("|")
	b.WriteString(NormalizeToken(k.Location))
	if k.HasCoordinates() {
		fmt.Fprintf(&b, "|%.4f,%.4f|r%d", *k.Latitude, *k.Longitude, k.RadiusMeters)
	}
	return b.String()
}
