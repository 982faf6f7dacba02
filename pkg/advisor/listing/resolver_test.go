package listing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/internal/repository/memory"
	"trade-advisor-be/pkg/advisor/lookup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	calls int
	point *GeoPoint
	err   error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (*GeoPoint, error) {
	f.calls++
	return f.point, f.err
}

type fakePlaces struct {
	calls     int
	lastQuery string
	lastBias  *LocationBias
	lastMax   int
	listings  []BusinessListing
	err       error
}

func (f *fakePlaces) SearchText(ctx context.Context, query string, bias *LocationBias, maxResults int) ([]BusinessListing, error) {
	f.calls++
	f.lastQuery, f.lastBias, f.lastMax = query, bias, maxResults
	return f.listings, f.err
}

func newTestResolver(geo Geocoder, places PlacesSearcher) (*Resolver, *lookup.Cache) {
	cache := lookup.NewCache(memory.NewLookupCacheRepository(), logger.NewNop())
	return NewResolver(geo, places, cache, logger.NewNop(), DefaultRadiusMeters, true), cache
}

func dallas() *GeoPoint {
	return &GeoPoint{Latitude: 32.787612, Longitude: -96.799388, FormattedAddress: "Dallas, TX 75201, USA"}
}

func TestResolver_GeocodesBiasesAndCaches(t *testing.T) {
	geo := &fakeGeocoder{point: dallas()}
	places := &fakePlaces{listings: []BusinessListing{
		{Name: "Green Acres", Rating: 4.2, ReviewCount: 10},
		{Name: "Lone Star Lawns", Rating: 4.8, ReviewCount: 50},
		{Name: "green acres", Rating: 5.0, ReviewCount: 1},
		{Name: "Blade Runners", Rating: 4.8, ReviewCount: 120},
	}}
	r, cache := newTestResolver(geo, places)
	ctx := context.Background()

	out := r.ResolveBusinesses(ctx, "lawn care", "75201")

	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, 1, places.calls)
	assert.Equal(t, RequestResults, places.lastMax)
	require.NotNil(t, places.lastBias)
	assert.Equal(t, DefaultRadiusMeters, places.lastBias.RadiusMeters)
	assert.InDelta(t, 32.787612, places.lastBias.Latitude, 1e-9)
	assert.Equal(t, "lawn care", places.lastQuery)

	// rating desc, reviews desc, duplicate name dropped
	iBlade := strings.Index(out, "Blade Runners")
	iLone := strings.Index(out, "Lone Star Lawns")
	iGreen := strings.Index(out, "Green Acres")
	assert.True(t, iBlade >= 0 && iBlade < iLone && iLone < iGreen, out)
	assert.Equal(t, 1, strings.Count(strings.ToLower(out), "green acres"))
	assert.Contains(t, out, "Dallas, TX 75201, USA")

	lat, lng := 32.787612, -96.799388
	cached, ok := cache.Get(ctx, lookup.Key{
		Provider: lookup.ProviderPlaces, Query: "lawn care", Location: "75201",
		Latitude: &lat, Longitude: &lng, RadiusMeters: DefaultRadiusMeters,
	})
	require.True(t, ok)
	assert.Equal(t, out, cached)

	again := r.ResolveBusinesses(ctx, "Lawn  Care", "75201")
	assert.Equal(t, out, again)
	assert.Equal(t, 1, places.calls)
}

func TestResolver_DisplaysTopTen(t *testing.T) {
	var listings []BusinessListing
	for i := 0; i < 15; i++ {
		listings = append(listings, BusinessListing{Name: strings.Repeat("x", i+1), Rating: float64(i) / 5})
	}
	r, _ := newTestResolver(&fakeGeocoder{point: dallas()}, &fakePlaces{listings: listings})

	out := r.ResolveBusinesses(context.Background(), "pest control", "Dallas, TX")
	assert.Contains(t, out, "\n10. ")
	assert.NotContains(t, out, "\n11. ")
}

func TestResolver_ZeroResultsAreNotCached(t *testing.T) {
	places := &fakePlaces{}
	r, _ := newTestResolver(&fakeGeocoder{point: dallas()}, places)
	ctx := context.Background()

	out := r.ResolveBusinesses(ctx, "snow removal", "75201")
	assert.Equal(t, NoResultsMessage, out)
	assert.Contains(t, out, "Do NOT invent")

	r.ResolveBusinesses(ctx, "snow removal", "75201")
	assert.Equal(t, 2, places.calls, "a zero-result answer must not be memoised")
}

func TestResolver_ErrorsAreNotCached(t *testing.T) {
	places := &fakePlaces{err: errors.New("503 backend unavailable")}
	r, _ := newTestResolver(&fakeGeocoder{point: dallas()}, places)
	ctx := context.Background()

	out := r.ResolveBusinesses(ctx, "roofing", "75201")
	assert.Contains(t, out, "could not be retrieved")

	places.err = nil
	places.listings = []BusinessListing{{Name: "Top Roof", Rating: 4.9, ReviewCount: 3}}
	out = r.ResolveBusinesses(ctx, "roofing", "75201")
	assert.Contains(t, out, "Top Roof")
	assert.Equal(t, 2, places.calls)
}

func TestResolver_GeocodeFailureFallsBackToText(t *testing.T) {
	places := &fakePlaces{listings: []BusinessListing{{Name: "A"}}}
	r, _ := newTestResolver(&fakeGeocoder{err: errors.New("quota")}, places)

	r.ResolveBusinesses(context.Background(), "plumber", "Springfield")

	assert.Nil(t, places.lastBias)
	assert.Equal(t, "plumber in Springfield", places.lastQuery)
}

func TestResolver_PlaceholderLocationSkipsGeocode(t *testing.T) {
	for _, loc := range []string{"", "near me", "Unknown", "N/A", "not specified"} {
		geo := &fakeGeocoder{point: dallas()}
		places := &fakePlaces{listings: []BusinessListing{{Name: "A"}}}
		r, _ := newTestResolver(geo, places)

		r.ResolveBusinesses(context.Background(), "plumber", loc)

		assert.Equal(t, 0, geo.calls, loc)
		assert.Equal(t, "plumber", places.lastQuery, loc)
	}
}

func TestResolver_Unavailable(t *testing.T) {
	places := &fakePlaces{}
	cache := lookup.NewCache(memory.NewLookupCacheRepository(), logger.NewNop())
	r := NewResolver(&fakeGeocoder{}, places, cache, logger.NewNop(), 0, false)

	assert.Equal(t, UnavailableMessage, r.ResolveBusinesses(context.Background(), "q", "75201"))
	assert.Equal(t, 0, places.calls)
}

func TestCachedGeocoder(t *testing.T) {
	cache := lookup.NewCache(memory.NewLookupCacheRepository(), logger.NewNop())

	t.Run("caches hits", func(t *testing.T) {
		inner := &fakeGeocoder{point: dallas()}
		g := NewCachedGeocoder(inner, cache, logger.NewNop())
		p1, err := g.Geocode(context.Background(), "75201")
		require.NoError(t, err)
		p2, err := g.Geocode(context.Background(), " 75201 ")
		require.NoError(t, err)
		assert.Equal(t, p1, p2)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("does not cache failures", func(t *testing.T) {
		inner := &fakeGeocoder{err: ErrNoGeocodeResult}
		g := NewCachedGeocoder(inner, cache, logger.NewNop())
		_, err := g.Geocode(context.Background(), "nowhere")
		assert.Error(t, err)
		_, err = g.Geocode(context.Background(), "nowhere")
		assert.Error(t, err)
		assert.Equal(t, 2, inner.calls)
	})
}
