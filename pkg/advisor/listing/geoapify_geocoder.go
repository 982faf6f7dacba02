package listing

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"
)

// GeoapifyGeocoder calls the Geoapify forward geocoding API.
type GeoapifyGeocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewGeoapifyGeocoder(apiKey string, limiter *rate.Limiter) *GeoapifyGeocoder {
	return &GeoapifyGeocoder{
		apiKey:  apiKey,
		baseURL: "https://api.geoapify.com/v1/geocode/search",
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: limiter,
	}
}

func (g *GeoapifyGeocoder) WithBaseURL(baseURL string) *GeoapifyGeocoder {
	g.baseURL = baseURL
	return g
}

type geoapifyResponse struct {
	Results []struct {
		Lat       float64 `json:"lat"`
		Lon       float64 `json:"lon"`
		Formatted string  `json:"formatted"`
	} `json:"results"`
}

func (g *GeoapifyGeocoder) Geocode(ctx context.Context, address string) (*GeoPoint, error) {
	if g.apiKey == "" {
		return nil, ErrGeocoderNotConfigured
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Add("text", address)
	params.Add("format", "json")
	params.Add("limit", "1")
	params.Add("apiKey", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "geoapify request failed", goerr.V("address", address))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("geoapify http error", goerr.V("status", resp.StatusCode), goerr.V("body", string(body)))
	}

	var out geoapifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to decode geoapify response")
	}
	if len(out.Results) == 0 {
		return nil, ErrNoGeocodeResult
	}

	r := out.Results[0]
	return &GeoPoint{Latitude: r.Lat, Longitude: r.Lon, FormattedAddress: r.Formatted}, nil
}
