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

// GoogleGeocoder calls the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewGoogleGeocoder(apiKey string, limiter *rate.Limiter) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/geocode/json",
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: limiter,
	}
}

func (g *GoogleGeocoder) WithBaseURL(baseURL string) *GoogleGeocoder {
	g.baseURL = baseURL
	return g
}

type googleGeocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*GeoPoint, error) {
	if g.apiKey == "" {
		return nil, ErrGeocoderNotConfigured
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Add("address", address)
	params.Add("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "geocode request failed", goerr.V("address", address))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("geocode http error", goerr.V("status", resp.StatusCode))
	}

	var out googleGeocodeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to decode geocode response")
	}

	switch out.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, ErrNoGeocodeResult
	default:
		return nil, goerr.New("geocode api error", goerr.V("status", out.Status), goerr.V("message", out.ErrorMessage))
	}
	if len(out.Results) == 0 {
		return nil, ErrNoGeocodeResult
	}

	r := out.Results[0]
	return &GeoPoint{
		Latitude:         r.Geometry.Location.Lat,
		Longitude:        r.Geometry.Location.Lng,
		FormattedAddress: r.FormattedAddress,
	}, nil
}
