package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"
)

var ErrPlacesNotConfigured = goerr.New("places search not configured")

// BusinessListing is one provider row; it only lives long enough to be formatted.
type BusinessListing struct {
	Name        string
	Address     string
	Phone       string
	Rating      float64
	ReviewCount int
	Website     string
	Status      string
}

// LocationBias restricts a search to a circle around a point.
type LocationBias struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
}

type PlacesSearcher interface {
	SearchText(ctx context.Context, query string, bias *LocationBias, maxResults int) ([]BusinessListing, error)
}

const placesFieldMask = "places.displayName,places.formattedAddress,places.nationalPhoneNumber," +
	"places.rating,places.userRatingCount,places.websiteUri,places.businessStatus"

// GooglePlacesClient calls Places API (New) Text Search.
type GooglePlacesClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewGooglePlacesClient(apiKey string, limiter *rate.Limiter) *GooglePlacesClient {
	return &GooglePlacesClient{
		apiKey:  apiKey,
		baseURL: "https://places.googleapis.com/v1",
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: limiter,
	}
}

func (c *GooglePlacesClient) WithBaseURL(baseURL string) *GooglePlacesClient {
	c.baseURL = baseURL
	return c
}

type placesLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type placesCircle struct {
	Center placesLatLng `json:"center"`
	Radius float64      `json:"radius"`
}

type placesLocationBias struct {
	Circle placesCircle `json:"circle"`
}

type placesSearchRequest struct {
	TextQuery      string              `json:"textQuery"`
	MaxResultCount int                 `json:"maxResultCount,omitempty"`
	LocationBias   *placesLocationBias `json:"locationBias,omitempty"`
}

type placesSearchResponse struct {
	Places []struct {
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		FormattedAddress    string  `json:"formattedAddress"`
		NationalPhoneNumber string  `json:"nationalPhoneNumber"`
		Rating              float64 `json:"rating"`
		UserRatingCount     int     `json:"userRatingCount"`
		WebsiteURI          string  `json:"websiteUri"`
		BusinessStatus      string  `json:"businessStatus"`
	} `json:"places"`
}

func (c *GooglePlacesClient) SearchText(ctx context.Context, query string, bias *LocationBias, maxResults int) ([]BusinessListing, error) {
	if c.apiKey == "" {
		return nil, ErrPlacesNotConfigured
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	reqBody := placesSearchRequest{TextQuery: query, MaxResultCount: maxResults}
	if bias != nil {
		reqBody.LocationBias = &placesLocationBias{Circle: placesCircle{
			Center: placesLatLng{Latitude: bias.Latitude, Longitude: bias.Longitude},
			Radius: float64(bias.RadiusMeters),
		}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", placesFieldMask)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "places request failed", goerr.V("query", query))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("places api error", goerr.V("status", resp.StatusCode), goerr.V("body", string(body)))
	}

	var out placesSearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to decode places response")
	}

	listings := make([]BusinessListing, 0, len(out.Places))
	for _, p := range out.Places {
		listings = append(listings, BusinessListing{
			Name:        strings.TrimSpace(p.DisplayName.Text),
			Address:     p.FormattedAddress,
			Phone:       p.NationalPhoneNumber,
			Rating:      p.Rating,
			ReviewCount: p.UserRatingCount,
			Website:     p.WebsiteURI,
			Status:      p.BusinessStatus,
		})
	}
	return listings, nil
}
