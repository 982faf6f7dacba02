package websearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"
)

var ErrNotConfigured = goerr.New("web search not configured")

type Result struct {
	Title       string
	Link        string
	Snippet     string
	DisplayLink string
}

type Client interface {
	Search(ctx context.Context, query string, num int) ([]Result, error)
}

// GoogleCSEClient calls the Custom Search JSON API.
type GoogleCSEClient struct {
	apiKey   string
	engineID string
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
}

func NewGoogleCSEClient(apiKey, engineID string, limiter *rate.Limiter) *GoogleCSEClient {
	return &GoogleCSEClient{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  "https://www.googleapis.com/customsearch/v1",
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  limiter,
	}
}

func (c *GoogleCSEClient) WithBaseURL(baseURL string) *GoogleCSEClient {
	c.baseURL = baseURL
	return c
}

type cseResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Snippet     string `json:"snippet"`
		HTMLSnippet string `json:"htmlSnippet"`
		DisplayLink string `json:"displayLink"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *GoogleCSEClient) Search(ctx context.Context, query string, num int) ([]Result, error) {
	if c.apiKey == "" || c.engineID == "" {
		return nil, ErrNotConfigured
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Add("key", c.apiKey)
	params.Add("cx", c.engineID)
	params.Add("q", query)
	params.Add("num", strconv.Itoa(num))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "web search request failed", goerr.V("query", query))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var out cseResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to decode web search response", goerr.V("status", resp.StatusCode))
	}
	if out.Error != nil {
		return nil, goerr.New("web search api error", goerr.V("code", out.Error.Code), goerr.V("message", out.Error.Message))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("web search http error", goerr.V("status", resp.StatusCode))
	}

	results := make([]Result, 0, len(out.Items))
	for _, item := range out.Items {
		snippet := item.Snippet
		if item.HTMLSnippet != "" {
			snippet = CleanHTML(item.HTMLSnippet)
		}
		results = append(results, Result{
			Title:       strings.TrimSpace(item.Title),
			Link:        item.Link,
			Snippet:     snippet,
			DisplayLink: item.DisplayLink,
		})
	}
	return results, nil
}

// CleanHTML returns the visible text of an HTML fragment with whitespace collapsed.
func CleanHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
