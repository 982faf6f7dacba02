package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var ErrNotConfigured = goerr.New("moderation provider not configured")

// OpenAIProvider calls the /v1/moderations endpoint.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: "https://api.openai.com/v1",
		model:   "omni-moderation-latest",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL points the provider at another host, e.g. a test server.
func (p *OpenAIProvider) WithBaseURL(baseURL string) *OpenAIProvider {
	p.baseURL = baseURL
	return p
}

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged        bool               `json:"flagged"`
		Categories     map[string]bool    `json:"categories"`
		CategoryScores map[string]float64 `json:"category_scores"`
	} `json:"results"`
}

func (p *OpenAIProvider) Classify(ctx context.Context, text string) (*Verdict, error) {
	if p.apiKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(moderationRequest{Model: p.model, Input: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/moderations", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "moderation request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read moderation response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("moderation provider error",
			goerr.V("status", resp.StatusCode), goerr.V("body", string(raw)))
	}

	var out moderationResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to decode moderation response")
	}
	if len(out.Results) == 0 {
		return nil, goerr.New("moderation response has no results")
	}

	r := out.Results[0]
	return &Verdict{
		Flagged:    r.Flagged,
		Categories: r.Categories,
		Scores:     r.CategoryScores,
	}, nil
}
