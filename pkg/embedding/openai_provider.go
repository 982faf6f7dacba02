package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// OpenAIProvider calls /v1/embeddings with text-embedding-3-small truncated to Dimensions.
type OpenAIProvider struct {
	ApiKey  string
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewOpenAIProvider(apiKey string) EmbeddingProvider {
	return &OpenAIProvider{
		ApiKey:  apiKey,
		BaseURL: "https://api.openai.com/v1",
		Model:   "text-embedding-3-small",
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type openAIEmbeddingRequest struct {
	Model      string `json:"model"`
	Input      string `json:"input"`
	Dimensions int    `json:"dimensions,omitempty"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	if p.ApiKey == "" {
		return nil, goerr.New("openai api key not configured")
	}

	body, err := json.Marshal(openAIEmbeddingRequest{
		Model:      p.Model,
		Input:      text,
		Dimensions: Dimensions,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/embeddings", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.ApiKey))

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "openai embedding request failed", goerr.V("model", p.Model))
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("openai embedding error",
			goerr.V("status", resp.StatusCode), goerr.V("body", string(bodyBytes)))
	}

	var out openAIEmbeddingResponse
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to decode openai embedding response")
	}
	if out.Error != nil {
		return nil, goerr.New("openai embedding returned error", goerr.V("message", out.Error.Message))
	}
	if len(out.Data) == 0 {
		return nil, goerr.New("empty embeddings from openai")
	}

	return NewResponse(out.Data[0].Embedding), nil
}
