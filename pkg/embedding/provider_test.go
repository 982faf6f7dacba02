package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return NewResponse([]float32{float32(len(text)), 1}), nil
}

func TestMemoProvider(t *testing.T) {
	next := &countingProvider{}
	memo := NewMemoProvider(next, time.Hour)
	ctx := context.Background()

	first, err := memo.Generate(ctx, "lawn care pricing", TaskRetrievalQuery)
	require.NoError(t, err)
	second, err := memo.Generate(ctx, "lawn care pricing", TaskRetrievalQuery)
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
	assert.Same(t, first, second)

	_, err = memo.Generate(ctx, "lawn care pricing", TaskRetrievalDocument)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestMemoProviderDoesNotCacheErrors(t *testing.T) {
	next := &countingProvider{err: errors.New("boom")}
	memo := NewMemoProvider(next, time.Hour)

	_, err := memo.Generate(context.Background(), "q", TaskRetrievalQuery)
	assert.Error(t, err)
	_, err = memo.Generate(context.Background(), "q", TaskRetrievalQuery)
	assert.Error(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestNormalizeVector(t *testing.T) {
	v := NormalizeVector([]float32{3, 4})
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)

	zero := NormalizeVector([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)
}

func TestOllamaProviderPrefixesNomicTasks(t *testing.T) {
	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body ollamaEmbeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		prompt = body.Prompt

		vec := make([]float64, Dimensions)
		vec[0] = 2
		_ = json.NewEncoder(w).Encode(ollamaEmbeddingResponse{Embedding: vec})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "nomic-embed-text")
	res, err := p.Generate(context.Background(), "winter snow removal", TaskRetrievalQuery)
	require.NoError(t, err)
	assert.Equal(t, "search_query: winter snow removal", prompt)
	require.Len(t, res.Embedding.Values, Dimensions)
	assert.InDelta(t, 1.0, res.Embedding.Values[0], 1e-6)

	var norm float64
	for _, v := range res.Embedding.Values {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
}

func TestOllamaProviderRejectsWrongWidth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"embedding":[0.1,0.2,0.3]}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "all-minilm")
	_, err := p.Generate(context.Background(), "x", TaskRetrievalDocument)
	assert.Error(t, err)
}
