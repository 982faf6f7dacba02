package moderation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProvider_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/moderations", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req moderationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "omni-moderation-latest", req.Model)

		_, _ = w.Write([]byte(`{"results":[{"flagged":true,"categories":{"violence":true},"category_scores":{"violence":0.81,"hate":0.01}}]}`))
	}))
	defer srv.Close()

	v, err := NewOpenAIProvider("sk-test").WithBaseURL(srv.URL).Classify(context.Background(), "text")
	require.NoError(t, err)
	assert.True(t, v.Flagged)
	assert.InDelta(t, 0.81, v.Scores["violence"], 1e-9)
}

func TestOpenAIProvider_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := NewOpenAIProvider("").Classify(context.Background(), "text")
		assert.Error(t, err)
	})

	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewOpenAIProvider("sk").WithBaseURL(srv.URL).Classify(context.Background(), "text")
		assert.Error(t, err)
	})
}
