package factory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trade-advisor-be/pkg/llm"
	"trade-advisor-be/pkg/llm/ollama"
	"trade-advisor-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider("", "gpt-4o-mini", "", "key")
	require.NoError(t, err)
	assert.IsType(t, &openai.Provider{}, p)

	p, err = NewLLMProvider("ollama", "llama3", "", "")
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)

	_, err = NewLLMProvider("huggingface", "x", "", "")
	assert.Error(t, err)
}

func TestOllamaChat(t *testing.T) {
	var got struct {
		Model    string        `json:"model"`
		Messages []llm.Message `json:"messages"`
		Stream   bool          `json:"stream"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"Charge $45 per visit."},"done":true}`))
	}))
	defer srv.Close()

	p, err := NewLLMProvider("ollama", "llama3", srv.URL+"/", "")
	require.NoError(t, err)

	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "advisor"},
		{Role: "user", Content: "how much for mowing?"},
	}, llm.WithModel("gpt-4o"))
	require.NoError(t, err)
	assert.Equal(t, "Charge $45 per visit.", reply)
	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	assert.Len(t, got.Messages, 2)
}

func TestOllamaChatError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'llama3' not found"}`))
	}))
	defer srv.Close()

	p, err := NewLLMProvider("ollama", "llama3", srv.URL, "")
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "hi")
	assert.Error(t, err)
}

func TestOpenAIChatRequiresKey(t *testing.T) {
	p, err := NewLLMProvider("openai", "gpt-4o-mini", "", "")
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "hi")
	assert.Error(t, err)
}
