package factory

import (
	"trade-advisor-be/pkg/llm"
	"trade-advisor-be/pkg/llm/ollama"
	"trade-advisor-be/pkg/llm/openai"

	"github.com/m-mizutani/goerr/v2"
)

// NewLLMProvider selects the completion backend. An empty type means OpenAI.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai", "":
		return openai.NewProvider(apiKey, "", modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, goerr.New("unsupported LLM provider", goerr.V("provider", providerType))
	}
}
