package factory

import (
	"fmt"

	"spacebio-be/pkg/llm"
	"spacebio-be/pkg/llm/grok"
	"spacebio-be/pkg/llm/ollama"
	"spacebio-be/pkg/llm/openrouter"
)

// NewLLMProvider constructs a chat backend by name. Backend choice is a
// configuration switch; callers only ever see llm.LLMProvider.
func NewLLMProvider(providerType, apiKey, baseURL, modelName string) (llm.LLMProvider, error) {
	switch providerType {
	case "openrouter":
		return openrouter.NewOpenRouterProvider(apiKey, baseURL, modelName), nil
	case "grok":
		return grok.NewGrokProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
