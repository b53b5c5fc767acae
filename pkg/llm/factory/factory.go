package factory

import (
	"ai-websearch-be/pkg/llm"
	"ai-websearch-be/pkg/llm/ollama"
	"ai-websearch-be/pkg/llm/openai"
	"fmt"
)

func NewLLMProvider(providerType, modelName, baseURL, openAIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		if modelName == "" {
			modelName = "gpt-3.5-turbo-0125" // Default
		}
		return openai.NewOpenAIProvider(openAIKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
