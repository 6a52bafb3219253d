package factory

import (
	"fmt"

	"civic-voice-be/pkg/llm"
	"civic-voice-be/pkg/llm/ollama"
	"civic-voice-be/pkg/llm/openai"
)

const huggingFaceRouterURL = "https://router.huggingface.co/v1"

func NewLLMProvider(providerType, apiKey, modelName, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "", "openai":
		return openai.NewOpenAIProvider(apiKey, modelName)
	case "huggingface":
		if baseURL == "" {
			baseURL = huggingFaceRouterURL
		}
		return openai.NewCompatibleProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
