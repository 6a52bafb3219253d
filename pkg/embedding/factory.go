package embedding

import "fmt"

// NewProvider picks an embedding backend by name.
func NewProvider(providerType, apiKey, model, ollamaBaseURL string) (EmbeddingProvider, error) {
	switch providerType {
	case "", "openai":
		return NewOpenAIProvider(apiKey, model)
	case "ollama":
		return NewOllamaProvider(ollamaBaseURL, model), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
