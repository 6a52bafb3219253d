package factory

import (
	"testing"

	"civic-voice-be/pkg/capability"
	"civic-voice-be/pkg/llm/ollama"
	"civic-voice-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider("ollama", "", "llama3", "")
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)
	assert.Equal(t, "http://localhost:11434", p.(*ollama.OllamaProvider).BaseURL)

	p, err = NewLLMProvider("huggingface", "hf-key", "meta-llama/Llama-3.1-8B-Instruct", "")
	require.NoError(t, err)
	assert.IsType(t, &openai.OpenAIProvider{}, p)

	_, err = NewLLMProvider("openai", "", "gpt-3.5-turbo", "")
	assert.ErrorIs(t, err, capability.ErrNotConfigured)

	_, err = NewLLMProvider("anthropic", "k", "m", "")
	assert.Error(t, err)
}
