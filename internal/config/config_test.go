package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENABLE_LLM_RESPONSES", "ENABLE_VECTOR_EMBEDDINGS", "VECTOR_SEARCH_LIMIT",
		"VECTOR_MIN_SIMILARITY", "CAPABILITY_TIMEOUT_MS", "VECTOR_STORE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.False(t, cfg.Features.LLMResponses)
	assert.False(t, cfg.Features.VectorEmbeddings)
	assert.Equal(t, 5, cfg.Vector.Limit)
	assert.Equal(t, 0.7, cfg.Vector.MinSimilarity)
	assert.Equal(t, 15*time.Second, cfg.Ai.CapabilityTimeout)
}

func TestFeatureFlags(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{" true ", true},
		{"TRUE", false},
		{"True", false},
		{"1", false},
		{"yes", false},
		{"false", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("ENABLE_LLM_RESPONSES", tt.value)
			t.Setenv("ENABLE_VECTOR_EMBEDDINGS", tt.value)

			cfg := Load()
			assert.Equal(t, tt.want, cfg.Features.LLMResponses)
			assert.Equal(t, tt.want, cfg.Features.VectorEmbeddings)
		})
	}
}

func TestSpeechKeysFallBackToOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	unsetEnv(t, "STT_API_KEY")
	unsetEnv(t, "TTS_API_KEY")
	t.Setenv("LANGUAGE_DETECTION_API_KEY", "lang-key")

	cfg := Load()

	assert.Equal(t, "sk-test", cfg.Keys.SpeechToText)
	assert.Equal(t, "sk-test", cfg.Keys.TextToSpeech)
	assert.Equal(t, "lang-key", cfg.Keys.LanguageDetect)
}

func TestUnparseableTunablesUseDefaults(t *testing.T) {
	t.Setenv("VECTOR_SEARCH_LIMIT", "many")
	t.Setenv("VECTOR_MIN_SIMILARITY", "high")

	cfg := Load()

	assert.Equal(t, 5, cfg.Vector.Limit)
	assert.Equal(t, 0.7, cfg.Vector.MinSimilarity)
}

// unsetEnv removes key for the duration of the test; t.Setenv restores it.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
