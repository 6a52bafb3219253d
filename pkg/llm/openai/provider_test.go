package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"civic-voice-be/pkg/capability"
	"civic-voice-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProviderChat(t *testing.T) {
	var captured map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Library opens at 9."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := NewCompatibleProvider("test-key", srv.URL, "gpt-3.5-turbo")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "sys"},
		{Role: llm.RoleUser, Content: "when does the library open"},
	}, llm.WithMaxTokens(120), llm.WithTemperature(0.3))

	require.NoError(t, err)
	assert.Equal(t, "Library opens at 9.", out)
	assert.Equal(t, "gpt-3.5-turbo", captured["model"])
	assert.EqualValues(t, 120, captured["max_tokens"])
	assert.InDelta(t, 0.3, captured["temperature"], 1e-6)
}

func TestOpenAIProviderRequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider("", "gpt-3.5-turbo")
	assert.ErrorIs(t, err, capability.ErrNotConfigured)
}

func TestOpenAIProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	p := NewCompatibleProvider("k", srv.URL, "m")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	assert.Error(t, err)
}
