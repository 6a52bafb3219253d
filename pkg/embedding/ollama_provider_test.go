package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"civic-voice-be/pkg/capability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaProviderGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req ollamaEmbeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "garbage pickup", req.Prompt)

		_ = json.NewEncoder(w).Encode(ollamaEmbeddingResponse{Embedding: []float64{3, 4}})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "")
	vec, err := p.Generate(context.Background(), "garbage pickup")

	require.NoError(t, err)
	assert.InDelta(t, 0.6, vec[0], 1e-6)
	assert.InDelta(t, 0.8, vec[1], 1e-6)
}

func TestOllamaProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "missing")

	_, err := p.Generate(context.Background(), "hello")
	assert.Error(t, err)

	_, err = p.Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, capability.ErrEmptyInput)
}

func TestNewProvider(t *testing.T) {
	_, err := NewProvider("openai", "", "", "")
	assert.ErrorIs(t, err, capability.ErrNotConfigured)

	p, err := NewProvider("ollama", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", p.Model())

	_, err = NewProvider("gemini", "key", "", "")
	assert.Error(t, err)
}
