package nlp

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

func TestGoogleProviderAnalyzeEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var req analyzeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "PLAIN_TEXT", req.Document.Type)
		assert.Equal(t, "traffic to Koramangala", req.Document.Content)

		_, _ = w.Write([]byte(`{"entities":[{"name":"Koramangala","type":"LOCATION","salience":0.8,"metadata":{}}],"language":"en"}`))
	}))
	defer srv.Close()

	p := NewGoogleProvider("secret")
	p.BaseURL = srv.URL

	got, err := p.AnalyzeEntities(context.Background(), "traffic to Koramangala")
	require.NoError(t, err)
	assert.Equal(t, []Entity{{Name: "Koramangala", Type: EntityLocation, Salience: 0.8}}, got)
}

func TestGoogleProviderErrors(t *testing.T) {
	_, err := NewGoogleProvider("").AnalyzeEntities(context.Background(), "hi")
	assert.ErrorIs(t, err, capability.ErrNotConfigured)

	_, err = NewGoogleProvider("k").AnalyzeEntities(context.Background(), " ")
	assert.ErrorIs(t, err, capability.ErrEmptyInput)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewGoogleProvider("bad")
	p.BaseURL = srv.URL
	_, err = p.AnalyzeEntities(context.Background(), "hello")
	assert.Error(t, err)
}
