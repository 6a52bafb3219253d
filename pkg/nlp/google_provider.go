package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"civic-voice-be/pkg/capability"
)

const googleLanguageURL = "https://language.googleapis.com/v1/documents:analyzeEntities"

// GoogleProvider calls the Cloud Natural Language analyzeEntities endpoint
// with an API key.
type GoogleProvider struct {
	apiKey  string
	BaseURL string
	Client  *http.Client
}

func NewGoogleProvider(apiKey string) *GoogleProvider {
	return &GoogleProvider{
		apiKey:  apiKey,
		BaseURL: googleLanguageURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type analyzeRequest struct {
	Document struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	} `json:"document"`
	EncodingType string `json:"encodingType"`
}

type analyzeResponse struct {
	Entities []Entity `json:"entities"`
}

func (p *GoogleProvider) AnalyzeEntities(ctx context.Context, text string) ([]Entity, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("google natural language: %w", capability.ErrNotConfigured)
	}
	if strings.TrimSpace(text) == "" {
		return nil, capability.ErrEmptyInput
	}

	var body analyzeRequest
	body.Document.Type = "PLAIN_TEXT"
	body.Document.Content = text
	body.EncodingType = "UTF8"

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := p.BaseURL + "?key=" + url.QueryEscape(p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google natural language: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google natural language: status %d: %s", resp.StatusCode, string(raw))
	}

	var out analyzeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("google natural language: decode: %w", err)
	}
	return out.Entities, nil
}
