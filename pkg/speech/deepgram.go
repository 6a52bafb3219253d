package speech

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

const deepgramURL = "https://api.deepgram.com/v1/listen"

// DeepgramClient transcribes prerecorded audio and can report the spoken
// language.
type DeepgramClient struct {
	apiKey      string
	BaseURL     string
	Model       string
	ContentType string
	Client      *http.Client
}

func NewDeepgramClient(apiKey string) (*DeepgramClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("deepgram: %w", capability.ErrNotConfigured)
	}
	return &DeepgramClient{
		apiKey:      apiKey,
		BaseURL:     deepgramURL,
		Model:       "nova-2",
		ContentType: "audio/webm",
		Client:      &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			DetectedLanguage string `json:"detected_language"`
			Alternatives     []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (c *DeepgramClient) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	q := url.Values{"smart_format": {"true"}}
	if language != "" {
		q.Set("language", language)
	}

	resp, err := c.listen(ctx, audio, q)
	if err != nil {
		return "", err
	}
	if len(resp.Results.Channels) == 0 || len(resp.Results.Channels[0].Alternatives) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Results.Channels[0].Alternatives[0].Transcript), nil
}

func (c *DeepgramClient) Detect(ctx context.Context, audio []byte) (string, error) {
	resp, err := c.listen(ctx, audio, url.Values{"detect_language": {"true"}})
	if err != nil {
		return "", err
	}
	if len(resp.Results.Channels) == 0 {
		return "", fmt.Errorf("deepgram: no channels in response")
	}

	code := LanguageCode(resp.Results.Channels[0].DetectedLanguage)
	if code == "" {
		return "", fmt.Errorf("deepgram: no language detected")
	}
	return code, nil
}

func (c *DeepgramClient) listen(ctx context.Context, audio []byte, q url.Values) (*deepgramResponse, error) {
	if len(audio) == 0 {
		return nil, capability.ErrEmptyInput
	}
	q.Set("model", c.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"?"+q.Encode(), bytes.NewReader(audio))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", c.ContentType)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepgram: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deepgram: status %d: %s", resp.StatusCode, string(raw))
	}

	var out deepgramResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("deepgram: decode: %w", err)
	}
	return &out, nil
}
