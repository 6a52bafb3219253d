package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"civic-voice-be/pkg/capability"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient serves all three speech capabilities through one API key.
type OpenAIClient struct {
	client *openai.Client
	Voice  openai.SpeechVoice
}

func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai speech: %w", capability.ErrNotConfigured)
	}
	return NewOpenAIClientWithConfig(openai.DefaultConfig(apiKey)), nil
}

func NewOpenAIClientWithConfig(cfg openai.ClientConfig) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		Voice:  openai.VoiceAlloy,
	}
}

func (c *OpenAIClient) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if len(audio) == 0 {
		return "", capability.ErrEmptyInput
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio),
		FilePath: "query.webm",
		Language: language,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// Detect runs a verbose transcription and keeps only the reported language.
func (c *OpenAIClient) Detect(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", capability.ErrEmptyInput
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio),
		FilePath: "query.webm",
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return "", fmt.Errorf("whisper language detection: %w", err)
	}

	code := LanguageCode(resp.Language)
	if code == "" {
		return "", fmt.Errorf("whisper language detection: unrecognized language %q", resp.Language)
	}
	return code, nil
}

func (c *OpenAIClient) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, capability.ErrEmptyInput
	}

	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          c.Voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Close()

	return io.ReadAll(resp)
}
