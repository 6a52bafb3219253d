package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyQuery  = errors.New("query is required")
	ErrNoDocuments = errors.New("at least one document is required")
	ErrDisabled    = errors.New("llm responses are disabled")
)

const SystemPrompt = `You are a helpful civic information assistant. Your role is to answer questions about city services, schedules, and public information based ONLY on the provided documents.

Guidelines:
- Use only the information from the provided documents
- Be direct and factual in your responses
- If the documents don't contain enough information to answer the question, say so clearly
- Keep responses concise and easy to understand (2-3 sentences when possible)
- Use a friendly, helpful tone
- Do not make up information that isn't in the documents`

// Document is one grounding source handed to the model.
type Document struct {
	Title   string
	Content string
}

type ResponseRequest struct {
	Query     string
	Documents []Document
}

type Response struct {
	Content   string
	Model     string
	LatencyMs int64
}

// Responder produces grounded answers from a query and its source documents.
type Responder struct {
	provider LLMProvider
	settings Settings
	enabled  bool
}

func NewResponder(provider LLMProvider, settings Settings, enabled bool) *Responder {
	return &Responder{
		provider: provider,
		settings: settings,
		enabled:  enabled && provider != nil,
	}
}

func (r *Responder) Enabled() bool {
	return r != nil && r.enabled
}

func (r *Responder) Settings() Settings {
	return r.settings
}

// Respond validates the request, then asks the model for a grounded answer.
// An empty completion is reported as an error so callers can fall back.
func (r *Responder) Respond(ctx context.Context, req ResponseRequest) (*Response, error) {
	if !r.Enabled() {
		return nil, ErrDisabled
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}
	if len(req.Documents) == 0 {
		return nil, ErrNoDocuments
	}

	start := time.Now()
	history := []Message{
		{Role: RoleSystem, Content: SystemPrompt},
		{Role: RoleUser, Content: BuildUserPrompt(req.Query, req.Documents)},
	}

	content, err := r.provider.Chat(ctx, history, r.settings.Options()...)
	if err != nil {
		return nil, fmt.Errorf("llm chat: %w", err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("llm returned an empty completion")
	}

	return &Response{
		Content:   content,
		Model:     r.settings.Model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// BuildContext numbers the documents and separates them with rules.
func BuildContext(docs []Document) string {
	parts := make([]string, len(docs))
	for i, d := range docs {
		parts[i] = fmt.Sprintf("Document %d: %s\n%s", i+1, d.Title, d.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

func BuildUserPrompt(query string, docs []Document) string {
	return fmt.Sprintf("Based on the following documents, please answer this question: \"%s\"\n\nDocuments:\n%s", query, BuildContext(docs))
}
