package response

import (
	"context"
	"log"
	"os"
	"time"

	"civic-voice-be/pkg/capability"
	"civic-voice-be/pkg/llm"
	"civic-voice-be/pkg/store"
)

// Synthesizer turns retrieval results into an answer, using the language
// model when enabled and the deterministic formatter otherwise.
type Synthesizer struct {
	responder *llm.Responder
	timeout   time.Duration
	logger    *log.Logger
}

func NewSynthesizer(responder *llm.Responder, timeout time.Duration, logger *log.Logger) *Synthesizer {
	if logger == nil {
		logger = log.New(os.Stdout, "[Synthesizer] ", log.LstdFlags)
	}
	return &Synthesizer{
		responder: responder,
		timeout:   timeout,
		logger:    logger,
	}
}

// FormatWithLLM never fails. Any model error degrades to Format over the
// same articles.
func (s *Synthesizer) FormatWithLLM(ctx context.Context, articles []store.RankedArticle, query string) string {
	if len(articles) == 0 || !s.responder.Enabled() {
		return Format(articles, query)
	}

	docs := make([]llm.Document, len(articles))
	for i, a := range articles {
		docs[i] = llm.Document{Title: a.Article.Title, Content: a.Article.Content}
	}

	resp, err := capability.Call(ctx, s.timeout, func(ctx context.Context) (*llm.Response, error) {
		return s.responder.Respond(ctx, llm.ResponseRequest{Query: query, Documents: docs})
	})
	if err != nil {
		level := "[WARN]"
		if !capability.IsTransient(err) {
			level = "[ERROR]"
		}
		s.logger.Printf("%s LLM response failed, using basic formatter: %v", level, err)
		return Format(articles, query)
	}

	s.logger.Printf("[DEBUG] LLM response from %s in %dms", resp.Model, resp.LatencyMs)
	return resp.Content
}
