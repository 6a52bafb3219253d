package executor

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"civic-voice-be/pkg/capability"
	"civic-voice-be/pkg/rag/intent"
	"civic-voice-be/pkg/rag/report"
	"civic-voice-be/pkg/rag/response"
	"civic-voice-be/pkg/search"
	"civic-voice-be/pkg/speech"
	"civic-voice-be/pkg/store"
	"civic-voice-be/pkg/traffic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	StatusCompleted = "completed"
	StatusNoSpeech  = "no_speech"
	StatusNoAudio   = "no_audio"
)

var ErrEmptyQuery = errors.New("query text is required")

// Dependencies are the capabilities the pipeline calls. Any of them may be
// a disabled stand-in; only TagSearch, Classifier and Synthesizer are
// required.
type Dependencies struct {
	Detector     speech.LanguageDetector
	Transcriber  speech.SpeechToText
	Speaker      speech.TextToSpeech
	Classifier   *intent.Classifier
	TagSearch    *search.TagSearch
	VectorSearch *search.VectorSearch
	Synthesizer  *response.Synthesizer
	Traffic      traffic.TrafficLookup
}

type Config struct {
	// StageTimeout bounds each speech call.
	StageTimeout  time.Duration
	TrafficOrigin string
}

// TextResult is the outcome of a text query.
type TextResult struct {
	Query        string                `json:"query"`
	NLP          intent.NLPResult      `json:"nlp"`
	Route        string                `json:"route"`
	ResponseText string                `json:"response_text"`
	Sources      []store.RankedArticle `json:"-"`
}

// VoiceResult is the outcome of a voice query. ResponseAudio is nil when
// speech synthesis failed.
type VoiceResult struct {
	Status         string            `json:"status"`
	Transcription  string            `json:"transcription"`
	LanguageCode   string            `json:"language_code"`
	NLP            *intent.NLPResult `json:"nlp,omitempty"`
	Route          string            `json:"route,omitempty"`
	ResponseText   string            `json:"response_text"`
	ResponseAudio  []byte            `json:"-"`
	ProcessingTime time.Duration     `json:"-"`
}

// VoicePipeline runs detection, transcription, classification, routing and
// synthesis for one request. Every stage degrades to a fallback; the only
// error returned is the caller's own cancellation.
type VoicePipeline struct {
	deps   Dependencies
	config Config
	logger *log.Logger
	tracer trace.Tracer
}

func NewVoicePipeline(deps Dependencies, config Config, logger *log.Logger) *VoicePipeline {
	if logger == nil {
		logger = log.New(os.Stdout, "[VoicePipeline] ", log.LstdFlags)
	}
	if config.TrafficOrigin == "" {
		config.TrafficOrigin = "current location"
	}
	return &VoicePipeline{
		deps:   deps,
		config: config,
		logger: logger,
		tracer: otel.Tracer("voice-pipeline"),
	}
}

// ResolveTextQuery skips the audio stages.
func (p *VoicePipeline) ResolveTextQuery(ctx context.Context, text string) (*TextResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}

	ctx, span := p.tracer.Start(ctx, "ResolveTextQuery")
	defer span.End()

	nlpResult := p.classify(ctx, text)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reply, sources := p.route(ctx, text, nlpResult)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &TextResult{
		Query:        text,
		NLP:          nlpResult,
		Route:        report.RouteByIntent(nlpResult),
		ResponseText: reply,
		Sources:      sources,
	}, nil
}

func (p *VoicePipeline) ResolveVoiceQuery(ctx context.Context, audio []byte, languageHint string) (*VoiceResult, error) {
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "ResolveVoiceQuery")
	defer span.End()
	span.SetAttributes(attribute.Int("audio.bytes", len(audio)))

	if len(audio) == 0 {
		return &VoiceResult{
			Status:         StatusNoAudio,
			LanguageCode:   speech.DefaultLanguage,
			ProcessingTime: time.Since(start),
		}, nil
	}

	// Phase 1: language
	language := p.detectLanguage(ctx, audio, languageHint)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 2: transcription
	transcript := p.transcribe(ctx, audio, language)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if transcript == "" {
		p.logger.Printf("[PIPELINE] No speech detected (%d bytes, %s)", len(audio), language)
		return &VoiceResult{
			Status:         StatusNoSpeech,
			LanguageCode:   language,
			ResponseText:   response.FormatNoSpeech(),
			ProcessingTime: time.Since(start),
		}, nil
	}

	// Phase 3: classification and routing
	nlpResult := p.classify(ctx, transcript)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reply, _ := p.route(ctx, transcript, nlpResult)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 4: speech
	audioOut := p.synthesize(ctx, reply, language)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	p.logger.Printf("[PIPELINE] Completed %s query in %s", nlpResult.Intent, elapsed)

	return &VoiceResult{
		Status:         StatusCompleted,
		Transcription:  transcript,
		LanguageCode:   language,
		NLP:            &nlpResult,
		Route:          report.RouteByIntent(nlpResult),
		ResponseText:   reply,
		ResponseAudio:  audioOut,
		ProcessingTime: elapsed,
	}, nil
}

func (p *VoicePipeline) detectLanguage(ctx context.Context, audio []byte, hint string) string {
	if hint = strings.TrimSpace(hint); hint != "" {
		return hint
	}
	if p.deps.Detector == nil {
		return speech.DefaultLanguage
	}

	ctx, span := p.tracer.Start(ctx, "DetectLanguage")
	defer span.End()

	code, err := capability.Call(ctx, p.config.StageTimeout, func(ctx context.Context) (string, error) {
		return p.deps.Detector.Detect(ctx, audio)
	})
	if err != nil || strings.TrimSpace(code) == "" {
		p.logFailure("Language detection", err)
		return speech.DefaultLanguage
	}
	span.SetAttributes(attribute.String("language", code))
	return code
}

func (p *VoicePipeline) transcribe(ctx context.Context, audio []byte, language string) string {
	if p.deps.Transcriber == nil {
		return ""
	}

	ctx, span := p.tracer.Start(ctx, "Transcribe")
	defer span.End()

	text, err := capability.Call(ctx, p.config.StageTimeout, func(ctx context.Context) (string, error) {
		return p.deps.Transcriber.Transcribe(ctx, audio, language)
	})
	if err != nil {
		p.logFailure("Transcription", err)
		return ""
	}
	return strings.TrimSpace(text)
}

func (p *VoicePipeline) classify(ctx context.Context, text string) intent.NLPResult {
	ctx, span := p.tracer.Start(ctx, "Classify")
	defer span.End()

	result := p.deps.Classifier.Classify(ctx, text)
	span.SetAttributes(
		attribute.String("intent", result.Intent),
		attribute.Int("keywords", len(result.Keywords)),
	)
	return result
}

func (p *VoicePipeline) synthesize(ctx context.Context, text, language string) []byte {
	if p.deps.Speaker == nil || text == "" {
		return nil
	}

	ctx, span := p.tracer.Start(ctx, "Synthesize")
	defer span.End()

	audio, err := capability.Call(ctx, p.config.StageTimeout, func(ctx context.Context) ([]byte, error) {
		return p.deps.Speaker.Synthesize(ctx, text, language)
	})
	if err != nil || len(audio) == 0 {
		p.logFailure("Speech synthesis", err)
		return nil
	}
	return audio
}

// route produces the reply text for a classified query.
func (p *VoicePipeline) route(ctx context.Context, query string, nlpResult intent.NLPResult) (string, []store.RankedArticle) {
	ctx, span := p.tracer.Start(ctx, "Route")
	defer span.End()

	switch nlpResult.Intent {
	case intent.CheckTraffic:
		return p.answerTraffic(ctx, nlpResult.Location()), nil

	case intent.InformationalQuery:
		articles, err := p.retrieve(ctx, query, nlpResult.Keywords)
		if err != nil {
			p.logger.Printf("[ERROR] Knowledge search failed: %v", err)
			return response.FormatSearchError(), nil
		}
		return p.deps.Synthesizer.FormatWithLLM(ctx, articles, query), articles

	default:
		return response.FormatUnknownIntent(query), nil
	}
}

func (p *VoicePipeline) answerTraffic(ctx context.Context, destination string) string {
	if destination == "" {
		return response.FormatNoLocation()
	}
	if p.deps.Traffic == nil {
		return response.FormatTrafficFallback(destination)
	}

	data, err := capability.Call(ctx, p.config.StageTimeout, func(ctx context.Context) (*traffic.TrafficData, error) {
		return p.deps.Traffic.GetConditions(ctx, p.config.TrafficOrigin, destination)
	})
	if err != nil {
		p.logFailure("Traffic lookup", err)
		return response.FormatTrafficFallback(destination)
	}
	return response.FormatTraffic(data)
}

// retrieve runs tag search on the keywords and, when vector search is on,
// semantic search on the raw query at the same time. Tag hits come first.
// A vector failure falls back to the tag hits alone.
func (p *VoicePipeline) retrieve(ctx context.Context, query string, keywords []string) ([]store.RankedArticle, error) {
	if len(keywords) == 0 {
		return []store.RankedArticle{}, nil
	}
	if !p.deps.VectorSearch.Enabled() {
		return p.deps.TagSearch.FindByTags(ctx, keywords)
	}

	var (
		wg        sync.WaitGroup
		vectorHit []store.RankedArticle
		vectorErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		vectorHit, vectorErr = p.deps.VectorSearch.Search(ctx, query)
	}()

	tagHits, tagErr := p.deps.TagSearch.FindByTags(ctx, keywords)
	wg.Wait()

	if tagErr != nil {
		return nil, tagErr
	}
	if vectorErr != nil {
		p.logger.Printf("[ERROR] Vector search failed, using tag results only: %v", vectorErr)
		return tagHits, nil
	}
	return store.Merge(tagHits, vectorHit), nil
}

func (p *VoicePipeline) logFailure(stage string, err error) {
	switch {
	case err == nil:
		p.logger.Printf("[WARN] %s returned nothing", stage)
	case errors.Is(err, capability.ErrNotConfigured):
		p.logger.Printf("[ERROR] %s is not configured: %v", stage, err)
	case capability.IsTransient(err):
		p.logger.Printf("[WARN] %s timed out: %v", stage, err)
	default:
		p.logger.Printf("[WARN] %s failed: %v", stage, err)
	}
}
