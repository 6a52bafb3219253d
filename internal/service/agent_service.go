package service

import (
	"context"
	"encoding/base64"

	"civic-voice-be/internal/dto"
	"civic-voice-be/internal/pkg/logger"
	"civic-voice-be/pkg/rag/executor"
	"civic-voice-be/pkg/rag/intent"
	"civic-voice-be/pkg/rag/report"
)

type IAgentService interface {
	Query(ctx context.Context, req *dto.TextQueryRequest) (*dto.TextQueryResponse, error)
	Voice(ctx context.Context, audio []byte, language string) (*dto.VoiceQueryResponse, error)
	DraftReport(ctx context.Context, req *dto.ReportDraftRequest) (*dto.ReportDraftResponse, error)
}

type agentService struct {
	pipeline   *executor.VoicePipeline
	classifier *intent.Classifier
	logger     logger.ILogger
}

func NewAgentService(pipeline *executor.VoicePipeline, classifier *intent.Classifier, logger logger.ILogger) IAgentService {
	return &agentService{
		pipeline:   pipeline,
		classifier: classifier,
		logger:     logger,
	}
}

func (s *agentService) Query(ctx context.Context, req *dto.TextQueryRequest) (*dto.TextQueryResponse, error) {
	result, err := s.pipeline.ResolveTextQuery(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	sources := make([]dto.SourceDTO, 0, len(result.Sources))
	for _, r := range result.Sources {
		sources = append(sources, dto.SourceDTO{
			Id:     r.Article.Id,
			Title:  r.Article.Title,
			Score:  r.Score,
			Source: r.Source,
		})
	}

	s.logger.Info("AgentService", "Text query resolved", map[string]interface{}{
		"intent":  result.NLP.Intent,
		"route":   result.Route,
		"sources": len(sources),
	})

	return &dto.TextQueryResponse{
		Response: result.ResponseText,
		Intent:   result.NLP.Intent,
		Route:    result.Route,
		Entities: result.NLP.Entities,
		Sources:  sources,
	}, nil
}

func (s *agentService) Voice(ctx context.Context, audio []byte, language string) (*dto.VoiceQueryResponse, error) {
	result, err := s.pipeline.ResolveVoiceQuery(ctx, audio, language)
	if err != nil {
		return nil, err
	}

	res := &dto.VoiceQueryResponse{
		Status:           result.Status,
		Transcription:    result.Transcription,
		LanguageCode:     result.LanguageCode,
		ResponseText:     result.ResponseText,
		ProcessingTimeMs: result.ProcessingTime.Milliseconds(),
	}
	if result.NLP != nil {
		res.Intent = result.NLP.Intent
	}
	if len(result.ResponseAudio) > 0 {
		res.ResponseAudio = base64.StdEncoding.EncodeToString(result.ResponseAudio)
	}

	s.logger.Info("AgentService", "Voice query resolved", map[string]interface{}{
		"status":   res.Status,
		"language": res.LanguageCode,
		"intent":   res.Intent,
		"ms":       res.ProcessingTimeMs,
	})
	return res, nil
}

// DraftReport classifies a complaint and pre-fills a civic issue report.
// Nothing is stored.
func (s *agentService) DraftReport(ctx context.Context, req *dto.ReportDraftRequest) (*dto.ReportDraftResponse, error) {
	result := s.classifier.Classify(ctx, req.Text)
	return &dto.ReportDraftResponse{
		Route:   report.RouteByIntent(result),
		Intent:  result.Intent,
		Details: report.ExtractDetails(req.Text, result),
	}, nil
}
