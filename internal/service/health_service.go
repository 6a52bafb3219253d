package service

import (
	"context"
	"time"

	"civic-voice-be/internal/dto"
	"civic-voice-be/internal/repository/contract"
)

type IHealthService interface {
	Check(ctx context.Context) *dto.HealthResponse
}

type healthService struct {
	articles contract.KnowledgeArticleRepository
}

func NewHealthService(articles contract.KnowledgeArticleRepository) IHealthService {
	return &healthService{articles: articles}
}

func (s *healthService) Check(ctx context.Context) *dto.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res := &dto.HealthResponse{Timestamp: time.Now().UTC()}
	if err := s.articles.Ping(ctx); err != nil {
		res.Message = "Live DB connection failed: " + err.Error()
		return res
	}

	res.Success = true
	res.Message = "Live DB connection is healthy"
	return res
}
