package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"civic-voice-be/internal/dto"
	"civic-voice-be/internal/entity"
	"civic-voice-be/internal/pkg/logger"
	"civic-voice-be/internal/repository/contract"
	"civic-voice-be/pkg/events"
	"civic-voice-be/pkg/search"

	"github.com/google/uuid"
)

var ErrArticleTitleRequired = errors.New("article title is required")

type IKnowledgeService interface {
	Create(ctx context.Context, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error)
	// Update returns nil, nil when the article does not exist.
	Update(ctx context.Context, id string, req *dto.UpdateArticleRequest) (*dto.ArticleResponse, error)
	Show(ctx context.Context, id string) (*dto.ArticleResponse, error)
	Delete(ctx context.Context, id string) (bool, error)
	GetAll(ctx context.Context) ([]*dto.ArticleResponse, error)
	Reindex(ctx context.Context) (*dto.ReindexResponse, error)
}

type knowledgeService struct {
	articles         contract.KnowledgeArticleRepository
	vectorSearch     *search.VectorSearch
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

func NewKnowledgeService(
	articles contract.KnowledgeArticleRepository,
	vectorSearch *search.VectorSearch,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	logger logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		articles:         articles,
		vectorSearch:     vectorSearch,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           logger,
	}
}

func (s *knowledgeService) Create(ctx context.Context, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrArticleTitleRequired
	}

	now := time.Now().UTC()
	article := &entity.KnowledgeArticle{
		Id:        uuid.NewString(),
		Title:     title,
		Content:   req.Content,
		Tags:      entity.NormalizeTags(req.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}

	s.requestIndex(ctx, article.Id)
	s.emit(ctx, events.ArticleCreated, article)

	return toArticleResponse(article), nil
}

func (s *knowledgeService) Update(ctx context.Context, id string, req *dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	var textChanged bool

	// mutate runs again on every transaction retry.
	updated, err := s.articles.Update(ctx, id, func(a *entity.KnowledgeArticle) error {
		textChanged = false
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return ErrArticleTitleRequired
			}
			textChanged = textChanged || title != a.Title
			a.Title = title
		}
		if req.Content != nil {
			textChanged = textChanged || *req.Content != a.Content
			a.Content = *req.Content
		}
		if req.Tags != nil {
			a.Tags = entity.NormalizeTags(*req.Tags)
		}
		a.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	if textChanged {
		s.requestIndex(ctx, updated.Id)
	}
	s.emit(ctx, events.ArticleUpdated, updated)

	return toArticleResponse(updated), nil
}

func (s *knowledgeService) Show(ctx context.Context, id string) (*dto.ArticleResponse, error) {
	article, err := s.articles.FindById(ctx, id)
	if err != nil || article == nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

func (s *knowledgeService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.articles.Delete(ctx, id)
	if err != nil || !deleted {
		return false, err
	}

	s.vectorSearch.RemoveArticle(ctx, id)
	s.emit(ctx, events.ArticleDeleted, &entity.KnowledgeArticle{Id: id})
	return true, nil
}

// GetAll lists articles newest first.
func (s *knowledgeService) GetAll(ctx context.Context) ([]*dto.ArticleResponse, error) {
	articles, err := s.articles.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		result = append(result, toArticleResponse(a))
	}
	return result, nil
}

func (s *knowledgeService) Reindex(ctx context.Context) (*dto.ReindexResponse, error) {
	if !s.vectorSearch.Enabled() {
		return &dto.ReindexResponse{Enabled: false}, nil
	}

	indexed, err := s.vectorSearch.ReindexAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.New(events.ArticlesReindexed, map[string]interface{}{"indexed": indexed})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("KnowledgeService", "Failed to publish reindex event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.ReindexResponse{Enabled: true, Indexed: indexed}, nil
}

// requestIndex queues an article for embedding. The article is already
// stored, so a publish failure is only logged; reindex repairs it.
func (s *knowledgeService) requestIndex(ctx context.Context, id string) {
	if !s.vectorSearch.Enabled() || s.publisherService == nil {
		return
	}

	payload, err := json.Marshal(dto.PublishIndexArticleMessage{ArticleId: id})
	if err == nil {
		err = s.publisherService.Publish(ctx, payload)
	}
	if err != nil {
		s.logger.Error("KnowledgeService", "Failed to queue article for indexing", map[string]interface{}{
			"article_id": id,
			"error":      err.Error(),
		})
	}
}

func (s *knowledgeService) emit(ctx context.Context, eventType string, article *entity.KnowledgeArticle) {
	if s.eventPublisher == nil {
		return
	}

	evt := events.New(eventType, map[string]interface{}{
		"article_id": article.Id,
		"title":      article.Title,
		"tags":       article.Tags,
	})
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("KnowledgeService", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func toArticleResponse(a *entity.KnowledgeArticle) *dto.ArticleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.ArticleResponse{
		Id:        a.Id,
		Title:     a.Title,
		Content:   a.Content,
		Tags:      tags,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
