package contract

import (
	"context"

	"civic-voice-be/internal/entity"
)

type KnowledgeArticleRepository interface {
	// Create writes the article and its tag index entries atomically.
	Create(ctx context.Context, article *entity.KnowledgeArticle) error
	// Update loads the current article, applies mutate and reconciles the tag
	// index in one transaction. Returns nil, nil when the article is missing.
	Update(ctx context.Context, id string, mutate func(*entity.KnowledgeArticle) error) (*entity.KnowledgeArticle, error)
	// Delete removes the article and its tag memberships atomically.
	Delete(ctx context.Context, id string) (bool, error)
	FindById(ctx context.Context, id string) (*entity.KnowledgeArticle, error)
	// FindByIds hydrates ids in order, skipping ids with no backing record.
	FindByIds(ctx context.Context, ids []string) ([]*entity.KnowledgeArticle, error)
	FindAll(ctx context.Context) ([]*entity.KnowledgeArticle, error)
	// FindIdsByAnyTag returns the ids indexed under at least one of the
	// normalized tags. Ids may be dangling.
	FindIdsByAnyTag(ctx context.Context, tags []string) ([]string, error)
	Ping(ctx context.Context) error
}
