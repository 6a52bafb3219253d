package implementation

import (
	"context"

	"civic-voice-be/internal/model"
	"civic-voice-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KnowledgeVectorRepositoryImpl struct {
	db    *gorm.DB
	model string
}

func NewKnowledgeVectorRepository(db *gorm.DB, embeddingModel string) contract.KnowledgeVectorRepository {
	return &KnowledgeVectorRepositoryImpl{db: db, model: embeddingModel}
}

func (r *KnowledgeVectorRepositoryImpl) Save(ctx context.Context, articleId string, vector []float32) error {
	m := &model.KnowledgeVector{
		ArticleId:      articleId,
		EmbeddingValue: pgvector.NewVector(vector),
		Model:          r.model,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "article_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding_value", "model", "updated_at"}),
		}).
		Create(m).Error
}

func (r *KnowledgeVectorRepositoryImpl) Delete(ctx context.Context, articleId string) error {
	return r.db.WithContext(ctx).Where("article_id = ?", articleId).Delete(&model.KnowledgeVector{}).Error
}

func (r *KnowledgeVectorRepositoryImpl) SearchSimilarWithScore(ctx context.Context, vector []float32, limit int, threshold float64) ([]contract.ScoredVector, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	// <=> is cosine distance, so similarity = 1 - distance
	type result struct {
		ArticleId  string
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table(model.KnowledgeVector{}.TableName()).
		Select("article_id, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC, article_id ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]contract.ScoredVector, len(results))
	for i, res := range results {
		scored[i] = contract.ScoredVector{ArticleId: res.ArticleId, Similarity: res.Similarity}
	}
	return scored, nil
}
