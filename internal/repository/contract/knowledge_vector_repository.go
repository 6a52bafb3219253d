package contract

import "context"

// ScoredVector is an article id with its cosine similarity to a query vector.
type ScoredVector struct {
	ArticleId  string
	Similarity float64
}

type KnowledgeVectorRepository interface {
	Save(ctx context.Context, articleId string, vector []float32) error
	Delete(ctx context.Context, articleId string) error
	// SearchSimilarWithScore returns vectors with similarity >= threshold,
	// most similar first, at most limit entries.
	SearchSimilarWithScore(ctx context.Context, vector []float32, limit int, threshold float64) ([]ScoredVector, error)
}
