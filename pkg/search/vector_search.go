package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"civic-voice-be/internal/entity"
	"civic-voice-be/internal/repository/contract"
	"civic-voice-be/internal/repository/memory"
	"civic-voice-be/pkg/capability"
	"civic-voice-be/pkg/embedding"
	"civic-voice-be/pkg/store"
)

const (
	DefaultLimit         = 5
	DefaultMinSimilarity = 0.7
)

type VectorConfig struct {
	Enabled       bool
	Limit         int
	MinSimilarity float64
	// Timeout bounds each embedding call.
	Timeout time.Duration
}

// VectorSearch does semantic retrieval over stored article embeddings.
// With the feature off every method is a silent no-op.
type VectorSearch struct {
	config   VectorConfig
	embedder embedding.EmbeddingProvider
	vectors  contract.KnowledgeVectorRepository
	articles contract.KnowledgeArticleRepository
	cache    *memory.EmbeddingCache
	logger   *log.Logger
}

func NewVectorSearch(
	config VectorConfig,
	embedder embedding.EmbeddingProvider,
	vectors contract.KnowledgeVectorRepository,
	articles contract.KnowledgeArticleRepository,
	cache *memory.EmbeddingCache,
	logger *log.Logger,
) *VectorSearch {
	if config.Limit <= 0 {
		config.Limit = DefaultLimit
	}
	if logger == nil {
		logger = log.New(os.Stdout, "[VectorSearch] ", log.LstdFlags)
	}
	return &VectorSearch{
		config:   config,
		embedder: embedder,
		vectors:  vectors,
		articles: articles,
		cache:    cache,
		logger:   logger,
	}
}

func (s *VectorSearch) Enabled() bool {
	return s != nil && s.config.Enabled && s.embedder != nil && s.vectors != nil
}

// IndexArticle embeds and stores one article. Failures are logged and
// swallowed so the write path that triggered indexing is never blocked.
func (s *VectorSearch) IndexArticle(ctx context.Context, article *entity.KnowledgeArticle) {
	if !s.Enabled() || article == nil {
		return
	}
	if err := s.indexArticle(ctx, article); err != nil {
		s.logger.Printf("[WARN] Failed to index article %s: %v", article.Id, err)
		return
	}
	s.logger.Printf("[DEBUG] Indexed article %s", article.Id)
}

func (s *VectorSearch) indexArticle(ctx context.Context, article *entity.KnowledgeArticle) error {
	vector, err := s.embed(ctx, article.EmbeddingText())
	if err != nil {
		return err
	}
	return s.vectors.Save(ctx, article.Id, vector)
}

// RemoveArticle drops the stored vector for an article.
func (s *VectorSearch) RemoveArticle(ctx context.Context, articleId string) {
	if !s.Enabled() {
		return
	}
	if err := s.vectors.Delete(ctx, articleId); err != nil {
		s.logger.Printf("[WARN] Failed to remove vector for %s: %v", articleId, err)
	}
}

// Search uses the configured limit and similarity threshold.
func (s *VectorSearch) Search(ctx context.Context, query string) ([]store.RankedArticle, error) {
	return s.SearchWithOptions(ctx, query, s.config.Limit, s.config.MinSimilarity)
}

// SearchWithOptions embeds the query and returns up to limit articles whose
// similarity is at least minSimilarity, most similar first. A failed
// embedding call yields no results. Missing configuration and vectors of a
// different dimension are returned as errors.
func (s *VectorSearch) SearchWithOptions(ctx context.Context, query string, limit int, minSimilarity float64) ([]store.RankedArticle, error) {
	if !s.Enabled() || strings.TrimSpace(query) == "" {
		return []store.RankedArticle{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	queryVector, err := s.embedQuery(ctx, query)
	if err != nil {
		if errors.Is(err, capability.ErrNotConfigured) {
			return nil, err
		}
		s.logger.Printf("[WARN] Query embedding failed, skipping vector search: %v", err)
		return []store.RankedArticle{}, nil
	}

	scored, err := s.vectors.SearchSimilarWithScore(ctx, queryVector, limit, minSimilarity)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	if len(scored) == 0 {
		return []store.RankedArticle{}, nil
	}

	ids := make([]string, len(scored))
	similarity := make(map[string]float64, len(scored))
	for i, sv := range scored {
		ids[i] = sv.ArticleId
		similarity[sv.ArticleId] = sv.Similarity
	}

	articles, err := s.articles.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]store.RankedArticle, 0, len(articles))
	for _, a := range articles {
		results = append(results, store.RankedArticle{
			Article: a,
			Score:   similarity[a.Id],
			Source:  store.SourceVector,
		})
	}

	s.logger.Printf("[DEBUG] Vector search: %d scored, %d hydrated", len(scored), len(results))
	return results, nil
}

// ReindexAll re-embeds every stored article and returns how many succeeded.
// A failing article is logged and skipped.
func (s *VectorSearch) ReindexAll(ctx context.Context) (int, error) {
	if !s.Enabled() {
		return 0, nil
	}

	articles, err := s.articles.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	indexed := 0
	for _, a := range articles {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}
		if err := s.indexArticle(ctx, a); err != nil {
			s.logger.Printf("[WARN] Reindex skipped article %s: %v", a.Id, err)
			continue
		}
		indexed++
	}

	s.logger.Printf("[INFO] Reindexed %d/%d articles", indexed, len(articles))
	return indexed, nil
}

func (s *VectorSearch) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(s.embedder.Model(), query); ok {
			return v, nil
		}
	}

	v, err := s.embed(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(s.embedder.Model(), query, v)
	}
	return v, nil
}

func (s *VectorSearch) embed(ctx context.Context, text string) ([]float32, error) {
	return capability.Call(ctx, s.config.Timeout, func(ctx context.Context) ([]float32, error) {
		return s.embedder.Generate(ctx, text)
	})
}
