package implementation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"civic-voice-be/internal/repository/contract"
	"civic-voice-be/pkg/embedding"

	"github.com/redis/go-redis/v9"
)

const (
	vectorScanCount = 200
	defaultLimit    = 5
)

// KnowledgeVectorRedisRepository keeps one JSON-encoded vector per article
// and scores a query against every stored vector.
type KnowledgeVectorRedisRepository struct {
	client *redis.Client
}

func NewKnowledgeVectorRedisRepository(client *redis.Client) contract.KnowledgeVectorRepository {
	return &KnowledgeVectorRedisRepository{client: client}
}

func (r *KnowledgeVectorRedisRepository) Save(ctx context.Context, articleId string, vector []float32) error {
	payload, err := json.Marshal(vector)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, vectorKey(articleId), payload, 0).Err()
}

func (r *KnowledgeVectorRedisRepository) Delete(ctx context.Context, articleId string) error {
	return r.client.Del(ctx, vectorKey(articleId)).Err()
}

func (r *KnowledgeVectorRedisRepository) SearchSimilarWithScore(ctx context.Context, vector []float32, limit int, threshold float64) ([]contract.ScoredVector, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	var keys []string
	iter := r.client.Scan(ctx, 0, vectorKeyPrefix+"*", vectorScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	var scored []contract.ScoredVector
	for start := 0; start < len(keys); start += vectorScanCount {
		end := start + vectorScanCount
		if end > len(keys) {
			end = len(keys)
		}
		batch := keys[start:end]

		values, err := r.client.MGet(ctx, batch...).Result()
		if err != nil {
			return nil, err
		}

		for i, v := range values {
			raw, ok := v.(string)
			if !ok {
				continue
			}
			var stored []float32
			if err := json.Unmarshal([]byte(raw), &stored); err != nil {
				return nil, fmt.Errorf("decode %s: %w", batch[i], err)
			}

			similarity, err := embedding.CosineSimilarity(vector, stored)
			if err != nil {
				return nil, fmt.Errorf("score %s: %w", batch[i], err)
			}
			if similarity >= threshold {
				scored = append(scored, contract.ScoredVector{
					ArticleId:  strings.TrimPrefix(batch[i], vectorKeyPrefix),
					Similarity: similarity,
				})
			}
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Similarity != scored[j].Similarity {
			return scored[i].Similarity > scored[j].Similarity
		}
		return scored[i].ArticleId < scored[j].ArticleId
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}
