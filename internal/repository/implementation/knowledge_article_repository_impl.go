package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"civic-voice-be/internal/entity"
	"civic-voice-be/internal/mapper"
	"civic-voice-be/internal/model"
	"civic-voice-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

var ErrTooMuchContention = errors.New("knowledge store: transaction retries exhausted")

type KnowledgeArticleRepositoryImpl struct {
	client *redis.Client
	mapper *mapper.KnowledgeArticleMapper
}

func NewKnowledgeArticleRepository(client *redis.Client) contract.KnowledgeArticleRepository {
	return &KnowledgeArticleRepositoryImpl{
		client: client,
		mapper: mapper.NewKnowledgeArticleMapper(),
	}
}

func (r *KnowledgeArticleRepositoryImpl) Create(ctx context.Context, article *entity.KnowledgeArticle) error {
	payload, err := json.Marshal(r.mapper.ToModel(article))
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, articleKey(article.Id), payload, 0)
		pipe.SAdd(ctx, allArticlesKey, article.Id)
		for _, tag := range article.Tags {
			pipe.SAdd(ctx, tagKey(tag), article.Id)
		}
		return nil
	})
	return err
}

func (r *KnowledgeArticleRepositoryImpl) Update(ctx context.Context, id string, mutate func(*entity.KnowledgeArticle) error) (*entity.KnowledgeArticle, error) {
	key := articleKey(id)
	var updated *entity.KnowledgeArticle

	txf := func(tx *redis.Tx) error {
		updated = nil

		current, err := r.load(ctx, tx, id)
		if err != nil || current == nil {
			return err
		}

		next := *current
		next.Tags = append([]string(nil), current.Tags...)
		if err := mutate(&next); err != nil {
			return err
		}
		next.Id = current.Id
		next.CreatedAt = current.CreatedAt

		payload, err := json.Marshal(r.mapper.ToModel(&next))
		if err != nil {
			return err
		}

		removed := missingFrom(current.Tags, next.Tags)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			for _, tag := range removed {
				pipe.SRem(ctx, tagKey(tag), id)
			}
			for _, tag := range next.Tags {
				pipe.SAdd(ctx, tagKey(tag), id)
			}
			return nil
		})
		if err != nil {
			return err
		}

		updated = &next
		return nil
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, ErrTooMuchContention
}

func (r *KnowledgeArticleRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	key := articleKey(id)
	deleted := false

	txf := func(tx *redis.Tx) error {
		deleted = false

		current, err := r.load(ctx, tx, id)
		if err != nil || current == nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, tag := range current.Tags {
				pipe.SRem(ctx, tagKey(tag), id)
			}
			pipe.SRem(ctx, allArticlesKey, id)
			pipe.Del(ctx, key)
			return nil
		})
		if err != nil {
			return err
		}

		deleted = true
		return nil
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, err
		}
		return deleted, nil
	}
	return false, ErrTooMuchContention
}

func (r *KnowledgeArticleRepositoryImpl) FindById(ctx context.Context, id string) (*entity.KnowledgeArticle, error) {
	return r.load(ctx, r.client, id)
}

func (r *KnowledgeArticleRepositoryImpl) FindByIds(ctx context.Context, ids []string) ([]*entity.KnowledgeArticle, error) {
	if len(ids) == 0 {
		return []*entity.KnowledgeArticle{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = articleKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	articles := make([]*entity.KnowledgeArticle, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// dangling id
			continue
		}
		article, err := r.decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode article %s: %w", ids[i], err)
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func (r *KnowledgeArticleRepositoryImpl) FindAll(ctx context.Context) ([]*entity.KnowledgeArticle, error) {
	ids, err := r.client.SMembers(ctx, allArticlesKey).Result()
	if err != nil {
		return nil, err
	}

	articles, err := r.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(articles, func(i, j int) bool {
		if !articles[i].CreatedAt.Equal(articles[j].CreatedAt) {
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		}
		return articles[i].Id < articles[j].Id
	})
	return articles, nil
}

func (r *KnowledgeArticleRepositoryImpl) FindIdsByAnyTag(ctx context.Context, tags []string) ([]string, error) {
	switch len(tags) {
	case 0:
		return []string{}, nil
	case 1:
		return r.client.SMembers(ctx, tagKey(tags[0])).Result()
	}

	keys := make([]string, len(tags))
	for i, tag := range tags {
		keys[i] = tagKey(tag)
	}
	return r.client.SUnion(ctx, keys...).Result()
}

func (r *KnowledgeArticleRepositoryImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *KnowledgeArticleRepositoryImpl) load(ctx context.Context, c getter, id string) (*entity.KnowledgeArticle, error) {
	raw, err := c.Get(ctx, articleKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.decode(raw)
}

func (r *KnowledgeArticleRepositoryImpl) decode(raw string) (*entity.KnowledgeArticle, error) {
	var record model.KnowledgeArticleRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&record), nil
}

// missingFrom returns the normalized tags of prev that are absent from next.
func missingFrom(prev, next []string) []string {
	keep := make(map[string]struct{}, len(next))
	for _, t := range next {
		keep[entity.NormalizeTag(t)] = struct{}{}
	}
	var out []string
	for _, t := range prev {
		if _, ok := keep[entity.NormalizeTag(t)]; !ok {
			out = append(out, t)
		}
	}
	return out
}
