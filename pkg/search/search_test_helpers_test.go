package search

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"civic-voice-be/internal/entity"
	"civic-voice-be/internal/repository/contract"
	"civic-voice-be/internal/repository/implementation"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	mr       *miniredis.Miniredis
	client   *redis.Client
	articles contract.KnowledgeArticleRepository
	vectors  contract.KnowledgeVectorRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &fixture{
		mr:       mr,
		client:   client,
		articles: implementation.NewKnowledgeArticleRepository(client),
		vectors:  implementation.NewKnowledgeVectorRedisRepository(client),
	}
}

func (f *fixture) add(t *testing.T, id string, age time.Duration, tags ...string) *entity.KnowledgeArticle {
	t.Helper()
	a := &entity.KnowledgeArticle{
		Id:        id,
		Title:     "Title " + id,
		Content:   "Content " + id,
		Tags:      tags,
		CreatedAt: base.Add(age),
		UpdatedAt: base.Add(age),
	}
	require.NoError(t, f.articles.Create(context.Background(), a))
	return a
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
