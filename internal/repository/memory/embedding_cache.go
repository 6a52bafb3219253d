package memory

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// EmbeddingCache remembers query embeddings so repeated questions skip the
// provider round trip. Article embeddings are never cached.
type EmbeddingCache struct {
	cache *cache.Cache
}

func NewEmbeddingCache(ttl time.Duration) *EmbeddingCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &EmbeddingCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *EmbeddingCache) key(model, text string) string {
	return model + "|" + strings.ToLower(strings.TrimSpace(text))
}

func (c *EmbeddingCache) Get(model, text string) ([]float32, bool) {
	if x, found := c.cache.Get(c.key(model, text)); found {
		return x.([]float32), true
	}
	return nil, false
}

func (c *EmbeddingCache) Set(model, text string, vector []float32) {
	c.cache.Set(c.key(model, text), vector, cache.DefaultExpiration)
}

func (c *EmbeddingCache) Len() int {
	return c.cache.ItemCount()
}
