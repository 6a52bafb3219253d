package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddingCache(t *testing.T) {
	c := NewEmbeddingCache(time.Minute)

	_, ok := c.Get("m", "when is pickup")
	assert.False(t, ok)

	c.Set("m", "When is pickup ", []float32{1, 2})

	got, ok := c.Get("m", "when is pickup")
	assert.True(t, ok)
	assert.Equal(t, []float32{1, 2}, got)

	_, ok = c.Get("other-model", "when is pickup")
	assert.False(t, ok, "keys are scoped by model")
	assert.Equal(t, 1, c.Len())
}

func TestEmbeddingCacheExpires(t *testing.T) {
	c := NewEmbeddingCache(20 * time.Millisecond)
	c.Set("m", "q", []float32{1})

	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("m", "q")
	assert.False(t, ok)
}
