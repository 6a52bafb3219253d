package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	f := newKnowledgeFixture(t, false)
	svc := NewHealthService(f.articles)

	res := svc.Check(context.Background())
	assert.True(t, res.Success)
	assert.Equal(t, "Live DB connection is healthy", res.Message)

	f.mr.Close()

	res = svc.Check(context.Background())
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Live DB connection failed: ")
}
