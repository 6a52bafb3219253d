package implementation

import "civic-voice-be/internal/entity"

const (
	articleKeyPrefix = "kb:article:"
	tagKeyPrefix     = "kb:tag:"
	vectorKeyPrefix  = "kb:vector:"
	allArticlesKey   = "kb:all_articles"

	// optimistic-lock retries for WATCH/MULTI/EXEC
	maxTxRetries = 5
)

func articleKey(id string) string { return articleKeyPrefix + id }

func tagKey(tag string) string { return tagKeyPrefix + entity.NormalizeTag(tag) }

func vectorKey(id string) string { return vectorKeyPrefix + id }
