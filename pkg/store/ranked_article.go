package store

import "civic-voice-be/internal/entity"

const (
	SourceTag    = "tag"
	SourceVector = "vector"
)

// RankedArticle is a retrieval hit. Score is a match count for tag hits and
// a cosine similarity for vector hits.
type RankedArticle struct {
	Article *entity.KnowledgeArticle `json:"article"`
	Score   float64                  `json:"score"`
	Source  string                   `json:"source"`
}

// Merge appends secondary hits after primary ones, dropping any article
// already present.
func Merge(primary, secondary []RankedArticle) []RankedArticle {
	out := make([]RankedArticle, 0, len(primary)+len(secondary))
	seen := make(map[string]bool, len(primary)+len(secondary))

	for _, list := range [][]RankedArticle{primary, secondary} {
		for _, r := range list {
			if r.Article == nil || seen[r.Article.Id] {
				continue
			}
			seen[r.Article.Id] = true
			out = append(out, r)
		}
	}
	return out
}
