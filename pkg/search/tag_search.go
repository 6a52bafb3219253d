package search

import (
	"context"
	"sort"

	"civic-voice-be/internal/entity"
	"civic-voice-be/internal/repository/contract"
	"civic-voice-be/pkg/store"
)

// TagSearch ranks articles by how many of the queried tags they carry.
type TagSearch struct {
	articles contract.KnowledgeArticleRepository
}

func NewTagSearch(articles contract.KnowledgeArticleRepository) *TagSearch {
	return &TagSearch{articles: articles}
}

// FindByTags returns every article carrying at least one queried tag,
// ordered by match count and then newest first. The count is taken from the
// article's own tags, so stale index entries never inflate a score.
func (s *TagSearch) FindByTags(ctx context.Context, tags []string) ([]store.RankedArticle, error) {
	queried := entity.NormalizeTags(tags)
	if len(queried) == 0 {
		return []store.RankedArticle{}, nil
	}

	ids, err := s.articles.FindIdsByAnyTag(ctx, queried)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []store.RankedArticle{}, nil
	}
	sort.Strings(ids)

	articles, err := s.articles.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	ranked := make([]store.RankedArticle, 0, len(articles))
	for _, a := range articles {
		score := matchCount(queried, a.Tags)
		if score == 0 {
			continue
		}
		ranked = append(ranked, store.RankedArticle{
			Article: a,
			Score:   float64(score),
			Source:  store.SourceTag,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Article.CreatedAt.Equal(b.Article.CreatedAt) {
			return a.Article.CreatedAt.After(b.Article.CreatedAt)
		}
		return a.Article.Id < b.Article.Id
	})

	return ranked, nil
}

func matchCount(queried, articleTags []string) int {
	have := make(map[string]struct{}, len(articleTags))
	for _, t := range articleTags {
		have[entity.NormalizeTag(t)] = struct{}{}
	}

	n := 0
	for _, q := range queried {
		if _, ok := have[q]; ok {
			n++
		}
	}
	return n
}
