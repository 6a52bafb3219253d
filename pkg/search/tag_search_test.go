package search

import (
	"context"
	"testing"
	"time"

	"civic-voice-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(results []store.RankedArticle) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Article.Id
	}
	return out
}

func scores(results []store.RankedArticle) map[string]float64 {
	out := make(map[string]float64, len(results))
	for _, r := range results {
		out[r.Article.Id] = r.Score
	}
	return out
}

func TestFindByTagsEmptyInput(t *testing.T) {
	f := newFixture(t)
	s := NewTagSearch(f.articles)

	for _, in := range [][]string{nil, {}, {"  ", ""}} {
		got, err := s.FindByTags(context.Background(), in)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	}
}

func TestFindByTagsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.add(t, "g1", 0, "garbage", "schedule")
	s := NewTagSearch(f.articles)

	got, err := s.FindByTags(context.Background(), []string{"garbage", "schedule"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "g1", got[0].Article.Id)
	assert.Equal(t, 2.0, got[0].Score)
	assert.Equal(t, store.SourceTag, got[0].Source)

	got, err = s.FindByTags(context.Background(), []string{"GARBAGE"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Score)

	got, err = s.FindByTags(context.Background(), []string{" Garbage ", "garbage"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Score, "duplicate query tags count once")
}

func TestFindByTagsRanksByOverlapThenRecency(t *testing.T) {
	f := newFixture(t)
	f.add(t, "ab", 0, "a", "b")
	f.add(t, "bc", time.Hour, "b", "c")
	f.add(t, "abc", -time.Hour, "a", "b", "c")
	s := NewTagSearch(f.articles)

	got, err := s.FindByTags(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, []string{"abc", "bc", "ab"}, ids(got))
	assert.Equal(t, map[string]float64{"abc": 3, "bc": 2, "ab": 2}, scores(got))
}

func TestFindByTagsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.add(t, "1", 0, "water", "bill")
	f.add(t, "2", 0, "water")
	f.add(t, "3", 0, "bill", "payment")
	f.add(t, "4", time.Minute, "water", "payment")
	s := NewTagSearch(f.articles)

	query := []string{"water", "bill", "payment"}
	first, err := s.FindByTags(context.Background(), query)
	require.NoError(t, err)
	second, err := s.FindByTags(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, scores(first), scores(second))
}

func TestFindByTagsScoreMonotonic(t *testing.T) {
	f := newFixture(t)
	f.add(t, "1", 0, "parks", "hours")
	f.add(t, "2", 0, "parks", "events", "permits")
	f.add(t, "3", 0, "permits")
	s := NewTagSearch(f.articles)

	subsets := [][]string{
		{"parks"},
		{"parks", "hours"},
		{"parks", "hours", "permits"},
		{"parks", "hours", "permits", "events"},
	}

	prev := map[string]float64{}
	for _, tags := range subsets {
		got, err := s.FindByTags(context.Background(), tags)
		require.NoError(t, err)
		cur := scores(got)
		for id, score := range prev {
			assert.GreaterOrEqual(t, cur[id], score, "article %s lost score when adding tags %v", id, tags)
		}
		prev = cur
	}
}

func TestFindByTagsSkipsDanglingAndStaleIds(t *testing.T) {
	f := newFixture(t)
	f.add(t, "live", 0, "library")
	f.add(t, "retagged", 0, "museum")

	// dangling: indexed id with no record
	f.mr.SAdd("kb:tag:library", "ghost")
	// stale: indexed under a tag the article no longer carries
	f.mr.SAdd("kb:tag:library", "retagged")

	s := NewTagSearch(f.articles)
	got, err := s.FindByTags(context.Background(), []string{"library"})

	require.NoError(t, err)
	assert.Equal(t, []string{"live"}, ids(got))
}

func TestFindByTagsStoreError(t *testing.T) {
	f := newFixture(t)
	s := NewTagSearch(f.articles)
	f.mr.Close()

	_, err := s.FindByTags(context.Background(), []string{"anything"})
	assert.Error(t, err)
}
