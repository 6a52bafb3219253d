package response

import (
	"fmt"

	"civic-voice-be/pkg/store"
)

// Format renders retrieval results without any external call. The top hit
// is read out in full and the rest are only counted.
func Format(articles []store.RankedArticle, query string) string {
	if len(articles) == 0 {
		return FormatNoResults(query)
	}

	top := articles[0].Article
	text := top.Title + "\n\n" + top.Content

	if more := len(articles) - 1; more > 0 {
		noun := "articles"
		if more == 1 {
			noun = "article"
		}
		text += fmt.Sprintf("\n\n(%d more related %s available)", more, noun)
	}
	return text
}
