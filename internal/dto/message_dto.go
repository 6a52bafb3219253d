package dto

// PublishIndexArticleMessage asks the index consumer to re-embed an article.
type PublishIndexArticleMessage struct {
	ArticleId string `json:"article_id"`
}
