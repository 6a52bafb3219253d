package model

import "time"

// KnowledgeArticleRecord is the JSON document stored at kb:article:<id>.
type KnowledgeArticleRecord struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
