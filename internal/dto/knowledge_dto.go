package dto

import "time"

type CreateArticleRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"max=20,dive,max=50"`
}

// UpdateArticleRequest is a partial patch; nil fields are left unchanged.
type UpdateArticleRequest struct {
	Title   *string   `json:"title" validate:"omitempty,max=200"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

type ArticleResponse struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReindexResponse struct {
	Enabled bool `json:"enabled"`
	Indexed int  `json:"indexed"`
}
