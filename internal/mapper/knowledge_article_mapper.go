package mapper

import (
	"civic-voice-be/internal/entity"
	"civic-voice-be/internal/model"
)

type KnowledgeArticleMapper struct{}

func NewKnowledgeArticleMapper() *KnowledgeArticleMapper {
	return &KnowledgeArticleMapper{}
}

func (m *KnowledgeArticleMapper) ToEntity(r *model.KnowledgeArticleRecord) *entity.KnowledgeArticle {
	if r == nil {
		return nil
	}
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return &entity.KnowledgeArticle{
		Id:        r.Id,
		Title:     r.Title,
		Content:   r.Content,
		Tags:      tags,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (m *KnowledgeArticleMapper) ToModel(a *entity.KnowledgeArticle) *model.KnowledgeArticleRecord {
	if a == nil {
		return nil
	}
	return &model.KnowledgeArticleRecord{
		Id:        a.Id,
		Title:     a.Title,
		Content:   a.Content,
		Tags:      a.Tags,
		CreatedAt: a.CreatedAt.UTC(),
		UpdatedAt: a.UpdatedAt.UTC(),
	}
}
