package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// KnowledgeVector is the pgvector-backed alternative to kb:vector:<id>.
// The column is left undimensioned so any embedding model can be used;
// comparing vectors of different sizes fails in the database.
type KnowledgeVector struct {
	ArticleId      string          `gorm:"primaryKey;type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector"`
	Model          string          `gorm:"type:text"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (KnowledgeVector) TableName() string {
	return "knowledge_vectors"
}
