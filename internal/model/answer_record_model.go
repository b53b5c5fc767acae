package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// AnswerRecord stores the terminal answer of a session together with the
// query and its embedding, so past answers can be surfaced for similar
// queries later.
type AnswerRecord struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Query          string          `gorm:"type:text;not null"`
	Answer         string          `gorm:"type:text;not null"`
	QueryEmbedding pgvector.Vector `gorm:"type:vector(768)"` // Gemini text-embedding-004 uses 768 dimensions
	CreatedAt      time.Time       `gorm:"default:now();not null;index"`
}

func (AnswerRecord) TableName() string {
	return "answer_records"
}
