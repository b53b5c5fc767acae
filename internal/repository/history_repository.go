package repository

import (
	"context"

	"ai-websearch-be/internal/model"

	"github.com/google/uuid"
)

// ScoredAnswer pairs a stored answer with its similarity to a query vector.
type ScoredAnswer struct {
	Record     *model.AnswerRecord
	Similarity float64
}

type HistoryRepository interface {
	// Stage-event history
	CreateMessage(ctx context.Context, message *model.MessageHistory) error
	GetMessagesBySessionID(ctx context.Context, sessionID uuid.UUID) ([]model.MessageHistory, error)

	// Terminal answers
	CreateAnswer(ctx context.Context, record *model.AnswerRecord) error
	SearchSimilarAnswers(ctx context.Context, embedding []float32, limit int) ([]*ScoredAnswer, error)
}
