package implementation

import (
	"context"

	"ai-websearch-be/internal/model"
	"ai-websearch-be/internal/repository"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type HistoryRepositoryImpl struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) repository.HistoryRepository {
	return &HistoryRepositoryImpl{db: db}
}

func (r *HistoryRepositoryImpl) CreateMessage(ctx context.Context, message *model.MessageHistory) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *HistoryRepositoryImpl) GetMessagesBySessionID(ctx context.Context, sessionID uuid.UUID) ([]model.MessageHistory, error) {
	var messages []model.MessageHistory
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *HistoryRepositoryImpl) CreateAnswer(ctx context.Context, record *model.AnswerRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// SearchSimilarAnswers ranks stored answers by query-embedding similarity.
// Cosine distance in pgvector is 1 - cosine_similarity, hence the inversion.
func (r *HistoryRepositoryImpl) SearchSimilarAnswers(ctx context.Context, embedding []float32, limit int) ([]*repository.ScoredAnswer, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.AnswerRecord
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("answer_records").
		Select("answer_records.*, 1 - (query_embedding <=> ?) as similarity", queryVector).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*repository.ScoredAnswer, len(results))
	for i := range results {
		record := results[i].AnswerRecord
		scored[i] = &repository.ScoredAnswer{
			Record:     &record,
			Similarity: results[i].Similarity,
		}
	}
	return scored, nil
}
