package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-websearch-be/internal/dto"
	"ai-websearch-be/internal/repository"
	"ai-websearch-be/pkg/embedding"

	"github.com/google/uuid"
)

type IHistoryService interface {
	GetSessionHistory(ctx context.Context, sessionID uuid.UUID) ([]*dto.HistoryEventResponse, error)
	SearchSimilar(ctx context.Context, query string, limit int) ([]*dto.SimilarAnswerResponse, error)
}

type historyService struct {
	historyRepo       repository.HistoryRepository
	embeddingProvider embedding.Provider
}

func NewHistoryService(historyRepo repository.HistoryRepository, embeddingProvider embedding.Provider) IHistoryService {
	return &historyService{
		historyRepo:       historyRepo,
		embeddingProvider: embeddingProvider,
	}
}

func (s *historyService) GetSessionHistory(ctx context.Context, sessionID uuid.UUID) ([]*dto.HistoryEventResponse, error) {
	messages, err := s.historyRepo.GetMessagesBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.HistoryEventResponse, len(messages))
	for i, msg := range messages {
		res[i] = &dto.HistoryEventResponse{
			Id:        msg.Id,
			Kind:      msg.Kind,
			Content:   json.RawMessage(msg.Content),
			CreatedAt: msg.CreatedAt,
		}
	}
	return res, nil
}

func (s *historyService) SearchSimilar(ctx context.Context, query string, limit int) ([]*dto.SimilarAnswerResponse, error) {
	vectors, err := s.embeddingProvider.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embed query: empty result")
	}

	scored, err := s.historyRepo.SearchSimilarAnswers(ctx, vectors[0], limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SimilarAnswerResponse, len(scored))
	for i, sa := range scored {
		res[i] = &dto.SimilarAnswerResponse{
			SessionId:  sa.Record.SessionId,
			Query:      sa.Record.Query,
			Answer:     sa.Record.Answer,
			Similarity: sa.Similarity,
			CreatedAt:  sa.Record.CreatedAt,
		}
	}
	return res, nil
}
