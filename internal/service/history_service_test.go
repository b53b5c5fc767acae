package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-websearch-be/internal/model"
	"ai-websearch-be/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type historyFixtureRepo struct {
	recordingRepo
	sessionMessages []model.MessageHistory
	similar         []*repository.ScoredAnswer
	lastLimit       int
	lastEmbedding   []float32
}

func (r *historyFixtureRepo) GetMessagesBySessionID(ctx context.Context, sessionID uuid.UUID) ([]model.MessageHistory, error) {
	return r.sessionMessages, nil
}

func (r *historyFixtureRepo) SearchSimilarAnswers(ctx context.Context, embedding []float32, limit int) ([]*repository.ScoredAnswer, error) {
	r.lastEmbedding = embedding
	r.lastLimit = limit
	return r.similar, nil
}

func TestGetSessionHistoryMapsEvents(t *testing.T) {
	sessionID := uuid.New()
	created := time.Now()
	repo := &historyFixtureRepo{
		sessionMessages: []model.MessageHistory{
			{Id: uuid.New(), SessionId: sessionID, Kind: "Sources", Content: datatypes.JSON(`[{"title":"Go","link":"https://go.dev"}]`), CreatedAt: created},
			{Id: uuid.New(), SessionId: sessionID, Kind: "GPT", Content: datatypes.JSON(`"the answer"`), CreatedAt: created},
		},
	}

	s := NewHistoryService(repo, flatEmbedder{})
	res, err := s.GetSessionHistory(context.Background(), sessionID)

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Sources", res[0].Kind)
	assert.JSONEq(t, `[{"title":"Go","link":"https://go.dev"}]`, string(res[0].Content))
	assert.Equal(t, "GPT", res[1].Kind)
}

func TestSearchSimilarEmbedsQueryAndMaps(t *testing.T) {
	record := &model.AnswerRecord{
		SessionId: uuid.New(),
		Query:     "what is go",
		Answer:    "a language",
		CreatedAt: time.Now(),
	}
	repo := &historyFixtureRepo{
		similar: []*repository.ScoredAnswer{{Record: record, Similarity: 0.93}},
	}

	s := NewHistoryService(repo, flatEmbedder{})
	res, err := s.SearchSimilar(context.Background(), "what is golang", 3)

	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, repo.lastEmbedding)
	assert.Equal(t, 3, repo.lastLimit)
	require.Len(t, res, 1)
	assert.Equal(t, "what is go", res[0].Query)
	assert.InDelta(t, 0.93, res[0].Similarity, 1e-9)
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("quota exceeded")
}

func TestSearchSimilarEmbedFailure(t *testing.T) {
	s := NewHistoryService(&historyFixtureRepo{}, failingEmbedder{})

	_, err := s.SearchSimilar(context.Background(), "q", 3)
	require.Error(t, err)
}
