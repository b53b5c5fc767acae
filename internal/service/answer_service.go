package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-websearch-be/internal/dto"
	"ai-websearch-be/internal/model"
	"ai-websearch-be/internal/pkg/logger"
	"ai-websearch-be/internal/repository"
	"ai-websearch-be/pkg/embedding"
	"ai-websearch-be/pkg/events"
	pktNats "ai-websearch-be/pkg/nats"
	"ai-websearch-be/pkg/rag/answer"
	"ai-websearch-be/pkg/rag/collect"
	"ai-websearch-be/pkg/rag/followup"
	"ai-websearch-be/pkg/rag/pipeline"
	"ai-websearch-be/pkg/rag/sources"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// StageDelivery defines how to push stage events to live connections.
// Typically implemented by the WebSocket Hub.
type StageDelivery interface {
	Send(sessionID uuid.UUID, data []byte)
}

type IAnswerService interface {
	HandleQuery(ctx context.Context, sessionID uuid.UUID, query string)
}

type answerService struct {
	retriever         *sources.Retriever
	collector         *collect.Coordinator
	streamer          *answer.Streamer
	followupGen       *followup.Generator
	embeddingProvider embedding.Provider
	historyRepo       repository.HistoryRepository
	delivery          StageDelivery
	publisherService  IPublisherService
	eventPublisher    *pktNats.Publisher
	logger            logger.ILogger
}

func NewAnswerService(
	retriever *sources.Retriever,
	collector *collect.Coordinator,
	streamer *answer.Streamer,
	followupGen *followup.Generator,
	embeddingProvider embedding.Provider,
	historyRepo repository.HistoryRepository,
	delivery StageDelivery,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAnswerService {
	return &answerService{
		retriever:         retriever,
		collector:         collector,
		streamer:          streamer,
		followupGen:       followupGen,
		embeddingProvider: embeddingProvider,
		historyRepo:       historyRepo,
		delivery:          delivery,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
		logger:            log,
	}
}

// HandleQuery runs one query through the full pipeline, emitting stage events
// in order: Sources, VectorCreation, Heading, GPT (growing), FollowUp.
// Retrieval failures end the run before any event is emitted; everything after
// the Sources event degrades instead of failing.
func (s *answerService) HandleQuery(ctx context.Context, sessionID uuid.UUID, query string) {
	started := time.Now()

	candidates, err := s.retriever.Retrieve(ctx, query)
	if err != nil {
		s.logger.Error("AnswerService", "Retrieval failed, aborting session run", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}

	s.emit(ctx, sessionID, pipeline.NewSourcesEvent(candidates), true)

	excerpts := s.collector.Collect(ctx, candidates, query)

	s.emit(ctx, sessionID, pipeline.NewVectorCreationEvent(), true)
	s.emit(ctx, sessionID, pipeline.NewHeadingEvent(), true)

	answerText, err := s.streamer.Stream(ctx, query, excerpts, func(accumulated string) {
		// Growth frames are live-only; the terminal answer is persisted below
		s.emit(ctx, sessionID, pipeline.NewAnswerEvent(accumulated), false)
	})
	if err != nil {
		// Degraded, not fatal: the run still reaches its terminal events
		s.logger.Error("AnswerService", "Answer stream failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	s.emit(ctx, sessionID, pipeline.NewAnswerEvent(answerText), true)

	// Follow-ups see the same context the answer was generated from
	followupRaw, err := s.followupGen.Generate(ctx, answer.BuildPrompt(query, excerpts))
	if err != nil {
		s.logger.Warn("AnswerService", "Follow-up generation failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
	s.emit(ctx, sessionID, pipeline.NewFollowUpEvent(followupRaw), true)

	s.persistAnswer(ctx, sessionID, query, answerText)

	if s.eventPublisher != nil {
		evt := events.NewSessionAnswered(sessionID.String(), len(candidates), len(excerpts))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("AnswerService", "Failed to publish session event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("AnswerService", "Session run finished", map[string]interface{}{
		"session_id":  sessionID,
		"candidates":  len(candidates),
		"excerpts":    len(excerpts),
		"duration_ms": time.Since(started).Milliseconds(),
	})
}

// emit delivers one stage event to live connections and, when persist is set,
// hands it to the history consumer over the internal bus. Live delivery never
// blocks on persistence.
func (s *answerService) emit(ctx context.Context, sessionID uuid.UUID, event pipeline.StageEvent, persist bool) {
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("AnswerService", "Failed to marshal stage event", map[string]interface{}{
			"session_id": sessionID,
			"kind":       event.Kind,
			"error":      err.Error(),
		})
		return
	}

	s.delivery.Send(sessionID, data)

	if !persist || s.publisherService == nil {
		return
	}

	content, err := event.ContentJSON()
	if err != nil {
		return
	}
	payload, err := json.Marshal(dto.PersistStageEventMessage{
		SessionId: sessionID,
		Kind:      string(event.Kind),
		Content:   content,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("AnswerService", "Failed to enqueue stage event for history", map[string]interface{}{
			"session_id": sessionID,
			"kind":       event.Kind,
			"error":      err.Error(),
		})
	}
}

func (s *answerService) persistAnswer(ctx context.Context, sessionID uuid.UUID, query, answerText string) {
	vectors, err := s.embeddingProvider.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		s.logger.Warn("AnswerService", "Failed to embed query for answer record", map[string]interface{}{
			"session_id": sessionID,
		})
		return
	}

	record := &model.AnswerRecord{
		Id:             uuid.New(),
		SessionId:      sessionID,
		Query:          query,
		Answer:         answerText,
		QueryEmbedding: pgvector.NewVector(vectors[0]),
		CreatedAt:      time.Now(),
	}
	if err := s.historyRepo.CreateAnswer(ctx, record); err != nil {
		s.logger.Error("AnswerService", "Failed to persist answer record", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}
