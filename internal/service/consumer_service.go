// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-websearch-be/internal/dto"
	"ai-websearch-be/internal/model"
	"ai-websearch-be/internal/repository"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	historyRepo repository.HistoryRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	historyRepo repository.HistoryRepository,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		historyRepo: historyRepo,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PersistStageEventMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal history message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	record := &model.MessageHistory{
		Id:        uuid.New(),
		SessionId: payload.SessionId,
		Kind:      payload.Kind,
		Content:   datatypes.JSON(payload.Content),
		CreatedAt: time.Now(),
	}

	if err := cs.historyRepo.CreateMessage(ctx, record); err != nil {
		log.Printf("[ERROR] Failed to persist stage event for session %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
