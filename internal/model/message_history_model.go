package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MessageHistory is one persisted stage event, keyed by the session it was
// delivered to. Append-only.
type MessageHistory struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind      string         `gorm:"type:varchar(20);not null"`
	Content   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"default:now();not null;index"`
}

func (MessageHistory) TableName() string {
	return "message_history"
}
