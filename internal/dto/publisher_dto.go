package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// PersistStageEventMessage is the internal bus payload asking the consumer to
// append one stage event to the session history.
type PersistStageEventMessage struct {
	SessionId uuid.UUID       `json:"session_id"`
	Kind      string          `json:"kind"`
	Content   json.RawMessage `json:"content"`
}
