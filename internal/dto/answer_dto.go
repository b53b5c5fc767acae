package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QueryRequest is the inbound websocket frame starting one pipeline run.
type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

type HistoryEventResponse struct {
	Id        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

type SimilarAnswerResponse struct {
	SessionId  uuid.UUID `json:"session_id"`
	Query      string    `json:"query"`
	Answer     string    `json:"answer"`
	Similarity float64   `json:"similarity"`
	CreatedAt  time.Time `json:"created_at"`
}
