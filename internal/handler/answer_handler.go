package handler

import (
	"context"

	"ai-websearch-be/internal/pkg/logger"
	"ai-websearch-be/internal/service"
	internalWS "ai-websearch-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type AnswerHandler struct {
	service service.IAnswerService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewAnswerHandler(service service.IAnswerService, hub *internalWS.Hub, log logger.ILogger) *AnswerHandler {
	return &AnswerHandler{
		service: service,
		hub:     hub,
		logger:  log,
	}
}

// ServeWs handles websocket requests from the peer. The session is anonymous:
// clients pass a session UUID via the "session" query param to resume one, or
// omit it to start fresh.
func (h *AnswerHandler) ServeWs(c *fiber.Ctx) error {
	sessionID := uuid.New()
	if raw := c.Query("session"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
		}
		sessionID = parsed
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("AnswerHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID, h.onQuery)
			h.logger.Info("AnswerHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// onQuery launches one pipeline run per inbound query frame. Runs detach from
// the connection lifetime so an early disconnect does not abort persistence.
func (h *AnswerHandler) onQuery(sessionID uuid.UUID, query string) {
	go h.service.HandleQuery(context.Background(), sessionID, query)
}
