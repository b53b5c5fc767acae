package websocket

import (
	"encoding/json"
	"log"
	"time"

	"ai-websearch-be/internal/dto"
	"ai-websearch-be/internal/pkg/serverutils"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// QueryHandler receives inbound query frames parsed off a connection.
type QueryHandler func(sessionID uuid.UUID, query string)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// SessionID associated with this connection
	SessionID uuid.UUID

	// Invoked for every inbound query frame.
	OnQuery QueryHandler

	// Buffered channel of outbound messages.
	Send chan []byte
}

// readPump pumps inbound query frames from the websocket connection to the
// pipeline.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error for session %s: %v", c.SessionID, err)
			}
			break
		}

		var req dto.QueryRequest
		if err := json.Unmarshal(message, &req); err != nil {
			log.Printf("readPump dropping malformed frame for session %s: %v", c.SessionID, err)
			continue
		}
		if err := serverutils.ValidateRequest(&req); err != nil {
			log.Printf("readPump dropping invalid frame for session %s: %v", c.SessionID, err)
			continue
		}

		if c.OnQuery != nil {
			c.OnQuery(c.SessionID, req.Query)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
// Each payload is one complete event, so each goes out as its own frame.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
