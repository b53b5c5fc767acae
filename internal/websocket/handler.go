package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer. Blocks until the
// connection drops.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID uuid.UUID, onQuery QueryHandler) {
	client := &Client{Hub: hub, Conn: c, SessionID: sessionID, OnQuery: onQuery, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
