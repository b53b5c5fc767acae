package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, nopLogger{})
	go hub.Run()
	return hub
}

func registerClient(t *testing.T, hub *Hub, sessionID uuid.UUID) *Client {
	t.Helper()
	client := &Client{Hub: hub, SessionID: sessionID, Send: make(chan []byte, 4)}
	hub.register <- client

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		for _, c := range hub.clients[sessionID] {
			if c == client {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	return client
}

func TestSendReachesAllSessionConnections(t *testing.T) {
	hub := startHub(t)
	sessionID := uuid.New()

	first := registerClient(t, hub, sessionID)
	second := registerClient(t, hub, sessionID)

	hub.Send(sessionID, []byte(`{"type":"Heading"}`))

	for _, client := range []*Client{first, second} {
		select {
		case data := <-client.Send:
			assert.JSONEq(t, `{"type":"Heading"}`, string(data))
		case <-time.After(time.Second):
			t.Fatal("client did not receive payload")
		}
	}
}

func TestSendDoesNotCrossSessions(t *testing.T) {
	hub := startHub(t)

	mine := registerClient(t, hub, uuid.New())
	other := registerClient(t, hub, uuid.New())

	hub.Send(mine.SessionID, []byte("payload"))

	select {
	case <-mine.Send:
	case <-time.After(time.Second):
		t.Fatal("target session did not receive payload")
	}

	select {
	case <-other.Send:
		t.Fatal("payload leaked into another session")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnregisterRemovesConnection(t *testing.T) {
	hub := startHub(t)
	sessionID := uuid.New()

	client := registerClient(t, hub, sessionID)
	hub.unregister <- client

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.clients[sessionID]
		return !ok
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open, "send channel should be closed on unregister")
}

func TestSendDropsFullBufferClientWithoutKillingHub(t *testing.T) {
	hub := startHub(t)
	sessionID := uuid.New()

	healthy := registerClient(t, hub, sessionID)

	stuck := &Client{Hub: hub, SessionID: sessionID, Send: make(chan []byte, 1)}
	hub.register <- stuck
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[sessionID]) == 2
	}, time.Second, 5*time.Millisecond)

	stuck.Send <- []byte("unread backlog")

	hub.Send(sessionID, []byte("first"))

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[sessionID]) == 1
	}, time.Second, 5*time.Millisecond)

	// The hub must survive the drop and keep serving the remaining client
	hub.Send(sessionID, []byte("second"))

	for _, want := range []string{"first", "second"} {
		select {
		case data := <-healthy.Send:
			assert.Equal(t, want, string(data))
		case <-time.After(time.Second):
			t.Fatalf("healthy client did not receive %q", want)
		}
	}

	// Exactly one close, owned by the unregister arm
	select {
	case _, open := <-stuck.Send:
		if open {
			// Drain the backlog entry, the close comes after it
			_, open = <-stuck.Send
		}
		assert.False(t, open, "dropped client's channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("dropped client's channel was never closed")
	}
}

func TestSendToUnknownSessionIsANoOp(t *testing.T) {
	hub := startHub(t)
	// No redis, no clients; must not panic or block
	hub.Send(uuid.New(), []byte("nobody listens"))
}
