package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"iecnexus/pkg/logger"
)

// Event is a small advisory payload pushed to connected clients when
// something they should re-poll for has happened. Polling endpoints remain
// the source of truth; a client without a socket misses nothing.
type Event struct {
	Type           string      `json:"type"`
	ConversationID string      `json:"conversation_id,omitempty"`
	GroupID        string      `json:"group_id,omitempty"`
	Payload        interface{} `json:"payload,omitempty"`
}

const (
	EventMessageCreated      = "message.created"
	EventGroupMessageCreated = "group_message.created"
	EventAnnouncementCreated = "announcement.created"
)

// Client is one user's WebSocket connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

// closeSend shuts the outbound queue exactly once. SendToUser can hold a
// stale client pointer across a reconnect, so the close and the queue send
// share this guard instead of racing on the raw channel.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// trySend queues data unless the queue is closed or full.
func (c *Client) trySend(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
		// Slow consumer; drop the event rather than block the caller.
	}
}

// Hub tracks active connections, one per user id; a reconnect replaces the
// previous connection.
type Hub struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the hub's main loop in a goroutine.
func (h *Hub) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-h.Register:
				h.mutex.Lock()
				if old, ok := h.clients[client.UserID]; ok {
					old.closeSend()
				}
				h.clients[client.UserID] = client
				h.mutex.Unlock()
				logger.Debug("ws client registered: %s", client.UserID)

			case client := <-h.Unregister:
				h.mutex.Lock()
				if current, ok := h.clients[client.UserID]; ok && current == client {
					delete(h.clients, client.UserID)
					client.closeSend()
				}
				h.mutex.Unlock()
				logger.Debug("ws client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser pushes an event to a user's connection if one is open. Dropped
// silently otherwise.
func (h *Hub) SendToUser(userID string, event Event) {
	h.mutex.RLock()
	client, ok := h.clients[userID]
	h.mutex.RUnlock()
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("ws marshal event: %v", err)
		return
	}

	client.trySend(data)
}

// ReadPump drains (and discards) inbound frames so pings and close frames
// are processed, unregistering on error.
func (c *Client) ReadPump(h *Hub) {
	defer func() {
		h.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Debug("ws read error: %v", err)
			}
			return
		}
	}
}

// WritePump forwards queued events to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
