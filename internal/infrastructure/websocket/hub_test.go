package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// register pushes the client and waits until the hub has recorded it, so a
// following SendToUser cannot race the registration.
func register(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	hub.Register <- client
	for i := 0; i < 1000; i++ {
		hub.mutex.RLock()
		current := hub.clients[client.UserID]
		hub.mutex.RUnlock()
		if current == client {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("client %s never registered", client.UserID)
}

func TestHubSendToUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	hub.Start(ctx)

	client := &Client{UserID: "alice", Send: make(chan []byte, 4)}
	register(t, hub, client)

	hub.SendToUser("alice", Event{Type: EventMessageCreated, ConversationID: "c1"})

	select {
	case data := <-client.Send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, EventMessageCreated, event.Type)
		assert.Equal(t, "c1", event.ConversationID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestHubSendToUnknownUser(t *testing.T) {
	hub := NewHub()

	// No connection, no panic, nothing queued.
	hub.SendToUser("nobody", Event{Type: EventMessageCreated})
}

func TestHubReconnectReplacesConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	hub.Start(ctx)

	first := &Client{UserID: "alice", Send: make(chan []byte, 4)}
	register(t, hub, first)
	second := &Client{UserID: "alice", Send: make(chan []byte, 4)}
	register(t, hub, second)

	// The stale connection is closed out.
	select {
	case _, open := <-first.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("first connection not closed")
	}

	hub.SendToUser("alice", Event{Type: EventMessageCreated})
	select {
	case <-second.Send:
	case <-time.After(time.Second):
		t.Fatal("event not delivered to the new connection")
	}
}

func TestHubSlowConsumerDropsEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	hub.Start(ctx)

	client := &Client{UserID: "alice", Send: make(chan []byte)}
	register(t, hub, client)

	// Unbuffered channel with no reader: the send must not block.
	done := make(chan struct{})
	go func() {
		hub.SendToUser("alice", Event{Type: EventMessageCreated})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SendToUser blocked on a slow consumer")
	}
}

func TestClientSendAfterClose(t *testing.T) {
	client := &Client{UserID: "alice", Send: make(chan []byte, 1)}

	client.closeSend()
	// Closing twice is a no-op and a late send must not panic.
	client.closeSend()
	client.trySend([]byte("late"))

	_, open := <-client.Send
	assert.False(t, open)
}

func TestHubReconnectChurnWhileSending(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	hub.Start(ctx)

	first := &Client{UserID: "alice", Send: make(chan []byte, 1)}
	register(t, hub, first)

	// Deliveries race reconnects; a sender holding a replaced client must
	// not hit its closed channel.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			hub.SendToUser("alice", Event{Type: EventMessageCreated})
		}
	}()

	for i := 0; i < 50; i++ {
		replacement := &Client{UserID: "alice", Send: make(chan []byte, 1)}
		register(t, hub, replacement)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sender did not finish")
	}
}
