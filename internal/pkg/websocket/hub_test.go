package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, userID, conversationID int64) *Client {
	return &Client{
		hub:            hub,
		send:           make(chan []byte, 16),
		userID:         userID,
		conversationID: conversationID,
		logger:         zerolog.Nop(),
	}
}

func startTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	return hub
}

func registerAndWait(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	before := hub.ClientCount(client.conversationID)
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.ClientCount(client.conversationID) == before+1
	}, time.Second, 5*time.Millisecond)
}

func TestHubBroadcastReachesConversationClients(t *testing.T) {
	hub := startTestHub(t)

	alice := newTestClient(hub, 1, 10)
	bob := newTestClient(hub, 2, 10)
	outsider := newTestClient(hub, 3, 20)

	registerAndWait(t, hub, alice)
	registerAndWait(t, hub, bob)
	registerAndWait(t, hub, outsider)

	sent := &Message{
		ID:             7,
		ConversationID: 10,
		SenderID:       1,
		Message:        "hello",
		Timestamp:      time.Now(),
	}
	hub.BroadcastToConversation(sent)

	for _, client := range []*Client{alice, bob} {
		select {
		case data := <-client.send:
			var got Message
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, int64(7), got.ID)
			assert.Equal(t, int64(10), got.ConversationID)
			assert.Equal(t, int64(1), got.SenderID)
			assert.Equal(t, "hello", got.Message)
		case <-time.After(time.Second):
			t.Fatalf("client %d did not receive the broadcast", client.userID)
		}
	}

	select {
	case <-outsider.send:
		t.Fatal("client in another conversation received the broadcast")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := startTestHub(t)

	client := newTestClient(hub, 1, 10)
	registerAndWait(t, hub, client)

	hub.unregister <- client
	require.Eventually(t, func() bool {
		return hub.ClientCount(10) == 0
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.send
	assert.False(t, open, "send channel should be closed after unregister")
}

func TestHubBroadcastDropsSlowClientWithoutStalling(t *testing.T) {
	hub := startTestHub(t)

	slow := newTestClient(hub, 1, 10)
	slow.send = make(chan []byte) // never drained, full from the first send
	healthy := newTestClient(hub, 2, 10)

	registerAndWait(t, hub, slow)
	registerAndWait(t, hub, healthy)

	hub.BroadcastToConversation(&Message{ID: 1, ConversationID: 10, SenderID: 2, Message: "first"})

	// The slow client must be dropped, its channel closed, and the hub loop
	// must keep accepting broadcasts afterwards.
	require.Eventually(t, func() bool {
		return hub.ClientCount(10) == 1
	}, time.Second, 5*time.Millisecond)

	_, open := <-slow.send
	assert.False(t, open, "slow client's send channel should be closed")

	done := make(chan struct{})
	go func() {
		hub.BroadcastToConversation(&Message{ID: 2, ConversationID: 10, SenderID: 2, Message: "second"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked after a slow client was dropped")
	}

	received := 0
	for received < 2 {
		select {
		case <-healthy.send:
			received++
		case <-time.After(time.Second):
			t.Fatalf("healthy client received %d of 2 broadcasts", received)
		}
	}
}

func TestHubBroadcastToEmptyConversation(t *testing.T) {
	hub := startTestHub(t)

	// Must not block or panic when nobody is connected
	hub.BroadcastToConversation(&Message{ID: 1, ConversationID: 99})

	assert.Equal(t, 0, hub.ClientCount(99))
}
