package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients, grouped by conversation, and
// pushes new messages to them. Delivery over the hub is best effort; the
// REST endpoints remain the authoritative transport.
type Hub struct {
	// Registered clients organized by conversation ID
	clients map[int64]map[*Client]bool

	// Channel for messages to push out
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// Message is the payload pushed over a conversation's WebSocket
type Message struct {
	// Message ID from the database
	ID int64 `json:"id"`

	// Conversation this message belongs to
	ConversationID int64 `json:"conversationId"`

	// User who sent the message
	SenderID int64 `json:"senderId"`

	// Message text
	Message string `json:"message"`

	// Timestamp when the message was created
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub loop, handling registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conversationID := client.conversationID
	if _, ok := h.clients[conversationID]; !ok {
		h.clients[conversationID] = make(map[*Client]bool)
	}
	h.clients[conversationID][client] = true

	h.logger.Info().
		Int64("conversationID", conversationID).
		Int64("userID", client.userID).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conversationID := client.conversationID
	if _, ok := h.clients[conversationID]; ok {
		if _, ok := h.clients[conversationID][client]; ok {
			delete(h.clients[conversationID], client)
			close(client.send)

			if len(h.clients[conversationID]) == 0 {
				delete(h.clients, conversationID)
			}

			h.logger.Info().
				Int64("conversationID", conversationID).
				Int64("userID", client.userID).
				Msg("Client unregistered")
		}
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[message.ConversationID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("conversationID", message.ConversationID).
			Msg("Failed to marshal message for broadcast")
		return
	}

	// Slow clients are dropped right here rather than handed back to the
	// unregister channel: Run is the only receiver on that channel, so
	// sending to it from the hub goroutine would block the loop forever.
	for client := range clients {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(clients, client)
			h.logger.Warn().
				Int64("conversationID", message.ConversationID).
				Int64("userID", client.userID).
				Msg("Dropping slow client, send buffer full")
		}
	}
	if len(clients) == 0 {
		delete(h.clients, message.ConversationID)
		return
	}

	h.logger.Debug().
		Int64("conversationID", message.ConversationID).
		Int("clientCount", len(clients)).
		Msg("Message pushed to conversation clients")
}

// BroadcastToConversation pushes a message to all clients connected to the
// conversation
func (h *Hub) BroadcastToConversation(message *Message) {
	h.broadcast <- message
}

// ClientCount returns the number of connected clients for a conversation
func (h *Hub) ClientCount(conversationID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[conversationID]; ok {
		return len(clients)
	}
	return 0
}
