package models

import "time"

// MaxMessageLength caps direct-message text
const MaxMessageLength = 2000

// Conversation is a row in 'conversations'. User1ID always holds the lower
// user id and User2ID the higher one, so a pair of users maps to exactly one
// row regardless of who messaged first.
type Conversation struct {
	ID        int64     `json:"id" db:"id"`
	User1ID   int64     `json:"user1Id" db:"user1_id"`
	User2ID   int64     `json:"user2Id" db:"user2_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Aggregates populated by list queries
	Peer        *User    `json:"peer,omitempty"`
	LastMessage *Message `json:"lastMessage,omitempty"`
	UnreadCount int      `json:"unreadCount"`
}

// CanonicalPair orders two user ids as stored in a conversation row
func CanonicalPair(a, b int64) (user1, user2 int64) {
	if a < b {
		return a, b
	}
	return b, a
}

// HasParticipant reports whether the user is one of the two participants
func (c *Conversation) HasParticipant(userID int64) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// PeerOf returns the other participant's id
func (c *Conversation) PeerOf(userID int64) int64 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// Message is a row in 'messages'. IsRead flips to true when the recipient
// fetches the conversation's messages.
type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversationId" db:"conversation_id"`
	SenderID       int64     `json:"senderId" db:"sender_id"`
	Message        string    `json:"message" db:"message"`
	IsRead         bool      `json:"isRead" db:"is_read"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}
