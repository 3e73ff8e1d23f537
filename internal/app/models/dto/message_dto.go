package dto

import (
	"time"

	"github.com/connecthub/manexis/internal/app/models"
)

// CreateConversationRequest looks up or lazily creates the conversation with
// a friend
type CreateConversationRequest struct {
	FriendID int64 `json:"friendId" binding:"required,gt=0"`
}

// ConversationResponse is one row of the conversation list
type ConversationResponse struct {
	ID          int64            `json:"id"`
	Peer        *PublicProfile   `json:"peer,omitempty"`
	LastMessage *MessageResponse `json:"lastMessage,omitempty"`
	UnreadCount int              `json:"unreadCount"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// SendMessageRequest posts a message into a conversation
type SendMessageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// MessageResponse is one message
type MessageResponse struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	SenderID       int64     `json:"senderId"`
	Message        string    `json:"message"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FriendInfoResponse is the chat-pane header for the peer of a conversation
type FriendInfoResponse struct {
	UserID       int64      `json:"userId"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	ProfilePhoto *string    `json:"profilePhoto,omitempty"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// FromMessage maps a message model to the response
func FromMessage(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Message:        m.Message,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}

// FromConversation maps a conversation model (with aggregates populated) to
// the response
func FromConversation(c *models.Conversation) ConversationResponse {
	resp := ConversationResponse{
		ID:          c.ID,
		UnreadCount: c.UnreadCount,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Peer != nil {
		resp.Peer = FromUserPublic(c.Peer)
	}
	if c.LastMessage != nil {
		msg := FromMessage(c.LastMessage)
		resp.LastMessage = &msg
	}
	return resp
}
