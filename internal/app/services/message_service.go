package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
	"github.com/connecthub/manexis/internal/pkg/websocket"
)

const (
	// DefaultMessagePageSize is used when the client does not ask for a size
	DefaultMessagePageSize = 50
	// MaxMessagePageSize caps the page size a client may request
	MaxMessagePageSize = 100
)

// MessageService handles conversations and direct messages
type MessageService struct {
	conversationRepo ConversationStore
	messageRepo      MessageStore
	friendshipRepo   FriendshipStore
	userRepo         UserStore
	hub              MessageBroadcaster
	logger           zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	conversationRepo ConversationStore,
	messageRepo MessageStore,
	friendshipRepo FriendshipStore,
	userRepo UserStore,
	hub MessageBroadcaster,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		friendshipRepo:   friendshipRepo,
		userRepo:         userRepo,
		hub:              hub,
		logger:           logger,
	}
}

// GetOrCreateConversation returns the conversation with a friend, creating it
// lazily on first contact. Only approved friends can converse.
func (s *MessageService) GetOrCreateConversation(ctx context.Context, userID, friendID int64) (*dto.ConversationResponse, error) {
	if userID == friendID {
		return nil, apperrors.NewBadRequestError("cannot start a conversation with yourself")
	}

	friends, err := s.friendshipRepo.AreFriends(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, apperrors.ErrNotFriends
	}

	conversation, err := s.conversationRepo.GetOrCreate(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	peer, err := s.userRepo.GetUserByID(ctx, friendID)
	if err != nil {
		return nil, err
	}
	conversation.Peer = peer

	unread, err := s.messageRepo.CountUnread(ctx, conversation.ID, userID)
	if err != nil {
		return nil, err
	}
	conversation.UnreadCount = int(unread)

	resp := dto.FromConversation(conversation)
	return &resp, nil
}

// ListConversations returns the caller's inbox ordered by latest activity
func (s *MessageService) ListConversations(ctx context.Context, userID int64) ([]dto.ConversationResponse, error) {
	conversations, err := s.conversationRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		responses = append(responses, dto.FromConversation(c))
	}
	return responses, nil
}

// SendMessage posts a message into a conversation the caller belongs to and
// pushes it to connected websocket clients
func (s *MessageService) SendMessage(ctx context.Context, userID, conversationID int64, text string) (*dto.MessageResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrEmptyMessage
	}
	if len(text) > models.MaxMessageLength {
		return nil, apperrors.ErrContentTooLong
	}

	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, apperrors.ErrNotParticipant
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Message:        text,
	}
	if err := s.messageRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := s.conversationRepo.Touch(ctx, conversationID); err != nil {
		s.logger.Warn().Err(err).Int64("conversationID", conversationID).Msg("Failed to bump conversation activity")
	}

	s.hub.BroadcastToConversation(&websocket.Message{
		ID:             message.ID,
		ConversationID: conversationID,
		SenderID:       userID,
		Message:        message.Message,
		Timestamp:      message.CreatedAt,
	})

	resp := dto.FromMessage(message)
	return &resp, nil
}

// GetMessages returns a page of messages in ascending ID order. afterID is
// the polling cursor, beforeID the scrollback cursor. Reading marks the
// peer's messages as read; doing so twice changes nothing.
func (s *MessageService) GetMessages(ctx context.Context, userID, conversationID, afterID, beforeID int64, limit int) ([]dto.MessageResponse, error) {
	if limit <= 0 {
		limit = DefaultMessagePageSize
	}
	if limit > MaxMessagePageSize {
		limit = MaxMessagePageSize
	}

	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, apperrors.ErrNotParticipant
	}

	messages, err := s.messageRepo.GetMessages(ctx, conversationID, afterID, beforeID, limit)
	if err != nil {
		return nil, err
	}

	if _, err := s.messageRepo.MarkMessagesRead(ctx, conversationID, userID); err != nil {
		s.logger.Warn().Err(err).Int64("conversationID", conversationID).Msg("Failed to mark messages read")
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, dto.FromMessage(m))
	}
	return responses, nil
}

// GetFriendInfo returns the chat-pane header for a friend
func (s *MessageService) GetFriendInfo(ctx context.Context, userID, friendID int64) (*dto.FriendInfoResponse, error) {
	friends, err := s.friendshipRepo.AreFriends(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, apperrors.ErrNotFriends
	}

	friend, err := s.userRepo.GetUserByID(ctx, friendID)
	if err != nil {
		return nil, err
	}

	return &dto.FriendInfoResponse{
		UserID:       friend.ID,
		FirstName:    friend.FirstName,
		LastName:     friend.LastName,
		ProfilePhoto: friend.ProfilePhoto,
		LastLoginAt:  friend.LastLoginAt,
	}, nil
}
