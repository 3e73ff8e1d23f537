package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
)

func conversationBetween(id, user1, user2 int64) *models.Conversation {
	u1, u2 := models.CanonicalPair(user1, user2)
	return &models.Conversation{ID: id, User1ID: u1, User2ID: u2}
}

func TestMessageServiceGetMessagesRejectsNonParticipant(t *testing.T) {
	conversationRepo := &stubConversationStore{
		getByID: func(ctx context.Context, id int64) (*models.Conversation, error) {
			return conversationBetween(5, 1, 2), nil
		},
	}
	messageRepo := &stubMessageStore{
		getMessages: func(ctx context.Context, conversationID, afterID, beforeID int64, limit int) ([]*models.Message, error) {
			t.Fatal("messages must not be fetched for an outsider")
			return nil, nil
		},
	}

	svc := NewMessageService(conversationRepo, messageRepo, nil, nil, nil, zerolog.Nop())

	_, err := svc.GetMessages(context.Background(), 3, 5, 0, 0, 0)

	require.ErrorIs(t, err, apperrors.ErrNotParticipant)
	assert.Empty(t, messageRepo.markReadCalls, "an outsider's read must not touch read state")
}

func TestMessageServiceGetMessagesMarksPeerMessagesRead(t *testing.T) {
	stored := []*models.Message{
		{ID: 11, ConversationID: 5, SenderID: 2, Message: "hi"},
		{ID: 12, ConversationID: 5, SenderID: 2, Message: "there"},
	}

	conversationRepo := &stubConversationStore{
		getByID: func(ctx context.Context, id int64) (*models.Conversation, error) {
			return conversationBetween(5, 1, 2), nil
		},
	}
	messageRepo := &stubMessageStore{
		getMessages: func(ctx context.Context, conversationID, afterID, beforeID int64, limit int) ([]*models.Message, error) {
			assert.Equal(t, int64(5), conversationID)
			assert.Equal(t, DefaultMessagePageSize, limit)
			return stored, nil
		},
	}

	svc := NewMessageService(conversationRepo, messageRepo, nil, nil, nil, zerolog.Nop())

	// Reading twice marks the peer's messages read each time; the second
	// pass finds nothing unread and must still succeed.
	for i := 0; i < 2; i++ {
		messages, err := svc.GetMessages(context.Background(), 1, 5, 0, 0, 0)
		require.NoError(t, err)
		require.Len(t, messages, 2)
	}

	require.Len(t, messageRepo.markReadCalls, 2)
	for _, call := range messageRepo.markReadCalls {
		assert.Equal(t, int64(5), call.conversationID)
		assert.Equal(t, int64(1), call.readerID)
	}
}

func TestMessageServiceSendMessageBroadcasts(t *testing.T) {
	touched := false
	conversationRepo := &stubConversationStore{
		getByID: func(ctx context.Context, id int64) (*models.Conversation, error) {
			return conversationBetween(5, 1, 2), nil
		},
		touch: func(ctx context.Context, conversationID int64) error {
			touched = true
			return nil
		},
	}
	messageRepo := &stubMessageStore{
		createMessage: func(ctx context.Context, message *models.Message) error {
			message.ID = 77
			message.CreatedAt = time.Now()
			return nil
		},
	}
	hub := &stubBroadcaster{}

	svc := NewMessageService(conversationRepo, messageRepo, nil, nil, hub, zerolog.Nop())

	resp, err := svc.SendMessage(context.Background(), 1, 5, "  hello  ")

	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, "hello", resp.Message)
	assert.True(t, touched, "sending must bump the conversation's activity")

	require.Len(t, hub.messages, 1)
	assert.Equal(t, int64(77), hub.messages[0].ID)
	assert.Equal(t, int64(5), hub.messages[0].ConversationID)
	assert.Equal(t, int64(1), hub.messages[0].SenderID)
	assert.Equal(t, "hello", hub.messages[0].Message)
}

func TestMessageServiceSendMessageValidation(t *testing.T) {
	conversationRepo := &stubConversationStore{
		getByID: func(ctx context.Context, id int64) (*models.Conversation, error) {
			return conversationBetween(5, 1, 2), nil
		},
	}
	hub := &stubBroadcaster{}
	svc := NewMessageService(conversationRepo, &stubMessageStore{}, nil, nil, hub, zerolog.Nop())

	tests := []struct {
		name     string
		senderID int64
		text     string
		wantErr  error
	}{
		{name: "blank message", senderID: 1, text: "   ", wantErr: apperrors.ErrEmptyMessage},
		{name: "oversized message", senderID: 1, text: strings.Repeat("x", models.MaxMessageLength+1), wantErr: apperrors.ErrContentTooLong},
		{name: "outsider", senderID: 3, text: "hello", wantErr: apperrors.ErrNotParticipant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SendMessage(context.Background(), tt.senderID, 5, tt.text)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, hub.messages, "rejected messages must not be broadcast")
}
