package services

import (
	"context"
	"time"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/pkg/websocket"
)

// Hand-written store stubs. Each embeds the store interface so only the
// methods a test actually configures need a function; calling anything else
// panics and fails the test.

type stubUserStore struct {
	UserStore
	getUserByID func(ctx context.Context, id int64) (*models.User, error)
	emailExists func(ctx context.Context, email string) (bool, error)
	createUser  func(ctx context.Context, user *models.User) (int64, error)
}

func (s *stubUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getUserByID(ctx, id)
}

func (s *stubUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.emailExists(ctx, email)
}

func (s *stubUserStore) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	return s.createUser(ctx, user)
}

type stubFriendshipStore struct {
	FriendshipStore
	getBetween    func(ctx context.Context, userA, userB int64) (*models.Friendship, error)
	createRequest func(ctx context.Context, userID, friendID int64) (int64, error)
	areFriends    func(ctx context.Context, userA, userB int64) (bool, error)
}

func (s *stubFriendshipStore) GetBetween(ctx context.Context, userA, userB int64) (*models.Friendship, error) {
	return s.getBetween(ctx, userA, userB)
}

func (s *stubFriendshipStore) CreateRequest(ctx context.Context, userID, friendID int64) (int64, error) {
	return s.createRequest(ctx, userID, friendID)
}

func (s *stubFriendshipStore) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	return s.areFriends(ctx, userA, userB)
}

type stubConversationStore struct {
	ConversationStore
	getByID func(ctx context.Context, id int64) (*models.Conversation, error)
	touch   func(ctx context.Context, conversationID int64) error
}

func (s *stubConversationStore) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	return s.getByID(ctx, id)
}

func (s *stubConversationStore) Touch(ctx context.Context, conversationID int64) error {
	return s.touch(ctx, conversationID)
}

type markReadCall struct {
	conversationID int64
	readerID       int64
}

type stubMessageStore struct {
	MessageStore
	createMessage func(ctx context.Context, message *models.Message) error
	getMessages   func(ctx context.Context, conversationID, afterID, beforeID int64, limit int) ([]*models.Message, error)
	markReadCalls []markReadCall
	markReadErr   error
}

func (s *stubMessageStore) CreateMessage(ctx context.Context, message *models.Message) error {
	return s.createMessage(ctx, message)
}

func (s *stubMessageStore) GetMessages(ctx context.Context, conversationID, afterID, beforeID int64, limit int) ([]*models.Message, error) {
	return s.getMessages(ctx, conversationID, afterID, beforeID, limit)
}

func (s *stubMessageStore) MarkMessagesRead(ctx context.Context, conversationID, readerID int64) (int64, error) {
	s.markReadCalls = append(s.markReadCalls, markReadCall{conversationID, readerID})
	// The UPDATE only touches unread rows, so only the first call reports
	// affected rows
	if len(s.markReadCalls) > 1 {
		return 0, s.markReadErr
	}
	return 1, s.markReadErr
}

type stubPostStore struct {
	PostStore
	getPostByID func(ctx context.Context, postID, viewerID int64) (*models.Post, error)
}

func (s *stubPostStore) GetPostByID(ctx context.Context, postID, viewerID int64) (*models.Post, error) {
	return s.getPostByID(ctx, postID, viewerID)
}

type stubVerificationTokenStore struct {
	VerificationTokenStore
	createToken func(ctx context.Context, userID int64, token string, expiryDate time.Time) error
}

func (s *stubVerificationTokenStore) CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	return s.createToken(ctx, userID, token, expiryDate)
}

type stubEmailService struct {
	verificationEmails []string
}

func (s *stubEmailService) SendVerificationEmail(toEmail, toName, token string) error {
	s.verificationEmails = append(s.verificationEmails, toEmail)
	return nil
}

func (s *stubEmailService) SendWelcomeEmail(toEmail, toName string) error { return nil }

func (s *stubEmailService) SendPasswordResetEmail(toEmail, toName, token string) error { return nil }

type stubBroadcaster struct {
	messages []*websocket.Message
}

func (s *stubBroadcaster) BroadcastToConversation(message *websocket.Message) {
	s.messages = append(s.messages, message)
}
