package services

import (
	"context"
	"time"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/pkg/websocket"
)

// The services depend on these store views rather than on the concrete
// repository types. The repositories package satisfies all of them; tests
// substitute hand-written stubs.

// UserStore is the persistence view of user accounts
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserStatus(ctx context.Context, userID int64, status models.UserStatus) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName, bio, location, website *string) error
	UpdateProfilePhoto(ctx context.Context, userID int64, photoPath string) error
	UpdateCoverPhoto(ctx context.Context, userID int64, photoPath string) error
	GetUserIDByPhotoPath(ctx context.Context, photoPath string) (int64, error)
	SearchUsers(ctx context.Context, searcherID int64, term string, offset uint64, limit int) ([]*models.User, int64, error)
}

// SessionStore is the persistence view of refresh-token sessions
type SessionStore interface {
	CreateSession(ctx context.Context, refreshToken string, userID int64, expiryDate time.Time) error
	GetSessionByToken(ctx context.Context, refreshToken string) (int64, error)
	RevokeSession(ctx context.Context, refreshToken string) error
	RevokeAllUserSessions(ctx context.Context, userID int64) error
}

// VerificationTokenStore is the persistence view of email verification tokens
type VerificationTokenStore interface {
	CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error
	GetTokenInfo(ctx context.Context, token string) (int64, time.Time, error)
	DeleteToken(ctx context.Context, token string) error
	DeleteUserTokens(ctx context.Context, userID int64) error
}

// PasswordResetTokenStore is the persistence view of password reset tokens
type PasswordResetTokenStore interface {
	CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error
	GetTokenInfo(ctx context.Context, token string) (int64, time.Time, bool, error)
	MarkTokenUsed(ctx context.Context, token string) error
	DeleteUserTokens(ctx context.Context, userID int64) error
}

// FriendshipStore is the persistence view of the friend graph
type FriendshipStore interface {
	CreateRequest(ctx context.Context, userID, friendID int64) (int64, error)
	GetBetween(ctx context.Context, userA, userB int64) (*models.Friendship, error)
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	AreFriends(ctx context.Context, userA, userB int64) (bool, error)
	ListFriends(ctx context.Context, userID int64) ([]*models.Friendship, error)
	ListPendingReceived(ctx context.Context, userID int64) ([]*models.Friendship, error)
	ListPendingSent(ctx context.Context, userID int64) ([]*models.Friendship, error)
	GetRelationships(ctx context.Context, userID int64, otherIDs []int64) (map[int64]*models.Friendship, error)
}

// ConversationStore is the persistence view of conversations
type ConversationStore interface {
	GetOrCreate(ctx context.Context, userA, userB int64) (*models.Conversation, error)
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.Conversation, error)
	Touch(ctx context.Context, conversationID int64) error
}

// MessageStore is the persistence view of direct messages
type MessageStore interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessages(ctx context.Context, conversationID, afterID, beforeID int64, limit int) ([]*models.Message, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID int64) (int64, error)
	CountUnread(ctx context.Context, conversationID, readerID int64) (int64, error)
}

// PostStore is the persistence view of posts, likes and comments
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) (int64, error)
	GetPostByID(ctx context.Context, postID, viewerID int64) (*models.Post, error)
	DeletePost(ctx context.Context, postID int64) error
	GetPostAuthorByImagePath(ctx context.Context, imagePath string) (int64, error)
	GetFeed(ctx context.Context, viewerID, beforeID int64, limit int) ([]*models.Post, error)
	ListUserPosts(ctx context.Context, authorID, viewerID, beforeID int64, limit int) ([]*models.Post, error)
	LikePost(ctx context.Context, postID, userID int64) error
	UnlikePost(ctx context.Context, postID, userID int64) error
	CountLikes(ctx context.Context, postID int64) (int64, error)
	AddComment(ctx context.Context, comment *models.PostComment) (int64, error)
	GetCommentByID(ctx context.Context, commentID int64) (*models.PostComment, error)
	ListComments(ctx context.Context, postID int64) ([]*models.PostComment, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

// SettingsStore is the persistence view of user settings
type SettingsStore interface {
	GetOrCreate(ctx context.Context, userID int64) (*models.UserSettings, error)
	GetVisibility(ctx context.Context, userID int64) (models.ProfileVisibility, error)
	Update(ctx context.Context, userID int64, visibility *models.ProfileVisibility, notifyFriendRequests, notifyMessages, notifyPostActivity *bool, theme *models.Theme) error
}

// MessageBroadcaster pushes a stored message to connected websocket clients
type MessageBroadcaster interface {
	BroadcastToConversation(message *websocket.Message)
}
