package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	SessionRepository            *SessionRepository
	VerificationTokenRepository  *VerificationTokenRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
	FriendshipRepository         *FriendshipRepository
	PostRepository               *PostRepository
	ConversationRepository       *ConversationRepository
	MessageRepository            *MessageRepository
	SettingsRepository           *SettingsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		SessionRepository:            NewSessionRepository(db),
		VerificationTokenRepository:  NewVerificationTokenRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
		FriendshipRepository:         NewFriendshipRepository(db),
		PostRepository:               NewPostRepository(db),
		ConversationRepository:       NewConversationRepository(db),
		MessageRepository:            NewMessageRepository(db),
		SettingsRepository:           NewSettingsRepository(db),
	}
}
