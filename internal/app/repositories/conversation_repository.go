package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
	"github.com/connecthub/manexis/internal/pkg/logger"
)

// ConversationRepository handles conversation database operations
type ConversationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetOrCreate returns the conversation between two users, creating it on
// first contact. The pair is stored canonically (lower ID first) and the
// unique constraint plus ON CONFLICT DO NOTHING make concurrent first
// messages converge on a single row.
func (r *ConversationRepository) GetOrCreate(ctx context.Context, userA, userB int64) (*models.Conversation, error) {
	user1, user2 := models.CanonicalPair(userA, userB)

	insert := `
		INSERT INTO conversations (user1_id, user2_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insert, user1, user2, time.Now()); err != nil {
		logger.Error().Err(err).Int64("user1", user1).Int64("user2", user2).Msg("Error executing create conversation query")
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}

	query := `
		SELECT id, user1_id, user2_id, created_at, updated_at
		FROM conversations
		WHERE user1_id = $1 AND user2_id = $2
	`

	var c models.Conversation
	err := r.db.QueryRow(ctx, query, user1, user2).Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("user1", user1).Int64("user2", user2).Msg("Error scanning conversation row")
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}

	return &c, nil
}

// GetByID retrieves a conversation by its ID
func (r *ConversationRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	sql, args, err := r.sb.Select("id", "user1_id", "user2_id", "created_at", "updated_at").
		From("conversations").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get conversation query: %w", err)
	}

	var c models.Conversation
	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		logger.Error().Err(err).Int64("conversationID", id).Msg("Error scanning conversation row")
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}

	return &c, nil
}

// IsParticipant reports whether a user belongs to a conversation
func (r *ConversationRepository) IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	query := `
		SELECT 1
		FROM conversations
		WHERE id = $1 AND (user1_id = $2 OR user2_id = $2)
	`

	var one int
	err := r.db.QueryRow(ctx, query, conversationID, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking conversation participant: %w", err)
	}

	return true, nil
}

// Touch bumps the conversation's updated_at so it sorts to the top of the
// inbox after a new message
func (r *ConversationRepository) Touch(ctx context.Context, conversationID int64) error {
	sql, args, err := r.sb.Update("conversations").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": conversationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build touch conversation query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("conversationID", conversationID).Msg("Error executing touch conversation query")
		return fmt.Errorf("error updating conversation: %w", err)
	}

	return nil
}

// ListForUser returns the conversations of a user ordered by most recent
// activity, with the peer profile, last message and unread count preloaded.
func (r *ConversationRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	query := `
		SELECT c.id, c.user1_id, c.user2_id, c.created_at, c.updated_at,
		       u.id, u.first_name, u.last_name, u.email, u.status,
		       u.profile_photo, u.cover_photo, u.bio, u.location, u.website,
		       lm.id, lm.sender_id, lm.message, lm.is_read, lm.created_at,
		       (SELECT COUNT(*) FROM messages m
		        WHERE m.conversation_id = c.id AND m.sender_id <> $1 AND m.is_read = FALSE) AS unread_count
		FROM conversations c
		JOIN users u ON u.id = CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END
		LEFT JOIN LATERAL (
			SELECT m.id, m.sender_id, m.message, m.is_read, m.created_at
			FROM messages m
			WHERE m.conversation_id = c.id
			ORDER BY m.id DESC
			LIMIT 1
		) lm ON TRUE
		WHERE c.user1_id = $1 OR c.user2_id = $1
		ORDER BY c.updated_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing list conversations query")
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		var c models.Conversation
		var peer models.User
		var lmID, lmSenderID *int64
		var lmMessage *string
		var lmIsRead *bool
		var lmCreatedAt *time.Time

		err := rows.Scan(
			&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt, &c.UpdatedAt,
			&peer.ID, &peer.FirstName, &peer.LastName, &peer.Email, &peer.Status,
			&peer.ProfilePhoto, &peer.CoverPhoto, &peer.Bio, &peer.Location, &peer.Website,
			&lmID, &lmSenderID, &lmMessage, &lmIsRead, &lmCreatedAt,
			&c.UnreadCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}

		c.Peer = &peer
		if lmID != nil {
			c.LastMessage = &models.Message{
				ID:             *lmID,
				ConversationID: c.ID,
				SenderID:       *lmSenderID,
				Message:        *lmMessage,
				IsRead:         *lmIsRead,
				CreatedAt:      *lmCreatedAt,
			}
		}
		conversations = append(conversations, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", err)
	}

	return conversations, nil
}
