package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/pkg/dberrors"
	"github.com/connecthub/manexis/internal/pkg/logger"

	"github.com/connecthub/manexis/internal/pkg/apperrors"
)

// MessageRepository handles message database operations
type MessageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateMessage inserts a new message and fills in its ID and timestamp
func (r *MessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("messages").
		Columns("conversation_id", "sender_id", "message", "is_read", "created_at").
		Values(message.ConversationID, message.SenderID, message.Message, false, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create message query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&message.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrConversationNotFound
		}
		logger.Error().Err(err).Int64("conversationID", message.ConversationID).Msg("Error executing create message query")
		return fmt.Errorf("error creating message: %w", err)
	}

	message.IsRead = false
	message.CreatedAt = now
	return nil
}

// GetMessages returns messages of a conversation ordered by ID ascending.
// afterID > 0 returns only newer messages (polling), beforeID > 0 only older
// ones (history scrollback). Both zero returns the latest page.
func (r *MessageRepository) GetMessages(ctx context.Context, conversationID, afterID, beforeID int64, limit int) ([]*models.Message, error) {
	query := r.sb.Select("id", "conversation_id", "sender_id", "message", "is_read", "created_at").
		From("messages").
		Where(squirrel.Eq{"conversation_id": conversationID}).
		Limit(uint64(limit))

	switch {
	case afterID > 0:
		query = query.Where(squirrel.Gt{"id": afterID}).OrderBy("id ASC")
	case beforeID > 0:
		query = query.Where(squirrel.Lt{"id": beforeID}).OrderBy("id DESC")
	default:
		query = query.OrderBy("id DESC")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get messages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("conversationID", conversationID).Msg("Error executing get messages query")
		return nil, fmt.Errorf("error retrieving messages: %w", err)
	}
	defer rows.Close()

	messages, err := collectMessages(rows)
	if err != nil {
		return nil, err
	}

	// Descending pages are reversed so callers always see ascending order
	if afterID == 0 {
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}

	return messages, nil
}

func collectMessages(rows pgx.Rows) ([]*models.Message, error) {
	var messages []*models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}

// MarkMessagesRead marks every unread message not sent by readerID as read.
// Re-running it changes nothing.
func (r *MessageRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID int64) (int64, error) {
	sql, args, err := r.sb.Update("messages").
		Set("is_read", true).
		Where(squirrel.Eq{"conversation_id": conversationID, "is_read": false}).
		Where(squirrel.NotEq{"sender_id": readerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build mark read query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("conversationID", conversationID).Msg("Error executing mark read query")
		return 0, fmt.Errorf("error marking messages read: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// CountUnread returns how many messages in a conversation await readerID
func (r *MessageRepository) CountUnread(ctx context.Context, conversationID, readerID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("messages").
		Where(squirrel.Eq{"conversation_id": conversationID, "is_read": false}).
		Where(squirrel.NotEq{"sender_id": readerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count unread query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unread messages: %w", err)
	}

	return count, nil
}
