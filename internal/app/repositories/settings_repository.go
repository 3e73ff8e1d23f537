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
	"github.com/connecthub/manexis/internal/pkg/logger"
)

// SettingsRepository handles user settings database operations
type SettingsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetOrCreate returns the settings row of a user, inserting the defaults on
// first access. ON CONFLICT keeps concurrent first reads race-safe.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, userID int64) (*models.UserSettings, error) {
	defaults := models.DefaultSettings(userID)

	insert := `
		INSERT INTO user_settings
			(user_id, profile_visibility, notify_friend_requests, notify_messages,
			 notify_post_activity, theme, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, insert,
		userID, defaults.ProfileVisibility, defaults.NotifyFriendRequests,
		defaults.NotifyMessages, defaults.NotifyPostActivity,
		defaults.Theme, time.Now(),
	)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create settings query")
		return nil, fmt.Errorf("error creating user settings: %w", err)
	}

	query := `
		SELECT user_id, profile_visibility, notify_friend_requests, notify_messages,
		       notify_post_activity, theme, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var s models.UserSettings
	err = r.db.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.ProfileVisibility, &s.NotifyFriendRequests, &s.NotifyMessages,
		&s.NotifyPostActivity, &s.Theme, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning settings row")
		return nil, fmt.Errorf("error retrieving user settings: %w", err)
	}

	return &s, nil
}

// GetVisibility returns the profile visibility of a user, defaulting to
// public when no settings row exists yet
func (r *SettingsRepository) GetVisibility(ctx context.Context, userID int64) (models.ProfileVisibility, error) {
	sql, args, err := r.sb.Select("profile_visibility").
		From("user_settings").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build get visibility query: %w", err)
	}

	var visibility models.ProfileVisibility
	err = r.db.QueryRow(ctx, sql, args...).Scan(&visibility)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.VisibilityPublic, nil
		}
		return "", fmt.Errorf("error retrieving profile visibility: %w", err)
	}

	return visibility, nil
}

// Update applies a partial settings update. Nil fields keep their value.
func (r *SettingsRepository) Update(ctx context.Context, userID int64, visibility *models.ProfileVisibility, notifyFriendRequests, notifyMessages, notifyPostActivity *bool, theme *models.Theme) error {
	update := r.sb.Update("user_settings").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID})

	if visibility != nil {
		update = update.Set("profile_visibility", *visibility)
	}
	if notifyFriendRequests != nil {
		update = update.Set("notify_friend_requests", *notifyFriendRequests)
	}
	if notifyMessages != nil {
		update = update.Set("notify_messages", *notifyMessages)
	}
	if notifyPostActivity != nil {
		update = update.Set("notify_post_activity", *notifyPostActivity)
	}
	if theme != nil {
		update = update.Set("theme", *theme)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update settings query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update settings query")
		return fmt.Errorf("error updating user settings: %w", err)
	}

	return nil
}
