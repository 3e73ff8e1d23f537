package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/connecthub/manexis/internal/pkg/apperrors"
	"github.com/connecthub/manexis/internal/pkg/dberrors"
	"github.com/connecthub/manexis/internal/pkg/logger"
)

// SessionRepository handles login session (refresh token) database operations
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateSession creates a new login session identified by its refresh token
func (r *SessionRepository) CreateSession(ctx context.Context, refreshToken string, userID int64, expiryDate time.Time) error {
	sql, args, err := r.sb.Insert("login_sessions").
		Columns("refresh_token", "user_id", "expiry_date", "is_revoked", "created_at").
		Values(refreshToken, userID, expiryDate, false, time.Now()).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create session SQL")
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "login_sessions_refresh_token_key") {
			// Random token collision, should not happen in practice
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create session query")
		return fmt.Errorf("error creating login session: %w", err)
	}

	return nil
}

// GetSessionByToken retrieves the owner of a refresh token, validating
// revocation and expiry in the process
func (r *SessionRepository) GetSessionByToken(ctx context.Context, refreshToken string) (int64, error) {
	sql, args, err := r.sb.Select("user_id", "expiry_date", "is_revoked").
		From("login_sessions").
		Where(squirrel.Eq{"refresh_token": refreshToken}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get session SQL")
		return 0, fmt.Errorf("failed to build get session query: %w", err)
	}

	var userID int64
	var expiryDate time.Time
	var isRevoked bool

	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID, &expiryDate, &isRevoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning session row")
		return 0, fmt.Errorf("error retrieving login session: %w", err)
	}

	if isRevoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if expiryDate.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}

	return userID, nil
}

// RevokeSession revokes a single login session
func (r *SessionRepository) RevokeSession(ctx context.Context, refreshToken string) error {
	sql, args, err := r.sb.Update("login_sessions").
		Set("is_revoked", true).
		Where(squirrel.Eq{"refresh_token": refreshToken}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke session SQL")
		return fmt.Errorf("failed to build revoke session query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing revoke session query")
		return fmt.Errorf("error revoking login session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// RevokeAllUserSessions revokes every active session of a user.
// Used on logout-everywhere, password reset and account deactivation.
func (r *SessionRepository) RevokeAllUserSessions(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("login_sessions").
		Set("is_revoked", true).
		Where(squirrel.Eq{"user_id": userID, "is_revoked": false}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error building revoke all sessions SQL")
		return fmt.Errorf("failed to build revoke all sessions query: %w", err)
	}

	// No RowsAffected check, a user with no active sessions is fine
	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing revoke all sessions query")
		return fmt.Errorf("error revoking user sessions: %w", err)
	}

	return nil
}

// CleanupExpiredSessions removes expired sessions and revoked sessions
// older than 30 days
func (r *SessionRepository) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	thirtyDaysAgo := time.Now().Add(-30 * 24 * time.Hour)

	sql, args, err := r.sb.Delete("login_sessions").
		Where(squirrel.Or{
			squirrel.Lt{"expiry_date": time.Now()},
			squirrel.And{
				squirrel.Eq{"is_revoked": true},
				squirrel.Lt{"created_at": thirtyDaysAgo},
			},
		}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building cleanup sessions SQL")
		return 0, fmt.Errorf("failed to build cleanup sessions query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing cleanup sessions query")
		return 0, fmt.Errorf("error cleaning up sessions: %w", err)
	}

	deletedCount := cmdTag.RowsAffected()
	logger.Info().Int64("deletedCount", deletedCount).Msg("Cleaned up expired/old revoked sessions")

	return deletedCount, nil
}
