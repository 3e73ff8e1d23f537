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
	"github.com/connecthub/manexis/internal/pkg/dberrors"
	"github.com/connecthub/manexis/internal/pkg/logger"
)

// FriendshipRepository handles friendship database operations
type FriendshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFriendshipRepository creates a new FriendshipRepository
func NewFriendshipRepository(db *pgxpool.Pool) *FriendshipRepository {
	return &FriendshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateRequest inserts a new pending friend request from userID to friendID.
// The unique index on the unordered user pair rejects a second row in either
// direction, which closes the race between two simultaneous requests.
func (r *FriendshipRepository) CreateRequest(ctx context.Context, userID, friendID int64) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("friendships").
		Columns("user_id", "friend_id", "status", "created_at", "updated_at").
		Values(userID, friendID, models.FriendshipPending, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create friend request query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrFriendRequestSent
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Int64("friendID", friendID).Msg("Error executing create friend request query")
		return 0, fmt.Errorf("error creating friend request: %w", err)
	}

	return id, nil
}

// GetByID retrieves a friendship row by its ID
func (r *FriendshipRepository) GetByID(ctx context.Context, id int64) (*models.Friendship, error) {
	sql, args, err := r.sb.Select("id", "user_id", "friend_id", "status", "created_at", "updated_at").
		From("friendships").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get friendship query: %w", err)
	}

	var f models.Friendship
	err = r.db.QueryRow(ctx, sql, args...).Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFriendshipNotFound
		}
		logger.Error().Err(err).Int64("friendshipID", id).Msg("Error scanning friendship row")
		return nil, fmt.Errorf("error retrieving friendship: %w", err)
	}

	return &f, nil
}

// GetBetween retrieves the friendship row connecting two users, in either
// direction. Returns apperrors.ErrFriendshipNotFound when none exists.
func (r *FriendshipRepository) GetBetween(ctx context.Context, userA, userB int64) (*models.Friendship, error) {
	query := `
		SELECT id, user_id, friend_id, status, created_at, updated_at
		FROM friendships
		WHERE (user_id = $1 AND friend_id = $2)
		   OR (user_id = $2 AND friend_id = $1)
		LIMIT 1
	`

	var f models.Friendship
	err := r.db.QueryRow(ctx, query, userA, userB).Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFriendshipNotFound
		}
		logger.Error().Err(err).Int64("userA", userA).Int64("userB", userB).Msg("Error scanning friendship row")
		return nil, fmt.Errorf("error retrieving friendship: %w", err)
	}

	return &f, nil
}

// Approve transitions a pending request to APPROVED
func (r *FriendshipRepository) Approve(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("friendships").
		Set("status", models.FriendshipApproved).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": models.FriendshipPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approve friendship query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("friendshipID", id).Msg("Error executing approve friendship query")
		return fmt.Errorf("error approving friendship: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFriendshipNotFound
	}

	return nil
}

// Delete removes a friendship row. Used for declining, cancelling and
// unfriending alike.
func (r *FriendshipRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("friendships").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete friendship query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("friendshipID", id).Msg("Error executing delete friendship query")
		return fmt.Errorf("error deleting friendship: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFriendshipNotFound
	}

	return nil
}

// AreFriends reports whether two users have an APPROVED friendship
func (r *FriendshipRepository) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	query := `
		SELECT 1
		FROM friendships
		WHERE status = $1
		  AND ((user_id = $2 AND friend_id = $3) OR (user_id = $3 AND friend_id = $2))
		LIMIT 1
	`

	var one int
	err := r.db.QueryRow(ctx, query, models.FriendshipApproved, userA, userB).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking friendship: %w", err)
	}

	return true, nil
}

// GetFriendIDs returns the IDs of every approved friend of a user
func (r *FriendshipRepository) GetFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT CASE WHEN user_id = $1 THEN friend_id ELSE user_id END
		FROM friendships
		WHERE status = $2 AND (user_id = $1 OR friend_id = $1)
	`

	rows, err := r.db.Query(ctx, query, userID, models.FriendshipApproved)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing friend ids query")
		return nil, fmt.Errorf("error retrieving friend ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning friend id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friend ids: %w", err)
	}

	return ids, nil
}

const friendshipWithUserSelect = `
	SELECT f.id, f.user_id, f.friend_id, f.status, f.created_at, f.updated_at,
	       u.id, u.first_name, u.last_name, u.email, u.status,
	       u.profile_photo, u.cover_photo, u.bio, u.location, u.website
`

func scanFriendshipWithUser(rows pgx.Rows) (*models.Friendship, error) {
	var f models.Friendship
	var u models.User
	err := rows.Scan(
		&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt,
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Status,
		&u.ProfilePhoto, &u.CoverPhoto, &u.Bio, &u.Location, &u.Website,
	)
	if err != nil {
		return nil, err
	}
	f.Friend = &u
	return &f, nil
}

// ListFriends returns the approved friendships of a user with the friend's
// profile preloaded
func (r *FriendshipRepository) ListFriends(ctx context.Context, userID int64) ([]*models.Friendship, error) {
	query := friendshipWithUserSelect + `
		FROM friendships f
		JOIN users u ON u.id = CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
		WHERE f.status = $2 AND (f.user_id = $1 OR f.friend_id = $1)
		ORDER BY u.first_name ASC, u.last_name ASC, u.id ASC
	`

	return r.queryFriendships(ctx, query, userID, models.FriendshipApproved)
}

// ListPendingReceived returns requests awaiting this user's answer
func (r *FriendshipRepository) ListPendingReceived(ctx context.Context, userID int64) ([]*models.Friendship, error) {
	query := friendshipWithUserSelect + `
		FROM friendships f
		JOIN users u ON u.id = f.user_id
		WHERE f.status = $2 AND f.friend_id = $1
		ORDER BY f.created_at DESC
	`

	return r.queryFriendships(ctx, query, userID, models.FriendshipPending)
}

// ListPendingSent returns requests this user sent that are still unanswered
func (r *FriendshipRepository) ListPendingSent(ctx context.Context, userID int64) ([]*models.Friendship, error) {
	query := friendshipWithUserSelect + `
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.status = $2 AND f.user_id = $1
		ORDER BY f.created_at DESC
	`

	return r.queryFriendships(ctx, query, userID, models.FriendshipPending)
}

func (r *FriendshipRepository) queryFriendships(ctx context.Context, query string, args ...interface{}) ([]*models.Friendship, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing friendship list query")
		return nil, fmt.Errorf("error listing friendships: %w", err)
	}
	defer rows.Close()

	var friendships []*models.Friendship
	for rows.Next() {
		f, err := scanFriendshipWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning friendship row: %w", err)
		}
		friendships = append(friendships, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friendship rows: %w", err)
	}

	return friendships, nil
}

// GetRelationships resolves the friendship state between one user and a set
// of other users in a single query. Missing IDs have no relationship.
func (r *FriendshipRepository) GetRelationships(ctx context.Context, userID int64, otherIDs []int64) (map[int64]*models.Friendship, error) {
	result := make(map[int64]*models.Friendship, len(otherIDs))
	if len(otherIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, user_id, friend_id, status, created_at, updated_at
		FROM friendships
		WHERE (user_id = $1 AND friend_id = ANY($2))
		   OR (friend_id = $1 AND user_id = ANY($2))
	`

	rows, err := r.db.Query(ctx, query, userID, otherIDs)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing relationships query")
		return nil, fmt.Errorf("error retrieving relationships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f models.Friendship
		if err := rows.Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning relationship row: %w", err)
		}
		result[f.OtherSide(userID)] = &f
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating relationship rows: %w", err)
	}

	return result, nil
}
