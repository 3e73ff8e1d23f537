package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
	"github.com/connecthub/manexis/internal/pkg/dberrors"
	"github.com/connecthub/manexis/internal/pkg/logger"
)

// userColumns is the canonical column list scanned into models.User
var userColumns = []string{
	"id", "first_name", "last_name", "email", "password", "status",
	"profile_photo", "cover_photo", "bio", "location", "website",
	"created_at", "updated_at", "last_login_at",
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Password, &user.Status,
		&user.ProfilePhoto, &user.CoverPhoto, &user.Bio, &user.Location, &user.Website,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user and returns its generated ID
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("users").
		Columns("first_name", "last_name", "email", "password", "status", "created_at", "updated_at").
		Values(user.FirstName, user.LastName, strings.ToLower(user.Email), user.Password, user.Status, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetUserByID retrieves a user by its ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email (case-insensitive)
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": strings.ToLower(email)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// EmailExists checks whether an account with the given email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"email": strings.ToLower(email)}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return true, nil
}

// UpdateUserStatus sets the account status of a user
func (r *UserRepository) UpdateUserStatus(ctx context.Context, userID int64, status models.UserStatus) error {
	sql, args, err := r.sb.Update("users").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update status query")
		return fmt.Errorf("error updating user status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces the user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	sql, args, err := r.sb.Update("users").
		Set("password", passwordHash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update password query")
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin records the time of the user's latest successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update last login query")
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}

// UpdateProfile applies a partial profile update. Nil fields are left untouched.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, bio, location, website *string) error {
	update := r.sb.Update("users").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID})

	if firstName != nil {
		update = update.Set("first_name", *firstName)
	}
	if lastName != nil {
		update = update.Set("last_name", *lastName)
	}
	if bio != nil {
		update = update.Set("bio", *bio)
	}
	if location != nil {
		update = update.Set("location", *location)
	}
	if website != nil {
		update = update.Set("website", *website)
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateProfilePhoto sets the stored path of the user's profile photo
func (r *UserRepository) UpdateProfilePhoto(ctx context.Context, userID int64, photoPath string) error {
	return r.updatePhotoColumn(ctx, userID, "profile_photo", photoPath)
}

// UpdateCoverPhoto sets the stored path of the user's cover photo
func (r *UserRepository) UpdateCoverPhoto(ctx context.Context, userID int64, photoPath string) error {
	return r.updatePhotoColumn(ctx, userID, "cover_photo", photoPath)
}

// GetUserIDByPhotoPath resolves the owner of a stored profile or cover photo
func (r *UserRepository) GetUserIDByPhotoPath(ctx context.Context, photoPath string) (int64, error) {
	sql, args, err := r.sb.Select("id").
		From("users").
		Where(squirrel.Or{
			squirrel.Eq{"profile_photo": photoPath},
			squirrel.Eq{"cover_photo": photoPath},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build photo owner query: %w", err)
	}

	var userID int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("photoPath", photoPath).Msg("Error executing photo owner query")
		return 0, fmt.Errorf("error finding photo owner: %w", err)
	}

	return userID, nil
}

func (r *UserRepository) updatePhotoColumn(ctx context.Context, userID int64, column, photoPath string) error {
	sql, args, err := r.sb.Update("users").
		Set(column, photoPath).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update %s query: %w", column, err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Str("column", column).Msg("Error executing update photo query")
		return fmt.Errorf("error updating %s: %w", column, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SearchUsers finds verified users whose name or email matches the query term.
// The searching user is excluded from the results.
func (r *UserRepository) SearchUsers(ctx context.Context, searcherID int64, term string, offset uint64, limit int) ([]*models.User, int64, error) {
	pattern := "%" + term + "%"
	matcher := squirrel.Or{
		squirrel.ILike{"first_name": pattern},
		squirrel.ILike{"last_name": pattern},
		squirrel.ILike{"email": pattern},
		squirrel.ILike{"first_name || ' ' || last_name": pattern},
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"status": models.StatusVerified}).
		Where(squirrel.NotEq{"id": searcherID}).
		Where(matcher).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build search count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Str("term", term).Msg("Error counting user search results")
		return nil, 0, fmt.Errorf("error counting search results: %w", err)
	}

	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"status": models.StatusVerified}).
		Where(squirrel.NotEq{"id": searcherID}).
		Where(matcher).
		OrderBy("first_name ASC", "last_name ASC", "id ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("term", term).Msg("Error executing user search query")
		return nil, 0, fmt.Errorf("error searching users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning search result: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating search results: %w", err)
	}

	return users, total, nil
}

// GetUsersByIDs loads multiple users in a single query, keyed by ID
func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	result := make(map[int64]*models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get users by ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get users by ids query")
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		result[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return result, nil
}
