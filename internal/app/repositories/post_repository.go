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

// PostRepository handles post, like and comment database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// postSelect loads a post together with its author, aggregate counts and
// whether the viewing user has liked it. $1 is always the viewer ID.
const postSelect = `
	SELECT p.id, p.user_id, p.content, p.image_path, p.image_caption, p.created_at,
	       u.id, u.first_name, u.last_name, u.email, u.status,
	       u.profile_photo, u.cover_photo, u.bio, u.location, u.website,
	       (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS like_count,
	       (SELECT COUNT(*) FROM post_comments pc WHERE pc.post_id = p.id) AS comment_count,
	       EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = $1) AS liked_by_me
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	var u models.User
	err := row.Scan(
		&p.ID, &p.UserID, &p.Content, &p.ImagePath, &p.ImageCaption, &p.CreatedAt,
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Status,
		&u.ProfilePhoto, &u.CoverPhoto, &u.Bio, &u.Location, &u.Website,
		&p.LikeCount, &p.CommentCount, &p.LikedByMe,
	)
	if err != nil {
		return nil, err
	}
	p.Author = &u
	return &p, nil
}

// CreatePost inserts a new post and returns its generated ID
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	sql, args, err := r.sb.Insert("posts").
		Columns("user_id", "content", "image_path", "image_caption", "created_at").
		Values(post.UserID, post.Content, post.ImagePath, post.ImageCaption, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create post query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("userID", post.UserID).Msg("Error executing create post query")
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return id, nil
}

// GetPostByID retrieves a single post with author and counts as seen by viewerID
func (r *PostRepository) GetPostByID(ctx context.Context, postID, viewerID int64) (*models.Post, error) {
	query := postSelect + ` WHERE p.id = $2`

	post, err := scanPost(r.db.QueryRow(ctx, query, viewerID, postID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", postID).Msg("Error scanning post row")
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}

	return post, nil
}

// DeletePost removes a post. Likes and comments cascade via foreign keys.
func (r *PostRepository) DeletePost(ctx context.Context, postID int64) error {
	sql, args, err := r.sb.Delete("posts").
		Where(squirrel.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete post query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error executing delete post query")
		return fmt.Errorf("error deleting post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}

	return nil
}

// GetPostAuthorByImagePath resolves the author of a post by its stored image path
func (r *PostRepository) GetPostAuthorByImagePath(ctx context.Context, imagePath string) (int64, error) {
	sql, args, err := r.sb.Select("user_id").
		From("posts").
		Where(squirrel.Eq{"image_path": imagePath}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build post image owner query: %w", err)
	}

	var authorID int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Str("imagePath", imagePath).Msg("Error executing post image owner query")
		return 0, fmt.Errorf("error finding post image owner: %w", err)
	}

	return authorID, nil
}

// GetFeed returns the newest posts authored by the viewer or an approved
// friend. beforeID = 0 starts from the top; otherwise only posts with a
// smaller ID are returned.
func (r *PostRepository) GetFeed(ctx context.Context, viewerID, beforeID int64, limit int) ([]*models.Post, error) {
	query := postSelect + `
		WHERE (p.user_id = $1 OR p.user_id IN (
			SELECT CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
			FROM friendships f
			WHERE f.status = $2 AND (f.user_id = $1 OR f.friend_id = $1)
		))
		AND ($3 = 0 OR p.id < $3)
		ORDER BY p.id DESC
		LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, viewerID, models.FriendshipApproved, beforeID, limit)
	if err != nil {
		logger.Error().Err(err).Int64("viewerID", viewerID).Msg("Error executing feed query")
		return nil, fmt.Errorf("error retrieving feed: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// ListUserPosts returns the posts of a single author, newest first
func (r *PostRepository) ListUserPosts(ctx context.Context, authorID, viewerID, beforeID int64, limit int) ([]*models.Post, error) {
	query := postSelect + `
		WHERE p.user_id = $2
		AND ($3 = 0 OR p.id < $3)
		ORDER BY p.id DESC
		LIMIT $4
	`

	rows, err := r.db.Query(ctx, query, viewerID, authorID, beforeID, limit)
	if err != nil {
		logger.Error().Err(err).Int64("authorID", authorID).Msg("Error executing user posts query")
		return nil, fmt.Errorf("error retrieving user posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func collectPosts(rows pgx.Rows) ([]*models.Post, error) {
	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

// LikePost records a like. Liking an already-liked post is a no-op, the
// unique constraint on (post_id, user_id) makes the operation idempotent.
func (r *PostRepository) LikePost(ctx context.Context, postID, userID int64) error {
	query := `
		INSERT INTO post_likes (post_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, postID, userID, time.Now())
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", postID).Int64("userID", userID).Msg("Error executing like post query")
		return fmt.Errorf("error liking post: %w", err)
	}

	return nil
}

// UnlikePost removes a like. Removing a non-existent like is a no-op.
func (r *PostRepository) UnlikePost(ctx context.Context, postID, userID int64) error {
	sql, args, err := r.sb.Delete("post_likes").
		Where(squirrel.Eq{"post_id": postID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build unlike post query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Int64("userID", userID).Msg("Error executing unlike post query")
		return fmt.Errorf("error unliking post: %w", err)
	}

	return nil
}

// CountLikes returns the current like count of a post
func (r *PostRepository) CountLikes(ctx context.Context, postID int64) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("post_likes").
		Where(squirrel.Eq{"post_id": postID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count likes query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting likes: %w", err)
	}

	return count, nil
}

// AddComment inserts a comment and returns its generated ID
func (r *PostRepository) AddComment(ctx context.Context, comment *models.PostComment) (int64, error) {
	sql, args, err := r.sb.Insert("post_comments").
		Columns("post_id", "user_id", "comment", "created_at").
		Values(comment.PostID, comment.UserID, comment.Comment, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build add comment query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrPostNotFound
		}
		logger.Error().Err(err).Int64("postID", comment.PostID).Msg("Error executing add comment query")
		return 0, fmt.Errorf("error adding comment: %w", err)
	}

	return id, nil
}

// GetCommentByID retrieves a single comment
func (r *PostRepository) GetCommentByID(ctx context.Context, commentID int64) (*models.PostComment, error) {
	sql, args, err := r.sb.Select("id", "post_id", "user_id", "comment", "created_at").
		From("post_comments").
		Where(squirrel.Eq{"id": commentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get comment query: %w", err)
	}

	var c models.PostComment
	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.PostID, &c.UserID, &c.Comment, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}

	return &c, nil
}

// ListComments returns the comments of a post, oldest first, with authors
func (r *PostRepository) ListComments(ctx context.Context, postID int64) ([]*models.PostComment, error) {
	query := `
		SELECT c.id, c.post_id, c.user_id, c.comment, c.created_at,
		       u.id, u.first_name, u.last_name, u.email, u.status,
		       u.profile_photo, u.cover_photo, u.bio, u.location, u.website
		FROM post_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		logger.Error().Err(err).Int64("postID", postID).Msg("Error executing list comments query")
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.PostComment
	for rows.Next() {
		var c models.PostComment
		var u models.User
		err := rows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.Comment, &c.CreatedAt,
			&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Status,
			&u.ProfilePhoto, &u.CoverPhoto, &u.Bio, &u.Location, &u.Website,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		c.Author = &u
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// DeleteComment removes a comment
func (r *PostRepository) DeleteComment(ctx context.Context, commentID int64) error {
	sql, args, err := r.sb.Delete("post_comments").
		Where(squirrel.Eq{"id": commentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete comment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", commentID).Msg("Error executing delete comment query")
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}
