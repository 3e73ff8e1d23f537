package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
	"github.com/connecthub/manexis/internal/pkg/filestorage"
)

// FeedPageSize is the number of posts returned per feed page
const FeedPageSize = 50

// PostService handles posts, the news feed, likes and comments
type PostService struct {
	postRepo       PostStore
	friendshipRepo FriendshipStore
	userRepo       UserStore
	storage        filestorage.FileStorage
	logger         zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo PostStore,
	friendshipRepo FriendshipStore,
	userRepo UserStore,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *PostService {
	return &PostService{
		postRepo:       postRepo,
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		storage:        storage,
		logger:         logger,
	}
}

// CreatePost publishes a new post with an optional image attachment
func (s *PostService) CreatePost(ctx context.Context, userID int64, req *dto.CreatePostRequest, image *multipart.FileHeader) (*dto.PostResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("post content cannot be empty")
	}
	if len(content) > models.MaxPostContentLength {
		return nil, apperrors.ErrContentTooLong
	}

	post := &models.Post{
		UserID:  userID,
		Content: content,
	}

	if image != nil {
		info, err := s.storage.SaveImage(image, filestorage.PostImageDir)
		if err != nil {
			return nil, err
		}
		post.ImagePath = &info.Path
		if req.ImageCaption != "" {
			caption := req.ImageCaption
			post.ImageCaption = &caption
		}
	}

	id, err := s.postRepo.CreatePost(ctx, post)
	if err != nil {
		if post.ImagePath != nil {
			_ = s.storage.DeleteFile(*post.ImagePath)
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Int64("postID", id).Msg("Post created")

	created, err := s.postRepo.GetPostByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromPost(created)
	return &resp, nil
}

// canViewPost: a post is visible to its author and the author's approved friends
func (s *PostService) canViewPost(ctx context.Context, viewerID int64, post *models.Post) (bool, error) {
	if post.UserID == viewerID {
		return true, nil
	}
	return s.friendshipRepo.AreFriends(ctx, viewerID, post.UserID)
}

func (s *PostService) getVisiblePost(ctx context.Context, viewerID, postID int64) (*models.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	visible, err := s.canViewPost(ctx, viewerID, post)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.ErrPermissionDenied
	}

	return post, nil
}

// GetPost returns a single post if the viewer may see it
func (s *PostService) GetPost(ctx context.Context, viewerID, postID int64) (*dto.PostResponse, error) {
	post, err := s.getVisiblePost(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromPost(post)
	return &resp, nil
}

// DeletePost removes a post. Only the author may delete it.
func (s *PostService) DeletePost(ctx context.Context, userID, postID int64) error {
	post, err := s.postRepo.GetPostByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		return err
	}

	if post.ImagePath != nil {
		if delErr := s.storage.DeleteFile(*post.ImagePath); delErr != nil && !errors.Is(delErr, apperrors.ErrFileNotFound) {
			s.logger.Warn().Err(delErr).Str("path", *post.ImagePath).Msg("Failed to delete post image")
		}
	}

	s.logger.Info().Int64("userID", userID).Int64("postID", postID).Msg("Post deleted")
	return nil
}

// GetFeed returns a page of the viewer's news feed: their own posts plus
// those of approved friends, newest first
func (s *PostService) GetFeed(ctx context.Context, viewerID, beforeID int64) (*dto.FeedResponse, error) {
	posts, err := s.postRepo.GetFeed(ctx, viewerID, beforeID, FeedPageSize)
	if err != nil {
		return nil, err
	}
	return buildFeedResponse(posts), nil
}

// ListUserPosts returns one author's posts if the viewer may see them
func (s *PostService) ListUserPosts(ctx context.Context, viewerID, authorID, beforeID int64) (*dto.FeedResponse, error) {
	if viewerID != authorID {
		friends, err := s.friendshipRepo.AreFriends(ctx, viewerID, authorID)
		if err != nil {
			return nil, err
		}
		if !friends {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	posts, err := s.postRepo.ListUserPosts(ctx, authorID, viewerID, beforeID, FeedPageSize)
	if err != nil {
		return nil, err
	}
	return buildFeedResponse(posts), nil
}

func buildFeedResponse(posts []*models.Post) *dto.FeedResponse {
	resp := &dto.FeedResponse{Posts: make([]dto.PostResponse, 0, len(posts))}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, dto.FromPost(p))
	}
	if len(posts) == FeedPageSize {
		resp.NextCursor = posts[len(posts)-1].ID
	}
	return resp
}

// LikePost records a like. Liking twice is a no-op.
func (s *PostService) LikePost(ctx context.Context, userID, postID int64) (*dto.LikeStatusResponse, error) {
	if _, err := s.getVisiblePost(ctx, userID, postID); err != nil {
		return nil, err
	}

	if err := s.postRepo.LikePost(ctx, postID, userID); err != nil {
		return nil, err
	}

	return s.likeStatus(ctx, postID, true)
}

// UnlikePost removes a like. Unliking a post that was never liked is a no-op.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID int64) (*dto.LikeStatusResponse, error) {
	if _, err := s.getVisiblePost(ctx, userID, postID); err != nil {
		return nil, err
	}

	if err := s.postRepo.UnlikePost(ctx, postID, userID); err != nil {
		return nil, err
	}

	return s.likeStatus(ctx, postID, false)
}

func (s *PostService) likeStatus(ctx context.Context, postID int64, liked bool) (*dto.LikeStatusResponse, error) {
	count, err := s.postRepo.CountLikes(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeStatusResponse{
		PostID:    postID,
		Liked:     liked,
		LikeCount: int(count),
	}, nil
}

// AddComment adds a comment to a post the viewer may see
func (s *PostService) AddComment(ctx context.Context, userID, postID int64, comment string) (*dto.CommentResponse, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, apperrors.NewBadRequestError("comment cannot be empty")
	}

	if _, err := s.getVisiblePost(ctx, userID, postID); err != nil {
		return nil, err
	}

	c := &models.PostComment{
		PostID:  postID,
		UserID:  userID,
		Comment: comment,
	}
	id, err := s.postRepo.AddComment(ctx, c)
	if err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	created.Author = author

	resp := dto.FromComment(created)
	return &resp, nil
}

// ListComments returns the comments of a post the viewer may see
func (s *PostService) ListComments(ctx context.Context, viewerID, postID int64) ([]dto.CommentResponse, error) {
	if _, err := s.getVisiblePost(ctx, viewerID, postID); err != nil {
		return nil, err
	}

	comments, err := s.postRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, dto.FromComment(c))
	}
	return responses, nil
}

// DeleteComment removes a comment. The comment author and the post author
// may both delete it.
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID int64) error {
	comment, err := s.postRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return apperrors.ErrCommentNotFound
	}

	post, err := s.postRepo.GetPostByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if comment.UserID != userID && post.UserID != userID {
		return apperrors.ErrPermissionDenied
	}

	return s.postRepo.DeleteComment(ctx, commentID)
}
