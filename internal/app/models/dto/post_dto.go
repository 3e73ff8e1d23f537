package dto

import (
	"time"

	"github.com/connecthub/manexis/internal/app/models"
)

// CreatePostRequest is bound from multipart form fields; the optional image
// part is read separately by the controller
type CreatePostRequest struct {
	Content      string `form:"content" binding:"required,max=500"`
	ImageCaption string `form:"imageCaption" binding:"omitempty,max=255"`
}

// PostResponse is one post as rendered in the feed
type PostResponse struct {
	ID           int64     `json:"id"`
	Author       *PublicProfile `json:"author,omitempty"`
	Content      string    `json:"content"`
	ImagePath    *string   `json:"imagePath,omitempty"`
	ImageCaption *string   `json:"imageCaption,omitempty"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	LikedByMe    bool      `json:"likedByMe"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FeedResponse is a page of the news feed; NextCursor is the id to pass as
// `before` to fetch the following page, zero when exhausted
type FeedResponse struct {
	Posts      []PostResponse `json:"posts"`
	NextCursor int64          `json:"nextCursor,omitempty"`
}

// AddCommentRequest adds a comment to a post
type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=500"`
}

// CommentResponse is one comment on a post
type CommentResponse struct {
	ID        int64          `json:"id"`
	PostID    int64          `json:"postId"`
	Author    *PublicProfile `json:"author,omitempty"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"createdAt"`
}

// LikeStatusResponse reports the like state after a like/unlike call
type LikeStatusResponse struct {
	PostID    int64 `json:"postId"`
	Liked     bool  `json:"liked"`
	LikeCount int   `json:"likeCount"`
}

// FromPost maps a post model (with aggregates populated) to the response
func FromPost(p *models.Post) PostResponse {
	resp := PostResponse{
		ID:           p.ID,
		Content:      p.Content,
		ImagePath:    p.ImagePath,
		ImageCaption: p.ImageCaption,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		LikedByMe:    p.LikedByMe,
		CreatedAt:    p.CreatedAt,
	}
	if p.Author != nil {
		resp.Author = FromUserPublic(p.Author)
	}
	return resp
}

// FromComment maps a comment model to the response
func FromComment(c *models.PostComment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt,
	}
	if c.Author != nil {
		resp.Author = FromUserPublic(c.Author)
	}
	return resp
}
