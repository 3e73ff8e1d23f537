package models

import "time"

// MaxPostContentLength caps post text, matching the posts.content column
const MaxPostContentLength = 500

// Post defines the post model based on the 'posts' table.
// Visible to the author and the author's approved friends only.
type Post struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	Content      string    `json:"content" db:"content"`
	ImagePath    *string   `json:"imagePath,omitempty" db:"image_path"`
	ImageCaption *string   `json:"imageCaption,omitempty" db:"image_caption"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Related entities and aggregates, populated by feed queries
	Author       *User `json:"author,omitempty"`
	LikeCount    int   `json:"likeCount"`
	CommentCount int   `json:"commentCount"`
	LikedByMe    bool  `json:"likedByMe"`
}

// PostLike is a join row in 'post_likes'; (post_id, user_id) is unique
type PostLike struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PostComment is a row in 'post_comments'
type PostComment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Author *User `json:"author,omitempty"`
}
