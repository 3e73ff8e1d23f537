package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
)

func TestPostServiceGetPostVisibility(t *testing.T) {
	const authorID = int64(2)

	tests := []struct {
		name     string
		viewerID int64
		friends  bool
		wantErr  error
	}{
		{name: "author sees own post", viewerID: authorID},
		{name: "approved friend sees the post", viewerID: 1, friends: true},
		{name: "stranger is rejected", viewerID: 3, friends: false, wantErr: apperrors.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := &stubPostStore{
				getPostByID: func(ctx context.Context, postID, viewerID int64) (*models.Post, error) {
					return &models.Post{ID: postID, UserID: authorID, Content: "hello"}, nil
				},
			}
			friendshipRepo := &stubFriendshipStore{
				areFriends: func(ctx context.Context, userA, userB int64) (bool, error) {
					assert.Equal(t, tt.viewerID, userA)
					assert.Equal(t, authorID, userB)
					return tt.friends, nil
				},
			}

			svc := NewPostService(postRepo, friendshipRepo, nil, nil, zerolog.Nop())

			post, err := svc.GetPost(context.Background(), tt.viewerID, 7)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), post.ID)
		})
	}
}
