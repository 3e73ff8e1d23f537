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

func TestFriendServiceSendRequest(t *testing.T) {
	const callerID, otherID = int64(1), int64(2)

	verifiedUser := &models.User{ID: otherID, Status: models.StatusVerified}

	tests := []struct {
		name        string
		friendID    int64
		target      *models.User
		targetErr   error
		existing    *models.Friendship
		wantErr     error
		wantCreated bool
	}{
		{
			name:     "cannot friend yourself",
			friendID: callerID,
			wantErr:  apperrors.ErrCannotFriendSelf,
		},
		{
			name:      "unknown target",
			friendID:  otherID,
			targetErr: apperrors.ErrUserNotFound,
			wantErr:   apperrors.ErrUserNotFound,
		},
		{
			name:     "unverified target reads as unknown",
			friendID: otherID,
			target:   &models.User{ID: otherID, Status: models.StatusNotVerified},
			wantErr:  apperrors.ErrUserNotFound,
		},
		{
			name:     "already friends",
			friendID: otherID,
			target:   verifiedUser,
			existing: &models.Friendship{ID: 9, UserID: callerID, FriendID: otherID, Status: models.FriendshipApproved},
			wantErr:  apperrors.ErrAlreadyFriends,
		},
		{
			name:     "request already sent by caller",
			friendID: otherID,
			target:   verifiedUser,
			existing: &models.Friendship{ID: 9, UserID: callerID, FriendID: otherID, Status: models.FriendshipPending},
			wantErr:  apperrors.ErrFriendRequestSent,
		},
		{
			name:     "request already received from target",
			friendID: otherID,
			target:   verifiedUser,
			existing: &models.Friendship{ID: 9, UserID: otherID, FriendID: callerID, Status: models.FriendshipPending},
			wantErr:  apperrors.ErrFriendRequestReceived,
		},
		{
			name:        "no edge yet creates a pending request",
			friendID:    otherID,
			target:      verifiedUser,
			wantCreated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false

			userRepo := &stubUserStore{
				getUserByID: func(ctx context.Context, id int64) (*models.User, error) {
					require.Equal(t, tt.friendID, id)
					return tt.target, tt.targetErr
				},
			}
			friendshipRepo := &stubFriendshipStore{
				getBetween: func(ctx context.Context, userA, userB int64) (*models.Friendship, error) {
					if tt.existing == nil {
						return nil, apperrors.ErrFriendshipNotFound
					}
					return tt.existing, nil
				},
				createRequest: func(ctx context.Context, userID, friendID int64) (int64, error) {
					created = true
					assert.Equal(t, callerID, userID)
					assert.Equal(t, tt.friendID, friendID)
					return 1, nil
				},
			}

			svc := NewFriendService(friendshipRepo, userRepo, zerolog.Nop())
			err := svc.SendRequest(context.Background(), callerID, tt.friendID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCreated, created)
		})
	}
}
