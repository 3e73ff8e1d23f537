package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/app/models/dto"
)

func TestRelationshipState(t *testing.T) {
	tests := []struct {
		name       string
		viewerID   int64
		otherID    int64
		friendship *models.Friendship
		want       dto.RelationshipState
	}{
		{
			name:     "self",
			viewerID: 1, otherID: 1,
			want: dto.RelationshipSelf,
		},
		{
			name:     "no friendship row",
			viewerID: 1, otherID: 2,
			want: dto.RelationshipNone,
		},
		{
			name:     "approved",
			viewerID: 1, otherID: 2,
			friendship: &models.Friendship{UserID: 2, FriendID: 1, Status: models.FriendshipApproved},
			want:       dto.RelationshipFriends,
		},
		{
			name:     "viewer sent the pending request",
			viewerID: 1, otherID: 2,
			friendship: &models.Friendship{UserID: 1, FriendID: 2, Status: models.FriendshipPending},
			want:       dto.RelationshipPendingSent,
		},
		{
			name:     "viewer received the pending request",
			viewerID: 2, otherID: 1,
			friendship: &models.Friendship{UserID: 1, FriendID: 2, Status: models.FriendshipPending},
			want:       dto.RelationshipPendingReceived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := relationshipState(tt.viewerID, tt.otherID, tt.friendship)
			assert.Equal(t, tt.want, got)
		})
	}
}
