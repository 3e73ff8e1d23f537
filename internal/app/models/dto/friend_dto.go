package dto

import (
	"time"

	"github.com/connecthub/manexis/internal/app/models"
)

// RelationshipState describes the friend-graph edge between two users as seen
// from the requesting side
type RelationshipState string

const (
	RelationshipNone            RelationshipState = "NONE"
	RelationshipSelf            RelationshipState = "SELF"
	RelationshipFriends         RelationshipState = "FRIENDS"
	RelationshipPendingSent     RelationshipState = "PENDING_SENT"
	RelationshipPendingReceived RelationshipState = "PENDING_RECEIVED"
)

// SendFriendRequestRequest creates a pending friendship row
type SendFriendRequestRequest struct {
	FriendID int64 `json:"friendId" binding:"required,gt=0"`
}

// FriendResponse is one row of a friend or request list
type FriendResponse struct {
	UserID       int64     `json:"userId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	ProfilePhoto *string   `json:"profilePhoto,omitempty"`
	Status       string    `json:"status" example:"APPROVED"`
	Since        time.Time `json:"since"`
}

// RelationshipStatusResponse reports the edge between the caller and a user
type RelationshipStatusResponse struct {
	UserID       int64             `json:"userId"`
	Relationship RelationshipState `json:"relationship"`
}

// FromFriendship maps a friendship row to the response, resolving the peer
// relative to viewerID
func FromFriendship(f *models.Friendship, viewerID int64) FriendResponse {
	resp := FriendResponse{
		UserID: f.OtherSide(viewerID),
		Status: string(f.Status),
		Since:  f.UpdatedAt,
	}
	if f.Friend != nil {
		resp.FirstName = f.Friend.FirstName
		resp.LastName = f.Friend.LastName
		resp.ProfilePhoto = f.Friend.ProfilePhoto
	}
	return resp
}
