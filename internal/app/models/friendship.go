package models

import "time"

// FriendshipStatus represents the state of a friend request
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "PENDING"
	FriendshipApproved FriendshipStatus = "APPROVED"
)

// Friendship is a directed row in the 'friendships' table: UserID sent the
// request, FriendID received it. At most one row exists per unordered pair;
// a unique index on (LEAST(user_id, friend_id), GREATEST(user_id, friend_id))
// enforces this at the database level.
type Friendship struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"userId" db:"user_id"`
	FriendID  int64            `json:"friendId" db:"friend_id"`
	Status    FriendshipStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`

	// Related entity, populated by list queries
	Friend *User `json:"friend,omitempty"`
}

// Involves reports whether the given user is either side of the row
func (f *Friendship) Involves(userID int64) bool {
	return f.UserID == userID || f.FriendID == userID
}

// OtherSide returns the peer of the given user in this friendship
func (f *Friendship) OtherSide(userID int64) int64 {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}
