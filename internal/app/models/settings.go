package models

import "time"

// ProfileVisibility controls who may view a user's full profile
type ProfileVisibility string

const (
	VisibilityPublic  ProfileVisibility = "public"
	VisibilityFriends ProfileVisibility = "friends"
)

// Theme is the UI theme preference stored per user
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// UserSettings is the one-to-one 'user_settings' row, created lazily with
// defaults the first time settings are read.
type UserSettings struct {
	UserID               int64             `json:"userId" db:"user_id"`
	ProfileVisibility    ProfileVisibility `json:"profileVisibility" db:"profile_visibility"`
	NotifyFriendRequests bool              `json:"notifyFriendRequests" db:"notify_friend_requests"`
	NotifyMessages       bool              `json:"notifyMessages" db:"notify_messages"`
	NotifyPostActivity   bool              `json:"notifyPostActivity" db:"notify_post_activity"`
	Theme                Theme             `json:"theme" db:"theme"`
	CreatedAt            time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time         `json:"updatedAt" db:"updated_at"`
}

// DefaultSettings returns the row inserted on first settings access
func DefaultSettings(userID int64) *UserSettings {
	return &UserSettings{
		UserID:               userID,
		ProfileVisibility:    VisibilityPublic,
		NotifyFriendRequests: true,
		NotifyMessages:       true,
		NotifyPostActivity:   true,
		Theme:                ThemeLight,
	}
}
