package dto

import (
	"time"

	"github.com/connecthub/manexis/internal/app/models"
)

// SettingsResponse is the user's settings row
type SettingsResponse struct {
	ProfileVisibility    string    `json:"profileVisibility" example:"public"`
	NotifyFriendRequests bool      `json:"notifyFriendRequests"`
	NotifyMessages       bool      `json:"notifyMessages"`
	NotifyPostActivity   bool      `json:"notifyPostActivity"`
	Theme                string    `json:"theme" example:"light"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// UpdateSettingsRequest applies a partial settings update; nil fields keep
// their current value
type UpdateSettingsRequest struct {
	ProfileVisibility    *string `json:"profileVisibility,omitempty" binding:"omitempty,oneof=public friends"`
	NotifyFriendRequests *bool   `json:"notifyFriendRequests,omitempty"`
	NotifyMessages       *bool   `json:"notifyMessages,omitempty"`
	NotifyPostActivity   *bool   `json:"notifyPostActivity,omitempty"`
	Theme                *string `json:"theme,omitempty" binding:"omitempty,oneof=light dark"`
}

// DeactivateAccountRequest confirms deactivation with the current password
type DeactivateAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

// FromSettings maps a settings model to the response
func FromSettings(s *models.UserSettings) *SettingsResponse {
	if s == nil {
		return nil
	}
	return &SettingsResponse{
		ProfileVisibility:    string(s.ProfileVisibility),
		NotifyFriendRequests: s.NotifyFriendRequests,
		NotifyMessages:       s.NotifyMessages,
		NotifyPostActivity:   s.NotifyPostActivity,
		Theme:                string(s.Theme),
		UpdatedAt:            s.UpdatedAt,
	}
}
