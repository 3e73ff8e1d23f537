package dto

import (
	"time"

	"github.com/connecthub/manexis/internal/app/models"
)

// UserProfile is the full profile view (self, or friends when the profile is
// friends-only)
type UserProfile struct {
	ID           int64      `json:"id" example:"1"`
	FirstName    string     `json:"firstName" example:"John"`
	LastName     string     `json:"lastName" example:"Doe"`
	Email        string     `json:"email" example:"john.doe@example.com"`
	Status       string     `json:"status" example:"VERIFIED"`
	ProfilePhoto *string    `json:"profilePhoto,omitempty"`
	CoverPhoto   *string    `json:"coverPhoto,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Website      *string    `json:"website,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// PublicProfile is the restricted view shown to non-friends of a
// friends-only profile
type PublicProfile struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
}

// UpdateProfileRequest updates mutable profile attributes
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" binding:"omitempty,min=2,max=100"`
	LastName  *string `json:"lastName,omitempty" binding:"omitempty,min=2,max=100"`
	Bio       *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	Location  *string `json:"location,omitempty" binding:"omitempty,max=120"`
	Website   *string `json:"website,omitempty" binding:"omitempty,max=255"`
}

// UserSearchResult is one row of a user search
type UserSearchResult struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Email        string  `json:"email"`
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
	Relationship string  `json:"relationship" example:"NONE" enums:"NONE,PENDING_SENT,PENDING_RECEIVED,FRIENDS,SELF"`
}

// FromUser builds the full profile view from a user model
func FromUser(u *models.User) *UserProfile {
	if u == nil {
		return nil
	}
	return &UserProfile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Status:       string(u.Status),
		ProfilePhoto: u.ProfilePhoto,
		CoverPhoto:   u.CoverPhoto,
		Bio:          u.Bio,
		Location:     u.Location,
		Website:      u.Website,
		CreatedAt:    u.CreatedAt,
		LastLoginAt:  u.LastLoginAt,
	}
}

// FromUserPublic builds the restricted view from a user model
func FromUserPublic(u *models.User) *PublicProfile {
	if u == nil {
		return nil
	}
	return &PublicProfile{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ProfilePhoto: u.ProfilePhoto,
	}
}
