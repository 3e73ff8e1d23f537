package models

import (
	"time"
)

// UserStatus represents the account lifecycle state
type UserStatus string

const (
	// StatusNotVerified is the state of a freshly registered account
	StatusNotVerified UserStatus = "NOT_VERIFIED"
	// StatusVerified is reached by exchanging the emailed verification token
	StatusVerified UserStatus = "VERIFIED"
	// StatusInactive marks a deactivated account; rows are never hard-deleted
	StatusInactive UserStatus = "INACTIVE"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	FirstName    string     `json:"firstName" db:"first_name" example:"John"`                 // User's first name
	LastName     string     `json:"lastName" db:"last_name" example:"Doe"`                    // User's last name
	Email        string     `json:"email" db:"email" example:"john.doe@example.com"`          // User's email address (unique)
	Password     string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	Status       UserStatus `json:"status" db:"status" example:"VERIFIED"`                    // Account lifecycle state
	ProfilePhoto *string    `json:"profilePhoto,omitempty" db:"profile_photo"`                // Stored path of the profile photo (nullable)
	CoverPhoto   *string    `json:"coverPhoto,omitempty" db:"cover_photo"`                    // Stored path of the cover photo (nullable)
	Bio          *string    `json:"bio,omitempty" db:"bio"`                                   // Short self description (nullable)
	Location     *string    `json:"location,omitempty" db:"location"`                         // Free-form location (nullable)
	Website      *string    `json:"website,omitempty" db:"website"`                           // Personal website URL (nullable)
	CreatedAt    time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)
}

// FullName returns the display name used in feeds and conversation lists
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsVerified reports whether the account completed email verification
func (u *User) IsVerified() bool {
	return u.Status == StatusVerified
}
