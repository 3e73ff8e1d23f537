package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
	"github.com/connecthub/manexis/internal/pkg/auth"
)

// SettingsService handles user preferences and account deactivation
type SettingsService struct {
	settingsRepo SettingsStore
	userRepo     UserStore
	sessionRepo  SessionStore
	logger       zerolog.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(
	settingsRepo SettingsStore,
	userRepo UserStore,
	sessionRepo SessionStore,
	logger zerolog.Logger,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		logger:       logger,
	}
}

// GetSettings returns the caller's settings, creating the default row on
// first access
func (s *SettingsService) GetSettings(ctx context.Context, userID int64) (*dto.SettingsResponse, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromSettings(settings), nil
}

// UpdateSettings applies a partial update and returns the resulting settings
func (s *SettingsService) UpdateSettings(ctx context.Context, userID int64, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	// Ensure the row exists before the partial UPDATE
	if _, err := s.settingsRepo.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	var visibility *models.ProfileVisibility
	if req.ProfileVisibility != nil {
		v := models.ProfileVisibility(*req.ProfileVisibility)
		visibility = &v
	}
	var theme *models.Theme
	if req.Theme != nil {
		t := models.Theme(*req.Theme)
		theme = &t
	}

	err := s.settingsRepo.Update(ctx, userID, visibility,
		req.NotifyFriendRequests, req.NotifyMessages, req.NotifyPostActivity, theme)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Settings updated")

	settings, err := s.settingsRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromSettings(settings), nil
}

// DeactivateAccount confirms the password, marks the account INACTIVE and
// revokes every session. The profile disappears from search and lookups.
func (s *SettingsService) DeactivateAccount(ctx context.Context, userID int64, password string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, password) {
		return apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateUserStatus(ctx, userID, models.StatusInactive); err != nil {
		return err
	}
	if err := s.sessionRepo.RevokeAllUserSessions(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke sessions on deactivation")
	}

	s.logger.Info().Int64("userID", userID).Msg("Account deactivated")
	return nil
}
