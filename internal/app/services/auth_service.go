package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
	"github.com/connecthub/manexis/internal/pkg/auth"
	"github.com/connecthub/manexis/internal/pkg/email"
	"github.com/connecthub/manexis/internal/pkg/validation"
)

const (
	verificationTokenTTL  = 24 * time.Hour
	passwordResetTokenTTL = 1 * time.Hour
)

// AuthService handles registration, email verification and session lifecycle
type AuthService struct {
	userRepo          UserStore
	sessionRepo       SessionStore
	verificationRepo  VerificationTokenStore
	passwordResetRepo PasswordResetTokenStore
	jwtService        *auth.JWTService
	emailService      email.EmailService
	logger            zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	sessionRepo SessionStore,
	verificationRepo VerificationTokenStore,
	passwordResetRepo PasswordResetTokenStore,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		sessionRepo:       sessionRepo,
		verificationRepo:  verificationRepo,
		passwordResetRepo: passwordResetRepo,
		jwtService:        jwtService,
		emailService:      emailService,
		logger:            logger,
	}
}

// Register creates a NOT_VERIFIED account and emails the verification link
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if !validation.ValidName(req.FirstName) || !validation.ValidName(req.LastName) {
		return nil, fmt.Errorf("%w: name must be between 2 and 100 characters", apperrors.ErrValidationFailed)
	}
	if !validation.ValidEmail(req.Email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if !validation.ValidPassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters and contain a letter and a digit", apperrors.ErrInvalidPassword)
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		Status:    models.StatusNotVerified,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	if err := s.issueVerificationToken(ctx, user); err != nil {
		// The account exists; the user can ask for a resend
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to send verification email")
	}

	s.logger.Info().Int64("userID", userID).Str("email", user.Email).Msg("User registered")

	return &dto.RegisterResponse{
		UserID:  userID,
		Email:   user.Email,
		Message: "Registration successful. Check your email for the verification link.",
	}, nil
}

func (s *AuthService) issueVerificationToken(ctx context.Context, user *models.User) error {
	token, err := email.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	if err := s.verificationRepo.CreateToken(ctx, user.ID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		return err
	}

	return s.emailService.SendVerificationEmail(user.Email, user.FirstName, token)
}

// VerifyEmail consumes a verification token and activates the account
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	userID, expiryDate, err := s.verificationRepo.GetTokenInfo(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrInvalidEmailToken
		}
		return err
	}

	if expiryDate.Before(time.Now()) {
		_ = s.verificationRepo.DeleteToken(ctx, token)
		return apperrors.ErrInvalidEmailToken
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsVerified() {
		_ = s.verificationRepo.DeleteToken(ctx, token)
		return apperrors.ErrEmailAlreadyVerified
	}

	if err := s.userRepo.UpdateUserStatus(ctx, userID, models.StatusVerified); err != nil {
		return err
	}
	if err := s.verificationRepo.DeleteToken(ctx, token); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to delete consumed verification token")
	}

	if err := s.emailService.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to send welcome email")
	}

	s.logger.Info().Int64("userID", userID).Msg("Email verified")
	return nil
}

// ResendVerification re-issues the verification email. Unknown addresses are
// ignored so the endpoint cannot be used to probe for accounts.
func (s *AuthService) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Debug().Str("email", emailAddr).Msg("Verification resend requested for unknown email")
			return nil
		}
		return err
	}

	if user.IsVerified() {
		return apperrors.ErrEmailAlreadyVerified
	}

	if err := s.verificationRepo.DeleteUserTokens(ctx, user.ID); err != nil {
		return err
	}

	return s.issueVerificationToken(ctx, user)
}

// Login authenticates a user and issues a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	switch user.Status {
	case models.StatusNotVerified:
		return nil, apperrors.ErrEmailNotVerified
	case models.StatusInactive:
		return nil, apperrors.ErrAccountInactive
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return s.generateTokenResponse(ctx, user)
}

// RefreshToken rotates a refresh token, revoking the old session
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.sessionRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status == models.StatusInactive {
		return nil, apperrors.ErrAccountInactive
	}

	// Revoke before issuing, a refresh token is single-use
	if err := s.sessionRepo.RevokeSession(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old session: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout revokes a single session
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessionRepo.RevokeSession(ctx, refreshToken)
}

// LogoutAll revokes every active session of the user
func (s *AuthService) LogoutAll(ctx context.Context, userID int64) error {
	return s.sessionRepo.RevokeAllUserSessions(ctx, userID)
}

// ForgotPassword starts the reset flow. Unknown addresses are ignored so the
// endpoint cannot be used to probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	if err := s.passwordResetRepo.DeleteUserTokens(ctx, user.ID); err != nil {
		return err
	}

	token, err := email.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.passwordResetRepo.CreateToken(ctx, user.ID, token, time.Now().Add(passwordResetTokenTTL)); err != nil {
		return err
	}

	return s.emailService.SendPasswordResetEmail(user.Email, user.FirstName, token)
}

// ResetPassword exchanges a valid reset token for a new password and revokes
// every open session
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !validation.ValidPassword(newPassword) {
		return fmt.Errorf("%w: password must be at least 8 characters and contain a letter and a digit", apperrors.ErrInvalidPassword)
	}

	userID, expiryDate, used, err := s.passwordResetRepo.GetTokenInfo(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrInvalidPasswordResetToken
		}
		return err
	}
	if used {
		return apperrors.ErrPasswordResetTokenUsed
	}
	if expiryDate.Before(time.Now()) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}
	if err := s.passwordResetRepo.MarkTokenUsed(ctx, token); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to mark reset token used")
	}
	if err := s.sessionRepo.RevokeAllUserSessions(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke sessions after password reset")
	}

	s.logger.Info().Int64("userID", userID).Msg("Password reset completed")
	return nil
}

// ChangePassword changes the password of a logged-in user and revokes every
// session so other devices must sign in again
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if !validation.ValidPassword(newPassword) {
		return fmt.Errorf("%w: password must be at least 8 characters and contain a letter and a digit", apperrors.ErrInvalidPassword)
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}
	if err := s.sessionRepo.RevokeAllUserSessions(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke sessions after password change")
	}

	return nil
}

func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.sessionRepo.CreateSession(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}
