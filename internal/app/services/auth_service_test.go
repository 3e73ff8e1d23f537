package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
)

func TestAuthServiceRegister(t *testing.T) {
	validRequest := func() *dto.RegisterRequest {
		return &dto.RegisterRequest{
			FirstName: "Alice",
			LastName:  "Demo",
			Email:     "alice@connecthub.local",
			Password:  "Password1!",
		}
	}

	tests := []struct {
		name        string
		mutate      func(req *dto.RegisterRequest)
		emailTaken  bool
		wantErr     error
		wantCreated bool
	}{
		{
			name:        "new account is created unverified",
			mutate:      func(req *dto.RegisterRequest) {},
			wantCreated: true,
		},
		{
			name:       "duplicate email rejected",
			mutate:     func(req *dto.RegisterRequest) {},
			emailTaken: true,
			wantErr:    apperrors.ErrEmailAlreadyExists,
		},
		{
			name:    "invalid email rejected",
			mutate:  func(req *dto.RegisterRequest) { req.Email = "not-an-address" },
			wantErr: apperrors.ErrInvalidEmail,
		},
		{
			name:    "weak password rejected",
			mutate:  func(req *dto.RegisterRequest) { req.Password = "letters" },
			wantErr: apperrors.ErrInvalidPassword,
		},
		{
			name:    "short name rejected",
			mutate:  func(req *dto.RegisterRequest) { req.FirstName = "A" },
			wantErr: apperrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var createdUser *models.User

			userRepo := &stubUserStore{
				emailExists: func(ctx context.Context, email string) (bool, error) {
					return tt.emailTaken, nil
				},
				createUser: func(ctx context.Context, user *models.User) (int64, error) {
					createdUser = user
					return 42, nil
				},
			}
			verificationRepo := &stubVerificationTokenStore{
				createToken: func(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
					assert.Equal(t, int64(42), userID)
					assert.NotEmpty(t, token)
					assert.True(t, expiryDate.After(time.Now()))
					return nil
				},
			}
			emailSvc := &stubEmailService{}

			svc := NewAuthService(userRepo, nil, verificationRepo, nil, nil, emailSvc, zerolog.Nop())

			req := validRequest()
			tt.mutate(req)
			resp, err := svc.Register(context.Background(), req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, createdUser, "no account may be created on a rejected registration")
				assert.Empty(t, emailSvc.verificationEmails)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(42), resp.UserID)
			require.NotNil(t, createdUser)
			assert.Equal(t, models.StatusNotVerified, createdUser.Status)
			assert.NotEqual(t, req.Password, createdUser.Password, "password must be stored hashed")
			assert.Equal(t, []string{req.Email}, emailSvc.verificationEmails)
		})
	}
}
