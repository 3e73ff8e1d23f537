// Package seed creates demo data for development environments.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/app/repositories"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
	"github.com/connecthub/manexis/internal/pkg/auth"
)

type demoAccount struct {
	firstName string
	lastName  string
	email     string
	password  string
}

var demoAccounts = []demoAccount{
	{firstName: "Alice", lastName: "Demo", email: "alice@connecthub.local", password: "Password1!"},
	{firstName: "Bob", lastName: "Demo", email: "bob@connecthub.local", password: "Password1!"},
}

// CreateDemoData inserts two verified demo accounts and makes them friends.
// Existing rows are left untouched, so repeated startups are safe. Never
// called in production mode.
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	friendshipRepo := repositories.NewFriendshipRepository(dbPool)

	lgr.Info().Msg("Checking/Creating demo accounts...")

	ids := make([]int64, 0, len(demoAccounts))
	var finalErr error

	for _, account := range demoAccounts {
		id, err := ensureAccount(ctx, userRepo, account, lgr)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		ids = append(ids, id)
	}

	if len(ids) == 2 {
		if err := ensureFriendship(ctx, friendshipRepo, ids[0], ids[1]); err != nil {
			lgr.Error().Err(err).Msg("Error creating demo friendship")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

func ensureAccount(ctx context.Context, userRepo *repositories.UserRepository, account demoAccount, lgr zerolog.Logger) (int64, error) {
	existing, err := userRepo.GetUserByEmail(ctx, account.email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Str("email", account.email).Msg("Error checking demo account")
		return 0, err
	}

	hashedPassword, err := auth.HashPassword(account.password)
	if err != nil {
		return 0, err
	}

	id, err := userRepo.CreateUser(ctx, &models.User{
		FirstName: account.firstName,
		LastName:  account.lastName,
		Email:     account.email,
		Password:  hashedPassword,
		Status:    models.StatusVerified,
	})
	if err != nil {
		lgr.Error().Err(err).Str("email", account.email).Msg("Error creating demo account")
		return 0, err
	}

	lgr.Info().Str("email", account.email).Msg("Demo account created")
	return id, nil
}

func ensureFriendship(ctx context.Context, friendshipRepo *repositories.FriendshipRepository, userA, userB int64) error {
	existing, err := friendshipRepo.GetBetween(ctx, userA, userB)
	if err == nil {
		if existing.Status == models.FriendshipApproved {
			return nil
		}
		return friendshipRepo.Approve(ctx, existing.ID)
	}
	if !errors.Is(err, apperrors.ErrFriendshipNotFound) {
		return err
	}

	id, err := friendshipRepo.CreateRequest(ctx, userA, userB)
	if err != nil {
		if errors.Is(err, apperrors.ErrFriendRequestSent) {
			return nil
		}
		return err
	}
	return friendshipRepo.Approve(ctx, id)
}
