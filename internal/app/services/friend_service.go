package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
)

// FriendService handles the friend request lifecycle and friend lists
type FriendService struct {
	friendshipRepo FriendshipStore
	userRepo       UserStore
	logger         zerolog.Logger
}

// NewFriendService creates a new FriendService
func NewFriendService(
	friendshipRepo FriendshipStore,
	userRepo UserStore,
	logger zerolog.Logger,
) *FriendService {
	return &FriendService{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// SendRequest creates a pending friend request. The existing edge, if any,
// determines the error: an approved edge, a request already sent, or a
// request already received each get their own answer.
func (s *FriendService) SendRequest(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return apperrors.ErrCannotFriendSelf
	}

	target, err := s.userRepo.GetUserByID(ctx, friendID)
	if err != nil {
		return err
	}
	if !target.IsVerified() {
		return apperrors.ErrUserNotFound
	}

	existing, err := s.friendshipRepo.GetBetween(ctx, userID, friendID)
	if err != nil && !errors.Is(err, apperrors.ErrFriendshipNotFound) {
		return err
	}
	if existing != nil {
		switch {
		case existing.Status == models.FriendshipApproved:
			return apperrors.ErrAlreadyFriends
		case existing.UserID == userID:
			return apperrors.ErrFriendRequestSent
		default:
			return apperrors.ErrFriendRequestReceived
		}
	}

	if _, err := s.friendshipRepo.CreateRequest(ctx, userID, friendID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Int64("friendID", friendID).Msg("Friend request sent")
	return nil
}

// AcceptRequest approves a pending request that was sent to userID
func (s *FriendService) AcceptRequest(ctx context.Context, userID, requesterID int64) error {
	f, err := s.friendshipRepo.GetBetween(ctx, userID, requesterID)
	if err != nil {
		return err
	}
	if f.Status != models.FriendshipPending || f.FriendID != userID {
		return apperrors.ErrFriendshipNotFound
	}

	if err := s.friendshipRepo.Approve(ctx, f.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Int64("requesterID", requesterID).Msg("Friend request accepted")
	return nil
}

// DeclineRequest removes a pending request that was sent to userID
func (s *FriendService) DeclineRequest(ctx context.Context, userID, requesterID int64) error {
	f, err := s.friendshipRepo.GetBetween(ctx, userID, requesterID)
	if err != nil {
		return err
	}
	if f.Status != models.FriendshipPending || f.FriendID != userID {
		return apperrors.ErrFriendshipNotFound
	}

	return s.friendshipRepo.Delete(ctx, f.ID)
}

// CancelRequest withdraws a pending request that userID sent
func (s *FriendService) CancelRequest(ctx context.Context, userID, friendID int64) error {
	f, err := s.friendshipRepo.GetBetween(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if f.Status != models.FriendshipPending || f.UserID != userID {
		return apperrors.ErrFriendshipNotFound
	}

	return s.friendshipRepo.Delete(ctx, f.ID)
}

// RemoveFriend deletes an approved friendship from either side
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	f, err := s.friendshipRepo.GetBetween(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if f.Status != models.FriendshipApproved {
		return apperrors.ErrNotFriends
	}

	if err := s.friendshipRepo.Delete(ctx, f.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Int64("friendID", friendID).Msg("Friend removed")
	return nil
}

// ListFriends returns the caller's approved friends
func (s *FriendService) ListFriends(ctx context.Context, userID int64) ([]dto.FriendResponse, error) {
	friendships, err := s.friendshipRepo.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toFriendResponses(friendships, userID), nil
}

// ListPendingReceived returns requests awaiting the caller's answer
func (s *FriendService) ListPendingReceived(ctx context.Context, userID int64) ([]dto.FriendResponse, error) {
	friendships, err := s.friendshipRepo.ListPendingReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toFriendResponses(friendships, userID), nil
}

// ListPendingSent returns requests the caller sent that are still open
func (s *FriendService) ListPendingSent(ctx context.Context, userID int64) ([]dto.FriendResponse, error) {
	friendships, err := s.friendshipRepo.ListPendingSent(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toFriendResponses(friendships, userID), nil
}

// GetRelationship reports the friend-graph edge between the caller and a user
func (s *FriendService) GetRelationship(ctx context.Context, userID, otherID int64) (*dto.RelationshipStatusResponse, error) {
	if userID == otherID {
		return &dto.RelationshipStatusResponse{UserID: otherID, Relationship: dto.RelationshipSelf}, nil
	}

	f, err := s.friendshipRepo.GetBetween(ctx, userID, otherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrFriendshipNotFound) {
			return &dto.RelationshipStatusResponse{UserID: otherID, Relationship: dto.RelationshipNone}, nil
		}
		return nil, err
	}

	return &dto.RelationshipStatusResponse{
		UserID:       otherID,
		Relationship: relationshipState(userID, otherID, f),
	}, nil
}

func toFriendResponses(friendships []*models.Friendship, viewerID int64) []dto.FriendResponse {
	responses := make([]dto.FriendResponse, 0, len(friendships))
	for _, f := range friendships {
		responses = append(responses, dto.FromFriendship(f, viewerID))
	}
	return responses
}
