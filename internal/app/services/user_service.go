package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
	"github.com/connecthub/manexis/internal/pkg/filestorage"
	"github.com/connecthub/manexis/internal/pkg/helpers"
)

// UserService handles profile viewing, editing and user search
type UserService struct {
	userRepo       UserStore
	friendshipRepo FriendshipStore
	settingsRepo   SettingsStore
	storage        filestorage.FileStorage
	logger         zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo UserStore,
	friendshipRepo FriendshipStore,
	settingsRepo SettingsStore,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		friendshipRepo: friendshipRepo,
		settingsRepo:   settingsRepo,
		storage:        storage,
		logger:         logger,
	}
}

// GetProfile returns the caller's own full profile
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// GetUserProfile returns another user's profile as seen by viewerID. Exactly
// one of the returns is non-nil: the full profile when the viewer is the
// user, a friend, or the profile is public; the restricted one otherwise.
// Deactivated accounts look like they do not exist.
func (s *UserService) GetUserProfile(ctx context.Context, viewerID, targetID int64) (*dto.UserProfile, *dto.PublicProfile, error) {
	user, err := s.userRepo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}
	if user.Status == models.StatusInactive {
		return nil, nil, apperrors.ErrUserNotFound
	}

	if viewerID == targetID {
		return dto.FromUser(user), nil, nil
	}

	visibility, err := s.settingsRepo.GetVisibility(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}
	if visibility == models.VisibilityPublic {
		return dto.FromUser(user), nil, nil
	}

	friends, err := s.friendshipRepo.AreFriends(ctx, viewerID, targetID)
	if err != nil {
		return nil, nil, err
	}
	if friends {
		return dto.FromUser(user), nil, nil
	}

	return nil, dto.FromUserPublic(user), nil
}

// UpdateProfile applies a partial profile update and returns the new profile
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Bio, req.Location, req.Website)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Profile updated")
	return s.GetProfile(ctx, userID)
}

// UpdateProfilePhoto stores a new profile photo, replacing any previous one
func (s *UserService) UpdateProfilePhoto(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*dto.UserProfile, error) {
	return s.updatePhoto(ctx, userID, fileHeader, filestorage.ProfilePhotoDir)
}

// UpdateCoverPhoto stores a new cover photo, replacing any previous one
func (s *UserService) UpdateCoverPhoto(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*dto.UserProfile, error) {
	return s.updatePhoto(ctx, userID, fileHeader, filestorage.CoverPhotoDir)
}

func (s *UserService) updatePhoto(ctx context.Context, userID int64, fileHeader *multipart.FileHeader, subDir string) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	info, err := s.storage.SaveImage(fileHeader, subDir)
	if err != nil {
		return nil, err
	}

	var oldPath *string
	switch subDir {
	case filestorage.ProfilePhotoDir:
		oldPath = user.ProfilePhoto
		err = s.userRepo.UpdateProfilePhoto(ctx, userID, info.Path)
	default:
		oldPath = user.CoverPhoto
		err = s.userRepo.UpdateCoverPhoto(ctx, userID, info.Path)
	}
	if err != nil {
		_ = s.storage.DeleteFile(info.Path)
		return nil, err
	}

	if oldPath != nil {
		if delErr := s.storage.DeleteFile(*oldPath); delErr != nil && !errors.Is(delErr, apperrors.ErrFileNotFound) {
			s.logger.Warn().Err(delErr).Str("path", *oldPath).Msg("Failed to delete replaced photo")
		}
	}

	s.logger.Info().Int64("userID", userID).Str("path", info.Path).Msg("Photo updated")
	return s.GetProfile(ctx, userID)
}

// SearchUsers finds verified users matching the term and annotates each
// result with the caller's relationship to them
func (s *UserService) SearchUsers(ctx context.Context, searcherID int64, term string, page, size int) ([]dto.UserSearchResult, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := s.userRepo.SearchUsers(ctx, searcherID, term, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	relationships, err := s.friendshipRepo.GetRelationships(ctx, searcherID, ids)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	results := make([]dto.UserSearchResult, 0, len(users))
	for _, u := range users {
		results = append(results, dto.UserSearchResult{
			ID:           u.ID,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			Email:        u.Email,
			ProfilePhoto: u.ProfilePhoto,
			Relationship: string(relationshipState(searcherID, u.ID, relationships[u.ID])),
		})
	}

	return results, helpers.NewPaginationInfo(total, page, limit), nil
}

// relationshipState derives the edge label between a viewer and another user
func relationshipState(viewerID, otherID int64, f *models.Friendship) dto.RelationshipState {
	switch {
	case viewerID == otherID:
		return dto.RelationshipSelf
	case f == nil:
		return dto.RelationshipNone
	case f.Status == models.FriendshipApproved:
		return dto.RelationshipFriends
	case f.UserID == viewerID:
		return dto.RelationshipPendingSent
	default:
		return dto.RelationshipPendingReceived
	}
}
