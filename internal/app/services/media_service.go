package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
	"github.com/connecthub/manexis/internal/pkg/filestorage"
)

// MediaFile describes a stored upload ready to be streamed to a client
type MediaFile struct {
	FullPath string
	MimeType string
	Size     int64
}

// MediaService gates access to stored uploads. Post images are visible to
// the author and their friends; profile and cover photos follow the owner's
// profile visibility setting.
type MediaService struct {
	userRepo       UserStore
	postRepo       PostStore
	friendshipRepo FriendshipStore
	settingsRepo   SettingsStore
	storage        filestorage.FileStorage
	logger         zerolog.Logger
}

// NewMediaService creates a new MediaService
func NewMediaService(
	userRepo UserStore,
	postRepo PostStore,
	friendshipRepo FriendshipStore,
	settingsRepo SettingsStore,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *MediaService {
	return &MediaService{
		userRepo:       userRepo,
		postRepo:       postRepo,
		friendshipRepo: friendshipRepo,
		settingsRepo:   settingsRepo,
		storage:        storage,
		logger:         logger,
	}
}

// Open authorizes the viewer for the given stored file and resolves it on
// disk. Unknown files return apperrors.ErrFileNotFound and files the viewer
// may not see return apperrors.ErrPermissionDenied.
func (s *MediaService) Open(ctx context.Context, viewerID int64, relPath string) (*MediaFile, error) {
	relPath = path.Clean(strings.TrimPrefix(relPath, "/"))

	if err := s.authorize(ctx, viewerID, relPath); err != nil {
		return nil, err
	}

	fullPath, mimeType, size, err := s.storage.Open(relPath)
	if err != nil {
		if errors.Is(err, apperrors.ErrFileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}

	return &MediaFile{FullPath: fullPath, MimeType: mimeType, Size: size}, nil
}

func (s *MediaService) authorize(ctx context.Context, viewerID int64, relPath string) error {
	switch {
	case strings.HasPrefix(relPath, filestorage.PostImageDir+"/"):
		return s.authorizePostImage(ctx, viewerID, relPath)
	case strings.HasPrefix(relPath, filestorage.ProfilePhotoDir+"/"),
		strings.HasPrefix(relPath, filestorage.CoverPhotoDir+"/"):
		return s.authorizeUserPhoto(ctx, viewerID, relPath)
	default:
		return apperrors.ErrFileNotFound
	}
}

func (s *MediaService) authorizePostImage(ctx context.Context, viewerID int64, relPath string) error {
	authorID, err := s.postRepo.GetPostAuthorByImagePath(ctx, relPath)
	if err != nil {
		if errors.Is(err, apperrors.ErrPostNotFound) {
			// Image on disk but no owning post: orphan, treat as missing
			return apperrors.ErrFileNotFound
		}
		return err
	}

	if authorID == viewerID {
		return nil
	}

	friends, err := s.friendshipRepo.AreFriends(ctx, viewerID, authorID)
	if err != nil {
		return err
	}
	if !friends {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

func (s *MediaService) authorizeUserPhoto(ctx context.Context, viewerID int64, relPath string) error {
	ownerID, err := s.userRepo.GetUserIDByPhotoPath(ctx, relPath)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrFileNotFound
		}
		return err
	}

	if ownerID == viewerID {
		return nil
	}

	visibility, err := s.settingsRepo.GetVisibility(ctx, ownerID)
	if err != nil {
		return err
	}
	if visibility == models.VisibilityPublic {
		return nil
	}

	friends, err := s.friendshipRepo.AreFriends(ctx, viewerID, ownerID)
	if err != nil {
		return err
	}
	if !friends {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
