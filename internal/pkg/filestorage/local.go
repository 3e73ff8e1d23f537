package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/connecthub/manexis/internal/pkg/apperrors"
	"github.com/connecthub/manexis/internal/pkg/logger"
)

// allowedImageTypes maps accepted sniffed MIME types to stored extensions
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalStorage stores uploads on the local filesystem under a single root.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory and the per-kind subdirectories if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	for _, dir := range []string{"", ProfilePhotoDir, CoverPhotoDir, PostImageDir} {
		full := filepath.Join(basePath, dir)
		if err := os.MkdirAll(full, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", full).Msg("Failed to create storage directory")
			return nil, fmt.Errorf("failed to create storage directory %s: %w", full, err)
		}
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// SaveImage validates and stores an uploaded image. The MIME type is sniffed
// from the first 512 bytes rather than trusted from the request, and the
// stored name is a fresh UUID so concurrent uploads cannot collide.
func (ls *LocalStorage) SaveImage(fileHeader *multipart.FileHeader, subDir string) (*FileInfo, error) {
	if fileHeader == nil {
		return nil, nil
	}

	if fileHeader.Size > MaxUploadSize {
		return nil, apperrors.ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	mimeType := http.DetectContentType(head[:n])

	ext, ok := allowedImageTypes[mimeType]
	if !ok {
		return nil, apperrors.ErrUnsupportedFileType
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	relPath := filepath.Join(subDir, uuid.New().String()+ext)
	dstPath := filepath.Join(ls.basePath, relPath)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("saved_as", relPath).
		Int64("size", written).
		Msg("File saved successfully")

	return &FileInfo{
		Path:     filepath.ToSlash(relPath),
		Filename: fileHeader.Filename,
		FileSize: written,
		MimeType: mimeType,
	}, nil
}

// Open resolves a stored relative path and sniffs its MIME type for serving.
func (ls *LocalStorage) Open(relPath string) (string, string, int64, error) {
	fullPath, err := ls.resolve(relPath)
	if err != nil {
		return "", "", 0, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", 0, apperrors.ErrFileNotFound
		}
		return "", "", 0, fmt.Errorf("failed to stat file: %w", err)
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", "", 0, fmt.Errorf("failed to read file: %w", err)
	}

	return fullPath, http.DetectContentType(head[:n]), info.Size(), nil
}

// DeleteFile removes a stored file. Deleting a missing file succeeds so the
// operation is idempotent.
func (ls *LocalStorage) DeleteFile(relPath string) error {
	if relPath == "" {
		return nil
	}

	fullPath, err := ls.resolve(relPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		logger.Warn().Str("path", fullPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(fullPath); err != nil {
		logger.Error().Err(err).Str("path", fullPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", fullPath).Msg("File deleted successfully")
	return nil
}

// resolve joins a relative path onto the storage root, rejecting anything
// that would escape it.
func (ls *LocalStorage) resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid file path: %s", relPath)
	}
	return filepath.Join(ls.basePath, cleaned), nil
}
