package filestorage

import (
	"mime/multipart"
)

// Upload subdirectories, one per upload kind
const (
	ProfilePhotoDir = "profile_photos"
	CoverPhotoDir   = "cover_photos"
	PostImageDir    = "posts"
)

// MaxUploadSize caps image uploads at 2MB
const MaxUploadSize = 2 << 20

// FileInfo describes a stored file
type FileInfo struct {
	Path     string // Relative path under the storage root
	Filename string // Original filename
	FileSize int64  // Size in bytes
	MimeType string // Sniffed MIME type
}

// FileStorage defines the interface for upload storage operations
type FileStorage interface {
	// SaveImage validates (size cap, sniffed image MIME) and stores an
	// uploaded image under the given subdirectory, returning its relative path
	SaveImage(fileHeader *multipart.FileHeader, subDir string) (*FileInfo, error)

	// Open returns the full filesystem path and sniffed MIME type of a stored
	// file; apperrors.ErrFileNotFound when it does not exist
	Open(relPath string) (fullPath string, mimeType string, size int64, err error)

	// DeleteFile removes a stored file; deleting a missing file is not an error
	DeleteFile(relPath string) error
}
