package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connecthub/manexis/internal/pkg/apperrors"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return ls
}

func TestNewLocalStorageCreatesSubdirectories(t *testing.T) {
	base := t.TempDir()
	_, err := NewLocalStorage(base)
	require.NoError(t, err)

	for _, dir := range []string{ProfilePhotoDir, CoverPhotoDir, PostImageDir} {
		info, err := os.Stat(filepath.Join(base, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestSaveImageAndOpen(t *testing.T) {
	ls := newTestStorage(t)

	info, err := ls.SaveImage(makeFileHeader(t, "avatar.png", pngHeader), ProfilePhotoDir)
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "image/png", info.MimeType)
	assert.Equal(t, "avatar.png", info.Filename)
	assert.Equal(t, int64(len(pngHeader)), info.FileSize)
	assert.True(t, filepath.Ext(info.Path) == ".png")

	fullPath, mimeType, size, err := ls.Open(info.Path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, int64(len(pngHeader)), size)

	saved, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, saved)
}

func TestSaveImageNilHeader(t *testing.T) {
	ls := newTestStorage(t)

	info, err := ls.SaveImage(nil, ProfilePhotoDir)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestSaveImageRejectsUnsupportedType(t *testing.T) {
	ls := newTestStorage(t)

	_, err := ls.SaveImage(makeFileHeader(t, "notes.txt", []byte("just some text")), PostImageDir)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFileType)
}

func TestSaveImageRejectsOversizedFile(t *testing.T) {
	ls := newTestStorage(t)

	big := make([]byte, MaxUploadSize+1)
	copy(big, pngHeader)

	_, err := ls.SaveImage(makeFileHeader(t, "huge.png", big), PostImageDir)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestOpenMissingFile(t *testing.T) {
	ls := newTestStorage(t)

	_, _, _, err := ls.Open(PostImageDir + "/nope.png")
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

func TestOpenRejectsPathTraversal(t *testing.T) {
	ls := newTestStorage(t)

	for _, path := range []string{"../etc/passwd", "..", "/etc/passwd", "."} {
		_, _, _, err := ls.Open(path)
		assert.Error(t, err, "expected %q to be rejected", path)
		assert.NotErrorIs(t, err, apperrors.ErrFileNotFound)
	}
}

func TestDeleteFile(t *testing.T) {
	ls := newTestStorage(t)

	info, err := ls.SaveImage(makeFileHeader(t, "avatar.png", pngHeader), ProfilePhotoDir)
	require.NoError(t, err)

	require.NoError(t, ls.DeleteFile(info.Path))
	_, _, _, err = ls.Open(info.Path)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)

	// Deleting again is a no-op
	assert.NoError(t, ls.DeleteFile(info.Path))
	assert.NoError(t, ls.DeleteFile(""))
}
