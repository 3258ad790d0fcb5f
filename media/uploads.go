package media

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotAnImage is returned when an uploaded file's declared media type does
// not begin with "image/".
var ErrNotAnImage = errors.New("uploaded file is not an image")

// UploadStore persists uploaded employee images on the local filesystem.
// Files are named by millisecond timestamp plus the original extension, so
// concurrent uploads land under distinct names and a replaced image never
// overwrites its predecessor.
type UploadStore struct {
	basePath     string // absolute path to the upload directory
	publicPrefix string // path prefix the files are served under, e.g. "uploads"
}

// NewUploadStore creates the upload directory if it does not exist yet.
func NewUploadStore(basePath string) (*UploadStore, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid upload directory '%s': %w", basePath, err)
	}
	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory '%s': %w", absBasePath, err)
	}

	log.Printf("media.uploads: storing employee images in %s", absBasePath)
	return &UploadStore{
		basePath:     absBasePath,
		publicPrefix: filepath.Base(absBasePath),
	}, nil
}

// BasePath returns the absolute upload directory path.
func (us *UploadStore) BasePath() string {
	return us.basePath
}

// PublicPrefix returns the URL path segment the stored files are served under.
func (us *UploadStore) PublicPrefix() string {
	return us.publicPrefix
}

// Save validates and stores one uploaded file, returning the public-relative
// path (e.g. "uploads/1717171717171.png"). The declared Content-Type must
// begin with "image/"; anything else is rejected rather than silently dropped.
func (us *UploadStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: got content type '%s'", ErrNotAnImage, contentType)
	}

	// the directory may have been removed since startup
	if err := os.MkdirAll(us.basePath, 0755); err != nil {
		return "", fmt.Errorf("failed to ensure upload directory '%s': %w", us.basePath, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file '%s': %w", fileHeader.Filename, err)
	}
	defer src.Close()

	filename := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(fileHeader.Filename))
	fullSavePath := filepath.Join(us.basePath, filename)

	outFile, err := os.Create(fullSavePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file '%s': %w", fullSavePath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, src); err != nil {
		outFile.Close()
		os.Remove(fullSavePath)
		return "", fmt.Errorf("failed to write upload to '%s': %w", fullSavePath, err)
	}

	log.Printf("media.uploads: saved %s", fullSavePath)
	return path.Join(us.publicPrefix, filename), nil
}

// Resolve determines the effective image path for a create or update. When a
// new file is supplied it is stored and its path returned; otherwise the
// previously persisted path (nil on create) is kept as-is. The old file is
// never deleted, even when replaced.
func (us *UploadStore) Resolve(existing *string, fileHeader *multipart.FileHeader) (*string, error) {
	if fileHeader == nil {
		return existing, nil
	}
	stored, err := us.Save(fileHeader)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
