// internal/pkg/storage/local.go
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/errs"
)

// LocalStore writes uploaded images to a directory on disk. Files are renamed
// to a random UUID so uploads can never collide or traverse paths.
type LocalStore struct {
	config *config.Config
}

// NewLocalStore creates a new local file store
func NewLocalStore(cfg *config.Config) *LocalStore {
	return &LocalStore{
		config: cfg,
	}
}

// Save stores an uploaded file and returns the generated filename
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > s.config.Upload.MaxSize {
		return "", errs.Domain("file exceeds the maximum allowed size of %d bytes", s.config.Upload.MaxSize)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !s.isExtensionAllowed(ext) {
		return "", errs.Domain("file type .%s is not allowed", ext)
	}

	if err := os.MkdirAll(s.config.Upload.LocalPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := uuid.New().String() + "." + ext

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.config.Upload.LocalPath, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return filename, nil
}

func (s *LocalStore) isExtensionAllowed(ext string) bool {
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}
