package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyPhoto = errors.New("empty photo upload")

// PhotoStore writes uploaded photos to a publicly served directory on disk.
type PhotoStore struct {
	dir string
}

// NewPhotoStore creates a PhotoStore rooted at dir, creating it if needed.
func NewPhotoStore(dir string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &PhotoStore{dir: dir}, nil
}

// Save writes the photo under a collision-resistant name derived from the
// current time and a random UUID, keeping only the original extension.
// Zero-byte uploads are rejected with ErrEmptyPhoto. Returns the
// store-relative path recorded on the report row.
func (s *PhotoStore) Save(src io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.NewString(), safeExt(originalName))
	full := filepath.Join(s.dir, name)

	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("creating photo file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(full)
		return "", fmt.Errorf("writing photo file: %w", err)
	}
	if n == 0 {
		os.Remove(full)
		return "", ErrEmptyPhoto
	}

	return path.Join("uploads", name), nil
}

// safeExt extracts a lowercase extension from a client-supplied filename,
// dropping anything that could escape the upload directory.
func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if ext == "" {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
