package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// MediaStore persists uploaded post images under a media root directory.
type MediaStore struct {
	root string
}

// NewMediaStore creates a MediaStore rooted at the given directory
func NewMediaStore(root string) *MediaStore {
	return &MediaStore{root: root}
}

// Root returns the media root directory
func (m *MediaStore) Root() string {
	return m.root
}

// Save writes an uploaded image and returns the stored filename.
// Filenames get a nanosecond prefix so concurrent uploads with the same
// original name cannot collide.
func (m *MediaStore) Save(name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media root: %v", err)
	}

	stored := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(name))
	f, err := os.Create(filepath.Join(m.root, stored))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %v", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write media file: %v", err)
	}
	return stored, nil
}

// Remove deletes a stored image by filename. Missing files are ignored.
func (m *MediaStore) Remove(stored string) error {
	if stored == "" {
		return nil
	}
	err := os.Remove(filepath.Join(m.root, filepath.Base(stored)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
