package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
)

type localPhotoStore struct {
	dir string
}

// NewLocalPhotoStore stores photos as plain files under dir, one file per
// player. This is the canonical deployment: the photo directory sits next
// to the two CSV files.
func NewLocalPhotoStore(dir string) (PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory %s: %w", dir, err)
	}
	return &localPhotoStore{dir: dir}, nil
}

func (s *localPhotoStore) Put(_ context.Context, key string, _ string, reader io.Reader) error {
	path := filepath.Join(s.dir, key)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create photo file %s: %w", path, err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write photo file %s: %w", path, err)
	}
	return f.Close()
}

func (s *localPhotoStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	path := filepath.Join(s.dir, key)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrPhotoNotFound
		}
		return nil, "", fmt.Errorf("failed to open photo file %s: %w", path, err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f, contentType, nil
}

func (s *localPhotoStore) Delete(_ context.Context, key string) error {
	path := filepath.Join(s.dir, key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete photo file %s: %w", path, err)
	}
	return nil
}

func (s *localPhotoStore) PublicURL(string) string {
	return ""
}
