package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"quizbook/internal/domain"
)

// FSStore implements domain.BlobStore on a local directory. The directory is
// served by the HTTP server under the public base URL.
type FSStore struct {
	publicURLs
	root string
}

// NewFSStore creates root if needed.
func NewFSStore(root, publicBaseURL string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	return &FSStore{publicURLs: newPublicURLs(publicBaseURL), root: root}, nil
}

var _ domain.BlobStore = (*FSStore)(nil)

// Root returns the directory the store writes to.
func (s *FSStore) Root() string {
	return s.root
}

func (s *FSStore) Upload(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) (string, error) {
	if err := cleanPath(objectPath); err != nil {
		return "", err
	}
	full := filepath.Join(s.root, filepath.FromSlash(objectPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", objectPath, err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", objectPath, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("failed to write %s: %w", objectPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", objectPath, err)
	}
	return s.PublicURL(objectPath), nil
}

// Delete removes the file. Removing a missing file is not an error.
func (s *FSStore) Delete(ctx context.Context, objectPath string) error {
	if err := cleanPath(objectPath); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(objectPath)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", objectPath, err)
	}
	return nil
}
