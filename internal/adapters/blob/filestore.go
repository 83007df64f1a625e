// Package blob stores uploaded photo bytes on the local filesystem. Each event
// owns one directory under the configured root; the whole directory goes away
// when the event does.
package blob

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"eventplanner/internal/domain"
)

type fileStore struct {
	root string
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (domain.FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &fileStore{root: dir}, nil
}

func (s *fileStore) PathFor(eventID, fileName string) string {
	// Strip any directory components from client-supplied names.
	return filepath.Join(s.root, eventID, filepath.Base(fileName))
}

func (s *fileStore) FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *fileStore) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *fileStore) DeleteEventDir(eventID string) error {
	dir := filepath.Join(s.root, eventID)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return os.RemoveAll(dir)
}

// WriteFile stores the given content under the event's directory and returns the
// full path. Used by the upload handler before PhotoService.Attach records the row.
func (s *fileStore) WriteFile(eventID, fileName string, r io.Reader) (string, error) {
	dir := filepath.Join(s.root, eventID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create event dir: %w", err)
	}
	path := s.PathFor(eventID, fileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}
