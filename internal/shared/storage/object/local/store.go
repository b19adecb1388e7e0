package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"photoshare-backend/internal/shared/storage/object"
)

// Store implements ContainerStore on the local filesystem. Containers are
// directories under baseDir; intended for dev and tests.
type Store struct {
	baseDir string
}

// New creates a new local container store rooted at baseDir.
func New(baseDir string) object.ContainerStore {
	return &Store{baseDir: baseDir}
}

// CreateContainer creates the directory backing a container.
func (s *Store) CreateContainer(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir, err := s.containerDir(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir container: %w", err)
	}
	return nil
}

// ConfigureContainer is a no-op: local files carry no access metadata.
func (s *Store) ConfigureContainer(ctx context.Context, name string) error {
	return ctx.Err()
}

// HeadContainer checks that the container directory exists.
func (s *Store) HeadContainer(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir, err := s.containerDir(name)
	if err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return object.ErrContainerNotFound
	}
	return nil
}

// StoreObject writes the reader contents to a file inside the container.
func (s *Store) StoreObject(ctx context.Context, container, name, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	dir, err := s.containerDir(container)
	if err != nil {
		return 0, err
	}

	clean := filepath.Clean(name)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return 0, fmt.Errorf("invalid object name")
	}

	fullPath := filepath.Join(dir, clean)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("write body: %w", err)
	}
	_ = contentType
	return written, nil
}

func (s *Store) containerDir(name string) (string, error) {
	clean := filepath.Clean(name)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid container name")
	}
	return filepath.Join(s.baseDir, clean), nil
}

var _ object.ContainerStore = (*Store)(nil)
