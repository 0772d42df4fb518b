// Package artifacts stores generated report artifacts. The local store
// writes to a directory and hands back file URIs, which is enough for the
// demo and for tests.
package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes artifacts under a base directory.
type LocalStore struct {
	dir string
}

// NewLocalStore ensures the directory exists and returns the store.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Upload writes the artifact and returns its file URI. The content type is
// recorded in the name by the caller; the local store does not index it.
func (s *LocalStore) Upload(_ context.Context, name string, _ string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return "file://" + abs, nil
}
