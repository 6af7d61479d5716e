package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LocalStorage persists file blobs under a base directory. Each blob gets a
// fresh random name unrelated to the logical filename, so uploads can never
// collide or escape the base directory.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{basePath: basePath}
}

// Save writes data to a new uniquely-named file and returns its absolute
// path. The write goes through a temp file and a rename, so a crash mid-write
// never leaves a partial blob at the final path.
func (s *LocalStorage) Save(data []byte) (string, error) {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage dir: %w", err)
	}

	tmpPath := filepath.Join(s.basePath, fmt.Sprintf("temp-%d", time.Now().UnixNano()))
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	defer os.Remove(tmpPath)

	finalPath := filepath.Join(s.basePath, uuid.NewString())
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to finalize blob: %w", err)
	}
	return finalPath, nil
}

// Read returns the bytes of a previously saved blob. A missing blob surfaces
// as an os.IsNotExist error.
func (s *LocalStorage) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}
