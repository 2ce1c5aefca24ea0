package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// LocalStore archives snapshots on the local filesystem
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a local snapshot store rooted at baseDir
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalStore{baseDir: baseDir}, nil
}

// Close is a no-op for local storage
func (l *LocalStore) Close() error {
	return nil
}

// Store writes one snapshot file under the folder for the given timestamp
func (l *LocalStore) Store(ctx context.Context, data []byte, filename string, timestamp time.Time) error {
	filePath := filepath.Join(l.baseDir, SnapshotFolderPath(timestamp), filename)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(filePath), err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return nil
}

// Get retrieves a stored snapshot file by its path relative to the base dir
func (l *LocalStore) Get(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, path))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}

// List returns recent snapshot paths, newest first
func (l *LocalStore) List(ctx context.Context, limit int) ([]string, error) {
	root := filepath.Join(l.baseDir, "predictions")

	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if !info.IsDir() && strings.HasSuffix(info.Name(), ".json") {
			relPath, _ := filepath.Rel(l.baseDir, path)
			paths = append(paths, filepath.ToSlash(relPath))
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to walk snapshots: %w", err)
	}

	// Folder names are timestamped, so lexical order is chronological
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))

	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}

	return paths, nil
}
