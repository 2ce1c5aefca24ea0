package storage

import (
	"context"
	"time"
)

// SnapshotStore archives prediction result artifacts. Archiving is
// write-only audit output: nothing in the request path reads it back.
type SnapshotStore interface {
	// Close releases any underlying resources
	Close() error

	// Store writes one snapshot file under the folder for the given timestamp
	Store(ctx context.Context, data []byte, filename string, timestamp time.Time) error

	// Get retrieves a stored snapshot file by its path
	Get(ctx context.Context, path string) ([]byte, error)

	// List returns recent snapshot paths, newest first
	List(ctx context.Context, limit int) ([]string, error)
}
