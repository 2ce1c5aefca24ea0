package storage

import (
	"context"
	"fmt"
)

// Snapshot archive modes
const (
	ModeLocal = "local"
	ModeGCS   = "gcs"
	ModeOff   = "off"
)

// NewSnapshotStore creates a snapshot store for the configured mode.
// ModeOff returns a nil store; callers treat nil as archiving disabled.
func NewSnapshotStore(ctx context.Context, mode, localDir, gcsBucket string) (SnapshotStore, error) {
	switch mode {
	case ModeLocal:
		if localDir == "" {
			localDir = "./predictions"
		}
		store, err := NewLocalStore(localDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local snapshot store: %w", err)
		}
		return store, nil

	case ModeGCS:
		if gcsBucket == "" {
			return nil, fmt.Errorf("GCS snapshot mode requires a bucket name")
		}
		store, err := NewGCSStore(ctx, gcsBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS snapshot store: %w", err)
		}
		return store, nil

	case ModeOff:
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported snapshot mode: %s", mode)
	}
}
