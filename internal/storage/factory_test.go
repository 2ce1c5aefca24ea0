package storage

import (
	"context"
	"testing"
)

func TestNewSnapshotStoreLocal(t *testing.T) {
	store, err := NewSnapshotStore(context.Background(), ModeLocal, t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewSnapshotStore failed: %v", err)
	}
	if store == nil {
		t.Fatal("Expected a store for local mode, got nil")
	}
	store.Close()
}

func TestNewSnapshotStoreOff(t *testing.T) {
	store, err := NewSnapshotStore(context.Background(), ModeOff, "", "")
	if err != nil {
		t.Fatalf("NewSnapshotStore failed: %v", err)
	}
	if store != nil {
		t.Error("Expected nil store for off mode")
	}
}

func TestNewSnapshotStoreGCSRequiresBucket(t *testing.T) {
	_, err := NewSnapshotStore(context.Background(), ModeGCS, "", "")
	if err == nil {
		t.Error("Expected error for GCS mode without a bucket")
	}
}

func TestNewSnapshotStoreUnknownMode(t *testing.T) {
	_, err := NewSnapshotStore(context.Background(), "s3", "", "")
	if err == nil {
		t.Error("Expected error for unsupported mode")
	}
}
