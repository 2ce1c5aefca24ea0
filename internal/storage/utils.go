package storage

import (
	"fmt"
	"strings"
	"time"
)

// SnapshotFolderPath generates a consistent folder path for snapshots.
// Format: predictions/YYYY/MM/DD/Prediction-YYYY-MM-DD-HH-MM-SS
func SnapshotFolderPath(timestamp time.Time) string {
	return fmt.Sprintf("predictions/%04d/%02d/%02d/Prediction-%04d-%02d-%02d-%02d-%02d-%02d",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".txt"):
		return "text/plain"
	case strings.HasSuffix(filename, ".html"):
		return "text/html"
	default:
		return "application/octet-stream"
	}
}
