package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// FileInfo describes one stored upload.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Storage persists validated uploads grouped by proposal identifier.
// Implementations must reject names that fail ValidateName before
// touching the underlying medium.
type Storage interface {
	// Save writes data as a single operation and returns a
	// backend-specific location: a filesystem path or an object URL.
	Save(ctx context.Context, proposal, filename string, data []byte) (string, error)

	// List returns the stored files for a proposal, newest first.
	// An unknown proposal yields an empty result, not an error.
	List(ctx context.Context, proposal string) ([]FileInfo, error)
}

// ValidateName rejects path components that could escape the proposal
// directory or object prefix: separators, parent references, and empty
// or dot names.
func ValidateName(name string) error {
	if name == "" || name == "." ||
		strings.ContainsAny(name, `/\`) ||
		strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
