package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"qgate/core/storage"
)

// Compile-time check that Storage implements the storage contract.
var _ storage.Storage = (*Storage)(nil)

// Storage writes uploads to a directory tree rooted at root, one
// subdirectory per proposal.
type Storage struct {
	root string
}

// New creates the root directory if needed and returns a filesystem
// backed storage.
func New(root string) (*Storage, error) {
	if root == "" {
		return nil, ErrInvalidRoot
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	return &Storage{root: root}, nil
}

// Save writes data to <root>/<proposal>/<filename> in a single
// WriteFile call. Atomicity against concurrent readers is only as
// strong as the filesystem's single-write guarantee.
func (s *Storage) Save(_ context.Context, proposal, filename string, data []byte) (string, error) {
	if err := storage.ValidateName(proposal); err != nil {
		return "", err
	}
	if err := storage.ValidateName(filename); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, proposal)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create proposal directory: %w", err)
	}

	dst := filepath.Join(dir, filename)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return dst, nil
}

// List returns the proposal's files newest first; ties break by name
// so output is deterministic.
func (s *Storage) List(_ context.Context, proposal string) ([]storage.FileInfo, error) {
	if err := storage.ValidateName(proposal); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, proposal))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read proposal directory: %w", err)
	}

	files := make([]storage.FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Entry removed between ReadDir and Info.
			continue
		}
		files = append(files, storage.FileInfo{
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	slices.SortFunc(files, func(a, b storage.FileInfo) int {
		if a.ModTime.After(b.ModTime) {
			return -1
		}
		if a.ModTime.Before(b.ModTime) {
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return files, nil
}
