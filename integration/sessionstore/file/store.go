package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"qgate/core/session"
)

// ErrInvalidDir is returned when the store root cannot be created.
var ErrInvalidDir = errors.New("sessionstore: invalid directory")

// Store keeps one JSON file per session under a root directory. It is the
// shared-disk deployment: simple, inspectable, and serialized only by the
// filesystem's single-file-write atomicity.
type Store struct {
	dir string
	now func() time.Time
}

var _ session.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used by DeleteExpired. Intended for
// tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates the root directory if needed and returns the store.
func New(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidDir)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Join(ErrInvalidDir, err)
	}
	s := &Store{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save writes the record as a single file operation.
func (s *Store) Save(_ context.Context, sess session.Session) error {
	if !session.ValidID(sess.ID) {
		return session.ErrInvalidID
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("sessionstore: encode %s: %w", sess.ID, err)
	}
	if err := os.WriteFile(s.path(sess.ID), data, 0o600); err != nil {
		return fmt.Errorf("sessionstore: write %s: %w", sess.ID, err)
	}
	return nil
}

// Get reads the record back verbatim. Missing and unreadable records both
// surface as session.ErrNotFound: a record that cannot be parsed can never
// validate, so callers treat it the same way.
func (s *Store) Get(_ context.Context, id string) (session.Session, error) {
	if !session.ValidID(id) {
		return session.Session{}, session.ErrInvalidID
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return session.Session{}, session.ErrNotFound
		}
		return session.Session{}, fmt.Errorf("sessionstore: read %s: %w", id, err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, fmt.Errorf("%w: corrupt record %s", session.ErrNotFound, id)
	}
	return sess, nil
}

// DeleteExpired removes every parseable record whose expiry has passed.
// Unreadable files are skipped; their errors are joined into the result.
func (s *Store) DeleteExpired(_ context.Context) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("sessionstore: scan %s: %w", s.dir, err)
	}

	now := s.now()
	removed := 0
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		var sess session.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		if !sess.IsExpired(now) {
			continue
		}
		if err := os.Remove(path); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
