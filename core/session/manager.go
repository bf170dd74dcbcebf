package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"qgate/core/logger"
)

// DefaultTTL is how long a session stays valid after creation.
const DefaultTTL = 3 * time.Hour

// Manager issues, validates, and invalidates sessions over a Store.
type Manager struct {
	store  Store
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL overrides the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

// WithLogger sets the logger used for non-fatal store failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// New creates a Manager over the given store.
func New(store Store, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	m := &Manager{
		store:  store,
		ttl:    DefaultTTL,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.ttl <= 0 {
		m.ttl = DefaultTTL
	}
	return m, nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create issues a session for an authenticated user and persists it.
// A persist failure is logged and non-fatal: the session is returned
// anyway and simply behaves as ephemeral, failing validation on the next
// request.
func (m *Manager) Create(ctx context.Context, backend, displayName string) Session {
	now := m.now()
	s := Session{
		ID:          newID(now),
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.ttl),
		Backend:     backend,
		DisplayName: displayName,
	}

	if err := m.store.Save(ctx, s); err != nil {
		m.logger.ErrorContext(ctx, "session persist failed, continuing ephemeral",
			logger.Component("session"),
			logger.Error(err),
		)
	}
	return s
}

// Validate reports whether id names a live session. It returns false when
// no id is presented, the id is malformed, no matching record exists, the
// store fails, or the TTL has elapsed. The persisted record is returned
// for rendering when valid.
func (m *Manager) Validate(ctx context.Context, id string) (Session, bool) {
	if id == "" || !ValidID(id) {
		return Session{}, false
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.ErrorContext(ctx, "session lookup failed",
				logger.Component("session"),
				logger.Error(err),
			)
		}
		return Session{}, false
	}

	if s.ID != id || s.IsExpired(m.now()) {
		return Session{}, false
	}
	return s, true
}

// Invalidate implements logout: the record's expiry is rewritten into the
// past and persisted, so later Validate calls fail while the record itself
// remains as history. Unknown ids are not an error.
func (m *Manager) Invalidate(ctx context.Context, id string) error {
	if id == "" || !ValidID(id) {
		return nil
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("session: invalidate lookup: %w", err)
	}

	s.ExpiresAt = m.now().Add(-time.Second)
	if err := m.store.Save(ctx, s); err != nil {
		return fmt.Errorf("session: invalidate persist: %w", err)
	}
	return nil
}

// CleanupExpired sweeps dead records from the store.
func (m *Manager) CleanupExpired(ctx context.Context) (int, error) {
	n, err := m.store.DeleteExpired(ctx)
	if err != nil {
		return n, fmt.Errorf("session: cleanup: %w", err)
	}
	return n, nil
}
