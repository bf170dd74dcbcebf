package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	rdb "github.com/redis/go-redis/v9"

	"qgate/core/session"
)

// ErrNilClient is returned by New when no Redis client is supplied.
var ErrNilClient = errors.New("sessionstore: redis client is required")

const keyPrefix = "qgate:session:"

// Client is the subset of the go-redis API the store uses. Declared here
// so tests can substitute a fake without a running server.
type Client interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *rdb.StatusCmd
	Get(ctx context.Context, key string) *rdb.StringCmd
	Del(ctx context.Context, keys ...string) *rdb.IntCmd
}

// Store keeps sessions in Redis with a server-side TTL equal to the time
// remaining until expiry. This is the hardened deployment: atomic writes
// and no sweep needed.
type Store struct {
	client Client
	now    func() time.Time
}

var _ session.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a store over an established Redis client.
func New(client Client, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	s := &Store{client: client, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save writes the record with a TTL matching its remaining lifetime.
// Saving an already-expired record deletes the key instead, which keeps
// the invalidation contract: later Gets report the session gone.
func (s *Store) Save(ctx context.Context, sess session.Session) error {
	if !session.ValidID(sess.ID) {
		return session.ErrInvalidID
	}

	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		if err := s.client.Del(ctx, keyPrefix+sess.ID).Err(); err != nil {
			return fmt.Errorf("sessionstore: delete %s: %w", sess.ID, err)
		}
		return nil
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("sessionstore: encode %s: %w", sess.ID, err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID, data, ttl).Err(); err != nil {
		return fmt.Errorf("sessionstore: write %s: %w", sess.ID, err)
	}
	return nil
}

// Get returns the record for id, or session.ErrNotFound once the TTL has
// reaped it.
func (s *Store) Get(ctx context.Context, id string) (session.Session, error) {
	if !session.ValidID(id) {
		return session.Session{}, session.ErrInvalidID
	}

	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, rdb.Nil) {
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

// DeleteExpired is a no-op: Redis expires keys server-side.
func (s *Store) DeleteExpired(context.Context) (int, error) {
	return 0, nil
}
