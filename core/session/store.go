package session

import "context"

// Store persists session records keyed by id. Implementations must return
// ErrNotFound from Get when no record exists for the id.
type Store interface {
	// Save writes or overwrites the record for s.ID.
	Save(ctx context.Context, s Session) error

	// Get returns the record for id, or ErrNotFound.
	Get(ctx context.Context, id string) (Session, error)

	// DeleteExpired removes records whose expiry has passed and reports
	// how many were removed. Stores with server-side expiry may no-op.
	DeleteExpired(ctx context.Context) (int, error)
}
