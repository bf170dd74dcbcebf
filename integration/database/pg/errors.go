package pg

import "errors"

// Domain-specific PostgreSQL errors. Check with errors.Is for retry logic
// and user-facing messages.
var (
	ErrFailedToParseConnString = errors.New("failed to parse postgres connection string")
	ErrNotReady                = errors.New("postgres did not become ready within the given time period")
	ErrHealthcheckFailed       = errors.New("postgres healthcheck failed")
	ErrMigrationFailed         = errors.New("postgres migration failed")
)
