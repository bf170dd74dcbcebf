package progdb

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"qgate/core/auth"
	"qgate/integration/database/pg"
)

// ErrNilDB is returned by New when no database handle is supplied.
var ErrNilDB = errors.New("progdb: database is required")

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB is the query surface the backend needs; *pgxpool.Pool satisfies it.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Backend authenticates against the program-management database. Staff not
// present in the directory, typically external proposal investigators,
// are provisioned here.
type Backend struct {
	db DB
}

var _ auth.Backend = (*Backend)(nil)

// New returns the backend over an established database handle.
func New(db DB) (*Backend, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	return &Backend{db: db}, nil
}

// Name implements auth.Backend.
func (b *Backend) Name() string { return "progdb" }

const credentialQuery = `SELECT full_name, password_hash FROM auth_users WHERE email = $1`

// Authenticate looks the account up by email and compares the bcrypt
// hash. An unknown account and a wrong secret classify identically as
// rejected; only transport-level failures classify as unreachable.
func (b *Backend) Authenticate(ctx context.Context, username, secret string) (string, error) {
	if username == "" || secret == "" {
		return "", fmt.Errorf("%w: empty credentials", auth.ErrCredentialsRejected)
	}

	var fullName, hash string
	err := b.db.QueryRow(ctx, credentialQuery, username).Scan(&fullName, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: unknown account", auth.ErrCredentialsRejected)
		}
		return "", fmt.Errorf("%w: lookup: %v", auth.ErrBackendUnreachable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return "", fmt.Errorf("%w: password mismatch", auth.ErrCredentialsRejected)
	}
	return fullName, nil
}

// Migrate applies the auth_users schema through the shared pg helper.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return pg.Migrate(ctx, pool, migrationsFS, "migrations")
}
