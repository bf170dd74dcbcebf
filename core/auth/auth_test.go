package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgate/core/auth"
)

// stubBackend answers with a fixed result and counts calls.
type stubBackend struct {
	name    string
	display string
	err     error
	calls   int
}

func (b *stubBackend) Name() string { return b.name }

func (b *stubBackend) Authenticate(ctx context.Context, username, secret string) (string, error) {
	b.calls++
	if b.err != nil {
		return "", b.err
	}
	return b.display, nil
}

func TestAuthenticator_Fallback(t *testing.T) {
	ctx := context.Background()

	t.Run("primary success skips secondary", func(t *testing.T) {
		primary := &stubBackend{name: "ldap", display: "Jane Staff"}
		secondary := &stubBackend{name: "progdb", display: "ignored"}

		a, err := auth.New(primary, secondary)
		require.NoError(t, err)

		out := a.Authenticate(ctx, "jane", "pw")
		require.True(t, out.OK)
		assert.Equal(t, "ldap", out.Backend)
		assert.Equal(t, "Jane Staff", out.DisplayName)
		assert.Zero(t, secondary.calls)
		assert.Empty(t, out.Failures)
	})

	t.Run("primary unreachable falls through to secondary", func(t *testing.T) {
		primary := &stubBackend{name: "ldap", err: fmt.Errorf("%w: dial tcp", auth.ErrBackendUnreachable)}
		secondary := &stubBackend{name: "progdb", display: "Jane Staff"}

		a, err := auth.New(primary, secondary)
		require.NoError(t, err)

		out := a.Authenticate(ctx, "jane", "pw")
		require.True(t, out.OK)
		assert.Equal(t, "progdb", out.Backend)
		assert.Equal(t, "Jane Staff", out.DisplayName, "success must carry the secondary's display name")
	})

	t.Run("primary rejection still falls through", func(t *testing.T) {
		primary := &stubBackend{name: "ldap", err: auth.ErrCredentialsRejected}
		secondary := &stubBackend{name: "progdb", display: "Jane Staff"}

		a, err := auth.New(primary, secondary)
		require.NoError(t, err)

		out := a.Authenticate(ctx, "jane", "pw")
		require.True(t, out.OK)
		assert.Equal(t, 1, primary.calls)
		assert.Equal(t, 1, secondary.calls)
	})

	t.Run("both failing carries both reasons in order", func(t *testing.T) {
		primary := &stubBackend{name: "ldap", err: auth.ErrBackendUnreachable}
		secondary := &stubBackend{name: "progdb", err: auth.ErrCredentialsRejected}

		a, err := auth.New(primary, secondary)
		require.NoError(t, err)

		out := a.Authenticate(ctx, "jane", "pw")
		require.False(t, out.OK)
		require.Len(t, out.Failures, 2)
		assert.Equal(t, auth.Failure{Backend: "ldap", Reason: auth.ReasonUnreachable}, out.Failures[0])
		assert.Equal(t, auth.Failure{Backend: "progdb", Reason: auth.ReasonRejected}, out.Failures[1])
		assert.Equal(t, "ldap: backend unreachable; progdb: credentials rejected", out.FailureReason())
	})

	t.Run("unclassified error counts as unreachable", func(t *testing.T) {
		primary := &stubBackend{name: "ldap", err: errors.New("something odd")}
		secondary := &stubBackend{name: "progdb", err: auth.ErrCredentialsRejected}

		a, err := auth.New(primary, secondary)
		require.NoError(t, err)

		out := a.Authenticate(ctx, "jane", "pw")
		require.False(t, out.OK)
		assert.Equal(t, auth.ReasonUnreachable, out.Failures[0].Reason)
	})
}

func TestNew_Validation(t *testing.T) {
	b := &stubBackend{name: "x"}

	_, err := auth.New(nil, b)
	assert.ErrorIs(t, err, auth.ErrMissingBackend)

	_, err = auth.New(b, nil)
	assert.ErrorIs(t, err, auth.ErrMissingBackend)
}
