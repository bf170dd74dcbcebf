package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"qgate/core/session"
)

// mockStore implements session.Store for testing.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Save(ctx context.Context, s session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockStore) Get(ctx context.Context, id string) (session.Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(session.Session), args.Error(1)
}

func (m *mockStore) DeleteExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

var testNow = time.Date(2025, 4, 1, 12, 0, 0, 123456789, time.UTC)

func TestManager_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("issues session with ttl expiry", func(t *testing.T) {
		store := &mockStore{}
		store.On("Save", ctx, mock.AnythingOfType("session.Session")).Return(nil)

		m, err := session.New(store, session.WithTTL(3*time.Hour), session.WithClock(fixedClock(testNow)))
		require.NoError(t, err)

		s := m.Create(ctx, "ldap", "Jane Staff")
		assert.True(t, session.ValidID(s.ID), "id must be sha256 hex: %q", s.ID)
		assert.Equal(t, testNow, s.CreatedAt)
		assert.Equal(t, testNow.Add(3*time.Hour), s.ExpiresAt)
		assert.Equal(t, "ldap", s.Backend)
		assert.Equal(t, "Jane Staff", s.DisplayName)
		store.AssertExpectations(t)
	})

	t.Run("persist failure is non-fatal", func(t *testing.T) {
		store := &mockStore{}
		store.On("Save", ctx, mock.AnythingOfType("session.Session")).Return(errors.New("disk full"))

		m, err := session.New(store, session.WithClock(fixedClock(testNow)))
		require.NoError(t, err)

		s := m.Create(ctx, "progdb", "Jane Staff")
		assert.NotEmpty(t, s.ID, "session must be returned even when persistence fails")
	})

	t.Run("ids differ across creation instants", func(t *testing.T) {
		store := &mockStore{}
		store.On("Save", ctx, mock.AnythingOfType("session.Session")).Return(nil)

		at := testNow
		m, err := session.New(store, session.WithClock(func() time.Time {
			at = at.Add(time.Nanosecond)
			return at
		}))
		require.NoError(t, err)

		a := m.Create(ctx, "ldap", "A")
		b := m.Create(ctx, "ldap", "B")
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestManager_Validate(t *testing.T) {
	ctx := context.Background()
	id := "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

	newManager := func(t *testing.T, store session.Store) *session.Manager {
		t.Helper()
		m, err := session.New(store, session.WithClock(fixedClock(testNow)))
		require.NoError(t, err)
		return m
	}

	t.Run("live session validates", func(t *testing.T) {
		store := &mockStore{}
		store.On("Get", ctx, id).Return(session.Session{
			ID:          id,
			CreatedAt:   testNow.Add(-time.Hour),
			ExpiresAt:   testNow.Add(2 * time.Hour),
			Backend:     "ldap",
			DisplayName: "Jane Staff",
		}, nil)

		s, ok := newManager(t, store).Validate(ctx, id)
		require.True(t, ok)
		assert.Equal(t, "Jane Staff", s.DisplayName)
	})

	t.Run("empty id fails without store call", func(t *testing.T) {
		store := &mockStore{}
		_, ok := newManager(t, store).Validate(ctx, "")
		assert.False(t, ok)
		store.AssertNotCalled(t, "Get")
	})

	t.Run("malformed id fails without store call", func(t *testing.T) {
		store := &mockStore{}
		_, ok := newManager(t, store).Validate(ctx, "../evil")
		assert.False(t, ok)
		store.AssertNotCalled(t, "Get")
	})

	t.Run("unknown id fails without raising", func(t *testing.T) {
		store := &mockStore{}
		store.On("Get", ctx, id).Return(session.Session{}, session.ErrNotFound)

		_, ok := newManager(t, store).Validate(ctx, id)
		assert.False(t, ok)
	})

	t.Run("store failure fails closed", func(t *testing.T) {
		store := &mockStore{}
		store.On("Get", ctx, id).Return(session.Session{}, errors.New("io failure"))

		_, ok := newManager(t, store).Validate(ctx, id)
		assert.False(t, ok)
	})

	t.Run("expiry one second in the past fails", func(t *testing.T) {
		store := &mockStore{}
		store.On("Get", ctx, id).Return(session.Session{
			ID:        id,
			ExpiresAt: testNow.Add(-time.Second),
		}, nil)

		_, ok := newManager(t, store).Validate(ctx, id)
		assert.False(t, ok)
	})

	t.Run("expiry exactly now fails", func(t *testing.T) {
		store := &mockStore{}
		store.On("Get", ctx, id).Return(session.Session{
			ID:        id,
			ExpiresAt: testNow,
		}, nil)

		_, ok := newManager(t, store).Validate(ctx, id)
		assert.False(t, ok)
	})

	t.Run("record id mismatch fails", func(t *testing.T) {
		store := &mockStore{}
		store.On("Get", ctx, id).Return(session.Session{
			ID:        "0000000000000000000000000000000000000000000000000000000000000000",
			ExpiresAt: testNow.Add(time.Hour),
		}, nil)

		_, ok := newManager(t, store).Validate(ctx, id)
		assert.False(t, ok)
	})
}

func TestManager_Invalidate(t *testing.T) {
	ctx := context.Background()
	id := "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

	t.Run("rewrites expiry into the past", func(t *testing.T) {
		store := &mockStore{}
		store.On("Get", ctx, id).Return(session.Session{
			ID:        id,
			ExpiresAt: testNow.Add(time.Hour),
		}, nil)
		store.On("Save", ctx, mock.MatchedBy(func(s session.Session) bool {
			return s.ID == id && s.IsExpired(testNow)
		})).Return(nil)

		m, err := session.New(store, session.WithClock(fixedClock(testNow)))
		require.NoError(t, err)

		require.NoError(t, m.Invalidate(ctx, id))
		store.AssertExpectations(t)
	})

	t.Run("unknown id is not an error", func(t *testing.T) {
		store := &mockStore{}
		store.On("Get", ctx, id).Return(session.Session{}, session.ErrNotFound)

		m, err := session.New(store, session.WithClock(fixedClock(testNow)))
		require.NoError(t, err)

		assert.NoError(t, m.Invalidate(ctx, id))
		store.AssertNotCalled(t, "Save")
	})

	t.Run("persist failure surfaces", func(t *testing.T) {
		store := &mockStore{}
		store.On("Get", ctx, id).Return(session.Session{ID: id, ExpiresAt: testNow.Add(time.Hour)}, nil)
		store.On("Save", ctx, mock.AnythingOfType("session.Session")).Return(errors.New("disk full"))

		m, err := session.New(store, session.WithClock(fixedClock(testNow)))
		require.NoError(t, err)

		assert.Error(t, m.Invalidate(ctx, id))
	})
}

func TestNew_Validation(t *testing.T) {
	_, err := session.New(nil)
	assert.ErrorIs(t, err, session.ErrNilStore)
}

func TestManager_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	store := &mockStore{}
	store.On("DeleteExpired", ctx).Return(3, nil)

	m, err := session.New(store)
	require.NoError(t, err)

	n, err := m.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
