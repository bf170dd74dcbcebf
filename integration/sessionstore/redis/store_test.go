package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	rdb "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgate/core/session"
	sessionredis "qgate/integration/sessionstore/redis"
)

var testNow = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

const idA = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

// fakeClient records commands and serves canned values, standing in for a
// Redis server.
type fakeClient struct {
	values  map[string]string
	ttls    map[string]time.Duration
	deleted []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (f *fakeClient) Set(ctx context.Context, key string, value any, expiration time.Duration) *rdb.StatusCmd {
	f.values[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return rdb.NewStatusResult("OK", nil)
}

func (f *fakeClient) Get(ctx context.Context, key string) *rdb.StringCmd {
	v, ok := f.values[key]
	if !ok {
		return rdb.NewStringResult("", rdb.Nil)
	}
	return rdb.NewStringResult(v, nil)
}

func (f *fakeClient) Del(ctx context.Context, keys ...string) *rdb.IntCmd {
	n := int64(0)
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			n++
		}
		f.deleted = append(f.deleted, key)
	}
	return rdb.NewIntResult(n, nil)
}

func newStore(t *testing.T, client sessionredis.Client) *sessionredis.Store {
	t.Helper()
	store, err := sessionredis.New(client, sessionredis.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	return store
}

func TestStore_SaveGet(t *testing.T) {
	ctx := context.Background()

	t.Run("ttl equals time to expiry", func(t *testing.T) {
		client := newFakeClient()
		store := newStore(t, client)

		sess := session.Session{
			ID:          idA,
			CreatedAt:   testNow,
			ExpiresAt:   testNow.Add(3 * time.Hour),
			Backend:     "ldap",
			DisplayName: "Jane Staff",
		}
		require.NoError(t, store.Save(ctx, sess))
		assert.Equal(t, 3*time.Hour, client.ttls["qgate:session:"+idA])

		got, err := store.Get(ctx, idA)
		require.NoError(t, err)
		assert.Equal(t, "Jane Staff", got.DisplayName)
	})

	t.Run("saving expired session deletes the key", func(t *testing.T) {
		client := newFakeClient()
		store := newStore(t, client)

		live := session.Session{ID: idA, ExpiresAt: testNow.Add(time.Hour)}
		require.NoError(t, store.Save(ctx, live))

		dead := live
		dead.ExpiresAt = testNow.Add(-time.Second)
		require.NoError(t, store.Save(ctx, dead))

		_, err := store.Get(ctx, idA)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		store := newStore(t, newFakeClient())
		_, err := store.Get(ctx, idA)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("corrupt value reads as not found", func(t *testing.T) {
		client := newFakeClient()
		client.values["qgate:session:"+idA] = "{broken"
		store := newStore(t, client)

		_, err := store.Get(ctx, idA)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("malformed id rejected", func(t *testing.T) {
		store := newStore(t, newFakeClient())
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, session.ErrInvalidID)
	})

	t.Run("stored value is plain json", func(t *testing.T) {
		client := newFakeClient()
		store := newStore(t, client)

		require.NoError(t, store.Save(ctx, session.Session{ID: idA, ExpiresAt: testNow.Add(time.Hour)}))

		var decoded session.Session
		require.NoError(t, json.Unmarshal([]byte(client.values["qgate:session:"+idA]), &decoded))
		assert.Equal(t, idA, decoded.ID)
	})
}

func TestStore_DeleteExpired(t *testing.T) {
	store := newStore(t, newFakeClient())
	n, err := store.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "server-side TTL handles expiry")
}

func TestNew_Validation(t *testing.T) {
	_, err := sessionredis.New(nil)
	assert.ErrorIs(t, err, sessionredis.ErrNilClient)
}
