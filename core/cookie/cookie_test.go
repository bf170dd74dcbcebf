package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgate/core/cookie"
)

const testSecret = "test-secret-key-32-characters!!!"
const testSecret2 = "another-secret-key-32-chars!!!!!"

func requestWithCookies(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_SetGet(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "sid", "value123"))

		got, err := m.Get(requestWithCookies(t, w), "sid")
		require.NoError(t, err)
		assert.Equal(t, "value123", got)
	})

	t.Run("missing cookie", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err = m.Get(r, "absent")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("tampered value rejected", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "sid", "value123"))

		c := w.Result().Cookies()[0]
		c.Value = "x" + c.Value
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)

		_, err = m.Get(r, "sid")
		assert.ErrorIs(t, err, cookie.ErrSignatureInvalid)
	})

	t.Run("value replayed under another name rejected", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "sid", "value123"))

		c := w.Result().Cookies()[0]
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "other", Value: c.Value})

		_, err = m.Get(r, "other")
		assert.ErrorIs(t, err, cookie.ErrSignatureInvalid)
	})

	t.Run("oversized value rejected", func(t *testing.T) {
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		err = m.Set(w, "big", strings.Repeat("a", 5000))
		assert.ErrorIs(t, err, cookie.ErrValueTooLong)
	})
}

func TestManager_KeyRotation(t *testing.T) {
	t.Run("old key still verifies", func(t *testing.T) {
		old, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, old.Set(w, "sid", "survives-rotation"))

		rotated, err := cookie.New([]string{testSecret2, testSecret})
		require.NoError(t, err)

		got, err := rotated.Get(requestWithCookies(t, w), "sid")
		require.NoError(t, err)
		assert.Equal(t, "survives-rotation", got)
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		a, err := cookie.New([]string{testSecret})
		require.NoError(t, err)
		b, err := cookie.New([]string{testSecret2})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, a.Set(w, "sid", "foreign"))

		_, err = b.Get(requestWithCookies(t, w), "sid")
		assert.ErrorIs(t, err, cookie.ErrSignatureInvalid)
	})
}

func TestManager_Delete(t *testing.T) {
	m, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.Delete(w, "sid")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestNew_Validation(t *testing.T) {
	t.Run("no secrets", func(t *testing.T) {
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecrets)
	})

	t.Run("weak secret", func(t *testing.T) {
		_, err := cookie.New([]string{"short"})
		assert.ErrorIs(t, err, cookie.ErrWeakSecret)
	})
}

func TestNewFromConfig(t *testing.T) {
	cfg := cookie.Config{
		Secrets:  testSecret + " , " + testSecret2,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	m, err := cookie.NewFromConfig(cfg)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "sid", "v"))

	c := w.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}
