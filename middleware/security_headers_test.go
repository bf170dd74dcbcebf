package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"qgate/middleware"
)

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	serve := func(mw func(http.Handler) http.Handler, path string) *httptest.ResponseRecorder {
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		return rec
	}

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		rec := serve(middleware.SecurityHeaders(), "/")

		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
		assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
		assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("dash suppresses a default header", func(t *testing.T) {
		t.Parallel()

		rec := serve(middleware.SecurityHeadersWithConfig(middleware.SecurityHeadersConfig{
			FrameOptions: "-",
		}), "/")

		assert.Empty(t, rec.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	})

	t.Run("optional headers when configured", func(t *testing.T) {
		t.Parallel()

		rec := serve(middleware.SecurityHeadersWithConfig(middleware.SecurityHeadersConfig{
			ContentSecurityPolicy: "default-src 'self'",
			HSTSMaxAge:            31536000,
		}), "/")

		assert.Equal(t, "default-src 'self'", rec.Header().Get("Content-Security-Policy"))
		assert.Equal(t, "max-age=31536000; includeSubDomains", rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("skip leaves the response bare", func(t *testing.T) {
		t.Parallel()

		rec := serve(middleware.SecurityHeadersWithConfig(middleware.SecurityHeadersConfig{
			Skip: func(r *http.Request) bool { return r.URL.Path == "/healthz" },
		}), "/healthz")

		assert.Empty(t, rec.Header().Get("X-Content-Type-Options"))
		assert.Empty(t, rec.Header().Get("X-Frame-Options"))
	})
}
