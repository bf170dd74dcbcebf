package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgate/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	t.Run("cloudflare header has top priority", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:4321"
		r.Header.Set("CF-Connecting-IP", "203.0.113.7")
		r.Header.Set("X-Forwarded-For", "198.51.100.2")
		r.Header.Set("X-Real-IP", "198.51.100.3")

		assert.Equal(t, "203.0.113.7", clientip.GetIP(r))
	})

	t.Run("digitalocean header beats forwarded chain", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:4321"
		r.Header.Set("DO-Connecting-IP", "203.0.113.8")
		r.Header.Set("X-Forwarded-For", "198.51.100.2")

		assert.Equal(t, "203.0.113.8", clientip.GetIP(r))
	})

	t.Run("forwarded chain uses leftmost entry", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:4321"
		r.Header.Set("X-Forwarded-For", "203.0.113.9, 70.41.3.18, 150.172.238.178")

		assert.Equal(t, "203.0.113.9", clientip.GetIP(r))
	})

	t.Run("forwarded chain entries may carry spaces", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:4321"
		r.Header.Set("X-Forwarded-For", "  203.0.113.10 , 70.41.3.18")

		assert.Equal(t, "203.0.113.10", clientip.GetIP(r))
	})

	t.Run("real ip header used when no forwarded chain", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:4321"
		r.Header.Set("X-Real-IP", "203.0.113.11")

		assert.Equal(t, "203.0.113.11", clientip.GetIP(r))
	})

	t.Run("remote address used without proxy headers", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.1:56789"

		assert.Equal(t, "192.0.2.1", clientip.GetIP(r))
	})

	t.Run("remote address without port", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.2"

		assert.Equal(t, "192.0.2.2", clientip.GetIP(r))
	})

	t.Run("ipv6 addresses are normalized", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.1:4321"
		r.Header.Set("X-Forwarded-For", "2001:DB8::1")

		assert.Equal(t, "2001:db8::1", clientip.GetIP(r))
	})

	t.Run("bracketed ipv6 remote address", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "[::1]:8080"

		assert.Equal(t, "::1", clientip.GetIP(r))
	})

	t.Run("malformed header falls through to next source", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.3:1234"
		r.Header.Set("CF-Connecting-IP", "not-an-ip")
		r.Header.Set("X-Real-IP", "203.0.113.12")

		assert.Equal(t, "203.0.113.12", clientip.GetIP(r))
	})

	t.Run("unspecified address is skipped", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.4:1234"
		r.Header.Set("X-Forwarded-For", "0.0.0.0")

		assert.Equal(t, "192.0.2.4", clientip.GetIP(r))
	})

	t.Run("falls back to raw remote address when nothing parses", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "garbage"
		r.Header.Set("X-Forwarded-For", "also-garbage")

		require.NotEmpty(t, clientip.GetIP(r))
		assert.Equal(t, "garbage", clientip.GetIP(r))
	})
}
