package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// MaxCookieSize is the browser-imposed ceiling on a serialized cookie.
const MaxCookieSize = 4096

// minSecretLength guards against weak HMAC keys.
const minSecretLength = 32

// Manager signs and verifies cookie values with HMAC-SHA256. Multiple
// secrets enable key rotation: the first secret signs new cookies, every
// secret is tried on verification.
type Manager struct {
	secrets  [][]byte
	defaults Options
	maxSize  int
}

// New creates a Manager. At least one secret of 32+ characters is
// required; extra secrets are accepted for verification only.
func New(secrets []string, opts ...Option) (*Manager, error) {
	if len(secrets) == 0 {
		return nil, ErrNoSecrets
	}
	keys := make([][]byte, 0, len(secrets))
	for _, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: need at least %d characters", ErrWeakSecret, minSecretLength)
		}
		keys = append(keys, []byte(s))
	}

	m := &Manager{
		secrets: keys,
		defaults: Options{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		maxSize: MaxCookieSize,
	}
	for _, opt := range opts {
		opt(&m.defaults)
	}
	return m, nil
}

// Set writes a signed cookie. The signature covers both the cookie name
// and the value, so a value cannot be replayed under a different name.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	o := m.defaults
	for _, opt := range opts {
		opt(&o)
	}

	encoded := m.encode(name, value)
	if len(name)+len(encoded) > m.maxSize {
		return fmt.Errorf("%w: %d bytes", ErrValueTooLong, len(name)+len(encoded))
	}

	http.SetCookie(w, o.cookie(name, encoded))
	return nil
}

// Get returns the verified value of a signed cookie. ErrCookieNotFound is
// returned when the cookie is absent, ErrSignatureInvalid when the value
// was tampered with or signed by an unknown key.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", ErrCookieNotFound
	}
	return m.decode(name, c.Value)
}

// Delete expires the cookie immediately.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	o := m.defaults
	for _, opt := range opts {
		opt(&o)
	}
	o.MaxAge = -1

	http.SetCookie(w, o.cookie(name, ""))
}

func (m *Manager) encode(name, value string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(value))
	sig := m.sign(m.secrets[0], name, payload)
	return payload + "." + sig
}

func (m *Manager) decode(name, encoded string) (string, error) {
	payload, sig, ok := strings.Cut(encoded, ".")
	if !ok {
		return "", ErrSignatureInvalid
	}

	verified := false
	for _, key := range m.secrets {
		if hmac.Equal([]byte(sig), []byte(m.sign(key, name, payload))) {
			verified = true
			break
		}
	}
	if !verified {
		return "", ErrSignatureInvalid
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrSignatureInvalid
	}
	return string(raw), nil
}

func (m *Manager) sign(key []byte, name, payload string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(name))
	mac.Write([]byte{'|'})
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
