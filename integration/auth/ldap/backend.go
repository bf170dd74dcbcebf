package ldap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	goldap "github.com/go-ldap/ldap/v3"

	"qgate/core/auth"
)

// ErrInvalidConfig is returned by New for unusable settings.
var ErrInvalidConfig = errors.New("ldap: invalid config")

// Config holds directory settings loaded from the environment. The bind DN
// template receives the escaped username, e.g.
// "uid=%s,ou=people,dc=obs,dc=org".
type Config struct {
	URL             string        `env:"LDAP_URL,required"`
	BindDNTemplate  string        `env:"LDAP_BIND_DN_TEMPLATE,required"`
	DisplayNameAttr string        `env:"LDAP_DISPLAY_NAME_ATTR" envDefault:"cn"`
	Timeout         time.Duration `env:"LDAP_TIMEOUT" envDefault:"10s"`
}

// Conn is the subset of the LDAP client the backend uses. Declared here so
// tests can substitute a fake without a directory server.
type Conn interface {
	Bind(username, password string) error
	Search(req *goldap.SearchRequest) (*goldap.SearchResult, error)
	Close() error
}

// DialFunc opens a directory connection.
type DialFunc func(ctx context.Context, url string, timeout time.Duration) (Conn, error)

// Backend authenticates against a staff directory by binding as the user
// and reading a display-name attribute from the bound entry.
type Backend struct {
	cfg  Config
	dial DialFunc
}

var _ auth.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithDialer overrides how connections are opened. Intended for tests.
func WithDialer(dial DialFunc) Option {
	return func(b *Backend) { b.dial = dial }
}

// New validates the config and returns the backend.
func New(cfg Config, opts ...Option) (*Backend, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrInvalidConfig)
	}
	if !strings.Contains(cfg.BindDNTemplate, "%s") {
		return nil, fmt.Errorf("%w: bind DN template needs a %%s placeholder", ErrInvalidConfig)
	}
	if cfg.DisplayNameAttr == "" {
		cfg.DisplayNameAttr = "cn"
	}

	b := &Backend{cfg: cfg, dial: dialURL}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Name implements auth.Backend.
func (b *Backend) Name() string { return "ldap" }

// Authenticate binds as the derived DN. Dial problems classify as
// unreachable; an invalid-credentials result code classifies as rejected.
// The display name falls back to the username when the attribute is
// missing, since the bind itself already proved the credentials.
func (b *Backend) Authenticate(ctx context.Context, username, secret string) (string, error) {
	if username == "" || secret == "" {
		// An empty secret must never reach the directory: some servers
		// treat it as an anonymous bind and report success.
		return "", fmt.Errorf("%w: empty credentials", auth.ErrCredentialsRejected)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", auth.ErrBackendUnreachable, err)
	}

	conn, err := b.dial(ctx, b.cfg.URL, b.cfg.Timeout)
	if err != nil {
		return "", fmt.Errorf("%w: dial %s: %v", auth.ErrBackendUnreachable, b.cfg.URL, err)
	}
	defer conn.Close()

	dn := fmt.Sprintf(b.cfg.BindDNTemplate, goldap.EscapeDN(username))
	if err := conn.Bind(dn, secret); err != nil {
		if goldap.IsErrorWithCode(err, goldap.LDAPResultInvalidCredentials) {
			return "", fmt.Errorf("%w: bind refused", auth.ErrCredentialsRejected)
		}
		return "", fmt.Errorf("%w: bind: %v", auth.ErrBackendUnreachable, err)
	}

	return b.displayName(conn, dn), nil
}

// displayName reads the configured attribute from the bound entry.
func (b *Backend) displayName(conn Conn, dn string) string {
	req := goldap.NewSearchRequest(
		dn,
		goldap.ScopeBaseObject,
		goldap.NeverDerefAliases,
		1, 0, false,
		"(objectClass=*)",
		[]string{b.cfg.DisplayNameAttr},
		nil,
	)

	res, err := conn.Search(req)
	if err != nil || len(res.Entries) == 0 {
		return dnUsername(dn)
	}
	if v := res.Entries[0].GetAttributeValue(b.cfg.DisplayNameAttr); v != "" {
		return v
	}
	return dnUsername(dn)
}

// dnUsername recovers the bare username from the first RDN for the
// fallback display name.
func dnUsername(dn string) string {
	first, _, _ := strings.Cut(dn, ",")
	if _, value, ok := strings.Cut(first, "="); ok {
		return value
	}
	return dn
}

func dialURL(_ context.Context, url string, timeout time.Duration) (Conn, error) {
	opts := []goldap.DialOpt{}
	if timeout > 0 {
		opts = append(opts, goldap.DialWithDialer(&net.Dialer{Timeout: timeout}))
	}
	conn, err := goldap.DialURL(url, opts...)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		conn.SetTimeout(timeout)
	}
	return conn, nil
}
