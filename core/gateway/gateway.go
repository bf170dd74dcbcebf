package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"qgate/core/auth"
	"qgate/core/binder"
	"qgate/core/cookie"
	"qgate/core/logger"
	"qgate/core/report"
	"qgate/core/session"
	"qgate/core/sheet"
	"qgate/core/storage"
	"qgate/core/upload"
)

// DefaultCookieName is the session envelope cookie written on login.
const DefaultCookieName = "qgate_session"

// SheetFetcher pulls a named external sheet exported as workbook bytes.
// integration/sheets provides the production implementation.
type SheetFetcher interface {
	Fetch(ctx context.Context, name string) (filename string, data []byte, err error)
}

// Deps carries the collaborators a Gateway orchestrates. Sessions,
// Cookies, Auth, Checker, Uploads, Storage and Formatter are required;
// Sheets is optional (nil disables the external-sheet input source) and
// Logger defaults to slog.Default().
type Deps struct {
	Sessions  *session.Manager
	Cookies   *cookie.Manager
	Auth      *auth.Authenticator
	Checker   sheet.Checker
	Uploads   *upload.Manager
	Storage   storage.Storage
	Sheets    SheetFetcher
	Formatter *report.Formatter
	Logger    *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(g *Gateway) { g.cookieName = name }
}

// WithBinder overrides the form binder.
func WithBinder(b binder.Binder) Option {
	return func(g *Gateway) { g.bind = b }
}

// Gateway handles the two routes of the upload UI. It holds no per-request
// state: every request resolves its own session and runs to completion,
// and all cross-request state lives in the session store and the file
// storage.
type Gateway struct {
	sessions   *session.Manager
	cookies    *cookie.Manager
	auth       *auth.Authenticator
	checker    sheet.Checker
	uploads    *upload.Manager
	files      storage.Storage
	sheets     SheetFetcher
	formatter  *report.Formatter
	bind       binder.Binder
	logger     *slog.Logger
	cookieName string
}

// New validates the dependency set and builds a Gateway.
func New(deps Deps, opts ...Option) (*Gateway, error) {
	switch {
	case deps.Sessions == nil:
		return nil, fmt.Errorf("%w: session manager", ErrMissingDependency)
	case deps.Cookies == nil:
		return nil, fmt.Errorf("%w: cookie manager", ErrMissingDependency)
	case deps.Auth == nil:
		return nil, fmt.Errorf("%w: authenticator", ErrMissingDependency)
	case deps.Checker == nil:
		return nil, fmt.Errorf("%w: checker", ErrMissingDependency)
	case deps.Uploads == nil:
		return nil, fmt.Errorf("%w: upload manager", ErrMissingDependency)
	case deps.Storage == nil:
		return nil, fmt.Errorf("%w: storage", ErrMissingDependency)
	case deps.Formatter == nil:
		return nil, fmt.Errorf("%w: report formatter", ErrMissingDependency)
	}

	g := &Gateway{
		sessions:   deps.Sessions,
		cookies:    deps.Cookies,
		auth:       deps.Auth,
		checker:    deps.Checker,
		uploads:    deps.Uploads,
		files:      deps.Storage,
		sheets:     deps.Sheets,
		formatter:  deps.Formatter,
		bind:       binder.Form(),
		logger:     deps.Logger,
		cookieName: DefaultCookieName,
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// sessionInfo is the per-request view of the client's session state.
// id is the envelope id even when the session is stale, so logout can
// still invalidate the record.
type sessionInfo struct {
	session   session.Session
	id        string
	valid     bool
	presented bool
}

// currentSession resolves the signed envelope cookie against the session
// store. A missing, tampered or unparseable cookie is treated exactly like
// no cookie at all: the request is anonymous.
func (g *Gateway) currentSession(r *http.Request) sessionInfo {
	raw, err := g.cookies.Get(r, g.cookieName)
	if err != nil {
		return sessionInfo{}
	}

	var envelope session.Session
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil || envelope.ID == "" {
		return sessionInfo{}
	}

	info := sessionInfo{id: envelope.ID, presented: true}
	if s, ok := g.sessions.Validate(r.Context(), envelope.ID); ok {
		info.session = s
		info.valid = true
	}
	return info
}

// issueSession writes the session envelope cookie. The envelope carries
// the full session snapshot (id, timestamps, backend, display name), all
// of it client-visible on purpose: only the id grants anything, and only
// against a matching persisted record.
func (g *Gateway) issueSession(w http.ResponseWriter, r *http.Request, s session.Session) {
	envelope, err := json.Marshal(s)
	if err != nil {
		g.logger.ErrorContext(r.Context(), "failed to encode session envelope",
			logger.Component("gateway"), logger.Error(err))
		return
	}

	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	if err := g.cookies.Set(w, g.cookieName, string(envelope), cookie.WithMaxAge(maxAge)); err != nil {
		// The session still exists server-side; the user just will not
		// be recognized on the next request.
		g.logger.ErrorContext(r.Context(), "failed to set session cookie",
			logger.Component("gateway"), logger.Error(err))
	}
}

// clearSession expires the envelope cookie.
func (g *Gateway) clearSession(w http.ResponseWriter) {
	g.cookies.Delete(w, g.cookieName)
}
