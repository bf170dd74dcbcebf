package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"qgate/core/logger"
)

// Backend validates one username/secret pair against one credential
// source. Authenticate returns the user's display name on success; on
// failure the error wraps ErrBackendUnreachable or ErrCredentialsRejected
// so the caller can classify without knowing the vendor.
type Backend interface {
	Name() string
	Authenticate(ctx context.Context, username, secret string) (displayName string, err error)
}

// Failure records why one backend turned a login down.
type Failure struct {
	Backend string
	Reason  string
}

// Outcome is the result of a full authentication attempt across backends.
type Outcome struct {
	OK          bool
	Backend     string
	DisplayName string
	Failures    []Failure
}

// FailureReason renders the collected failures for display, one
// "backend: reason" entry per backend in the order they were tried.
func (o Outcome) FailureReason() string {
	parts := make([]string, 0, len(o.Failures))
	for _, f := range o.Failures {
		parts = append(parts, f.Backend+": "+f.Reason)
	}
	return strings.Join(parts, "; ")
}

// Authenticator tries the primary backend first and falls through to the
// secondary on any primary failure. The fallback is unconditional: even a
// definitive credential rejection on the primary does not stop the
// secondary attempt, so users provisioned in only one backend can always
// log in, at the cost of a duplicated attempt on every bad-password case.
type Authenticator struct {
	primary   Backend
	secondary Backend
	logger    *slog.Logger
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithLogger sets the logger for per-backend failure records.
func WithLogger(l *slog.Logger) Option {
	return func(a *Authenticator) { a.logger = l }
}

// New builds an Authenticator over the two backends.
func New(primary, secondary Backend, opts ...Option) (*Authenticator, error) {
	if primary == nil || secondary == nil {
		return nil, ErrMissingBackend
	}
	a := &Authenticator{
		primary:   primary,
		secondary: secondary,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Authenticate runs the fallback chain. Secrets are never logged and never
// stored in the Outcome.
func (a *Authenticator) Authenticate(ctx context.Context, username, secret string) Outcome {
	var out Outcome

	for _, backend := range []Backend{a.primary, a.secondary} {
		displayName, err := backend.Authenticate(ctx, username, secret)
		if err == nil {
			out.OK = true
			out.Backend = backend.Name()
			out.DisplayName = displayName
			return out
		}

		reason := classify(err)
		out.Failures = append(out.Failures, Failure{Backend: backend.Name(), Reason: reason})
		a.logger.WarnContext(ctx, "authentication backend failed",
			logger.Component("auth"),
			slog.String("backend", backend.Name()),
			slog.String("reason", reason),
		)
	}
	return out
}

// classify maps a backend error onto the user-facing reason. Anything a
// backend failed to classify itself counts as unreachable: it says nothing
// about the credentials.
func classify(err error) string {
	switch {
	case errors.Is(err, ErrCredentialsRejected):
		return ReasonRejected
	case errors.Is(err, ErrBackendUnreachable):
		return ReasonUnreachable
	default:
		return ReasonUnreachable
	}
}
