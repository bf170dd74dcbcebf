package upload

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"os"
	"time"

	"qgate/core/email"
	"qgate/core/logger"
	"qgate/core/sheet"
	"qgate/core/storage"
)

// Manager stores validated submissions and dispatches the best-effort
// upload notification.
type Manager struct {
	storage   storage.Storage
	sender    email.Sender
	recipient string
	clock     func() time.Time
	logger    *slog.Logger
	hostname  string
}

// Option configures a Manager.
type Option func(*Manager)

// WithNotifier enables mail notification of completed uploads.
func WithNotifier(sender email.Sender, recipient string) Option {
	return func(m *Manager) {
		m.sender = sender
		m.recipient = recipient
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithLogger sets the logger used for notification failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithHostname overrides the hostname reported in notifications.
func WithHostname(hostname string) Option {
	return func(m *Manager) { m.hostname = hostname }
}

// New creates a Manager over the given storage backend.
func New(store storage.Storage, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrNilStorage
	}

	hostname, _ := os.Hostname()
	m := &Manager{
		storage:  store,
		clock:    time.Now,
		logger:   slog.Default(),
		hostname: hostname,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Store writes the submission after checking preconditions in order:
// first that the validation report is free of errors, then that the
// request carries either a live session or a fresh login success. The
// first failing check wins and nothing is written. On success the
// derived name is stored under the proposal and a notification is
// dispatched; notification failures are logged and never change the
// outcome.
func (m *Manager) Store(ctx context.Context, req Request, rep *sheet.Report, creds Credentials) (Result, error) {
	if rep != nil && rep.ErrorCount() > 0 {
		return Result{}, fmt.Errorf("%w: %d validation errors", ErrValidationErrors, rep.ErrorCount())
	}

	if !creds.Authorized() {
		// A failed login attempt outranks a stale session: the user
		// actively supplied credentials and should see why they were
		// rejected rather than a session message.
		if creds.AuthAttempted {
			return Result{}, ErrAuthFailed
		}
		return Result{}, ErrSessionExpired
	}

	now := m.clock()
	name := DeriveName(req.Filename, req.Proposal, now)

	location, err := m.storage.Save(ctx, req.Proposal, name, req.Data)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}

	result := Result{Name: name, Location: location, StoredAt: now}
	m.notify(ctx, req, creds, result)
	return result, nil
}

// notify sends the completed-upload mail. Best effort: a missing
// notifier is a no-op and a delivery failure is logged only.
func (m *Manager) notify(ctx context.Context, req Request, creds Credentials, result Result) {
	if m.sender == nil {
		return
	}

	verb := req.Source.Verb()
	msg := email.Message{
		To:       m.recipient,
		Subject:  fmt.Sprintf("Queue spreadsheet for %s was %s", req.Proposal, verb),
		BodyHTML: m.notificationBody(req, creds, result, verb),
	}

	if err := m.sender.Send(ctx, msg); err != nil {
		m.logger.ErrorContext(ctx, "upload notification failed",
			logger.Component("upload"),
			logger.Proposal(req.Proposal),
			logger.Error(err),
		)
	}
}

func (m *Manager) notificationBody(req Request, creds Credentials, result Result, verb string) string {
	esc := html.EscapeString
	return fmt.Sprintf(
		"<p>A queue observation spreadsheet for proposal %s was %s by %s user %s on %s. "+
			"Input was a %s named %s. Output filename is %s:%s.</p>",
		esc(req.Proposal),
		verb,
		esc(creds.Backend),
		esc(creds.DisplayName),
		result.StoredAt.Format(time.ANSIC),
		esc(string(req.Source)),
		esc(req.Filename),
		esc(m.hostname),
		esc(result.Location),
	)
}
