package email

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Sender delivers notification mail. Implementations live under
// integration/email; tests substitute a recording fake.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single HTML notification.
type Message struct {
	To       string
	Subject  string
	BodyHTML string
}

// emailRegex is a simple shape check, not full RFC 5322 validation.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate reports all problems with the message at once so callers
// can log a single actionable error.
func (m Message) Validate() error {
	var errs []error
	if m.To == "" || !emailRegex.MatchString(m.To) {
		errs = append(errs, fmt.Errorf("recipient %q is not a valid email address", m.To))
	}
	if m.Subject == "" {
		errs = append(errs, errors.New("subject is required"))
	}
	if m.BodyHTML == "" {
		errs = append(errs, errors.New("body is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, errors.Join(errs...))
	}
	return nil
}

// IsValidAddress reports whether s looks like a deliverable address.
// Shared by integration configs that validate sender and reply-to
// addresses at startup.
func IsValidAddress(s string) bool {
	return emailRegex.MatchString(s)
}
