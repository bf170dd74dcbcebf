package email

import "errors"

var (
	// ErrFailedToSend wraps transport failures from any Sender.
	ErrFailedToSend = errors.New("failed to send email")

	// ErrInvalidConfig is returned by integration constructors on
	// incomplete configuration.
	ErrInvalidConfig = errors.New("invalid email configuration")

	// ErrInvalidMessage is returned when a message fails validation.
	ErrInvalidMessage = errors.New("invalid email message")
)
