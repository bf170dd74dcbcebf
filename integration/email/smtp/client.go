package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"qgate/core/email"
)

// Compile-time check that Client implements the Sender contract.
var _ email.Sender = (*Client)(nil)

// Client sends notifications over SMTP. Supports STARTTLS, direct TLS
// and plain connections; safe for concurrent use.
type Client struct {
	config Config
	auth   smtp.Auth
}

// New validates the configuration and returns an SMTP sender.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", email.ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", email.ErrInvalidConfig)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("%w: Username is required", email.ErrInvalidConfig)
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("%w: Password is required", email.ErrInvalidConfig)
	}
	if cfg.TLSMode != "starttls" && cfg.TLSMode != "tls" && cfg.TLSMode != "plain" {
		return nil, fmt.Errorf("%w: TLSMode must be starttls, tls, or plain", email.ErrInvalidConfig)
	}
	if !email.IsValidAddress(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
	}
	if !email.IsValidAddress(cfg.ReplyToEmail) {
		return nil, fmt.Errorf("%w: ReplyToEmail must be a valid email address", email.ErrInvalidConfig)
	}

	return &Client{
		config: cfg,
		auth:   smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}, nil
}

// MustNew panics on invalid config, for use during startup wiring.
func MustNew(cfg Config) *Client {
	client, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Send delivers the message over one SMTP transaction. net/smtp has no
// context support, so only an already-cancelled context is honored.
func (c *Client) Send(ctx context.Context, msg email.Message) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(email.ErrFailedToSend, err)
	}
	if err := msg.Validate(); err != nil {
		return err
	}

	payload := c.buildMessage(msg)
	serverAddr := net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))

	var err error
	switch c.config.TLSMode {
	case "tls":
		err = c.sendWithTLS(serverAddr, msg.To, payload)
	case "starttls":
		err = c.sendWithSTARTTLS(serverAddr, msg.To, payload)
	case "plain":
		err = c.sendPlain(serverAddr, msg.To, payload)
	}
	if err != nil {
		return errors.Join(email.ErrFailedToSend, err)
	}
	return nil
}

// buildMessage assembles the MIME payload with a stable header order.
func (c *Client) buildMessage(msg email.Message) []byte {
	var b strings.Builder
	writeHeader := func(key, value string) {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\r\n")
	}

	writeHeader("From", c.config.SenderEmail)
	writeHeader("To", msg.To)
	writeHeader("Reply-To", c.config.ReplyToEmail)
	writeHeader("Subject", msg.Subject)
	writeHeader("Date", time.Now().Format(time.RFC1123Z))
	writeHeader("Message-ID", fmt.Sprintf("<%d@%s>", time.Now().UnixNano(), c.config.Host))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", `text/html; charset="UTF-8"`)
	b.WriteString("\r\n")
	b.WriteString(msg.BodyHTML)

	return []byte(b.String())
}

func (c *Client) sendWithTLS(serverAddr, recipient string, payload []byte) error {
	conn, err := tls.Dial("tcp", serverAddr, &tls.Config{ServerName: c.config.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server with TLS: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, c.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return c.transact(client, recipient, payload)
}

func (c *Client) sendWithSTARTTLS(serverAddr, recipient string, payload []byte) error {
	client, err := smtp.Dial(serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.StartTLS(&tls.Config{ServerName: c.config.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}
	return c.transact(client, recipient, payload)
}

func (c *Client) sendPlain(serverAddr, recipient string, payload []byte) error {
	client, err := smtp.Dial(serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = client.Close() }()

	return c.transact(client, recipient, payload)
}

func (c *Client) transact(client *smtp.Client, recipient string, payload []byte) error {
	if err := client.Auth(c.auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err := client.Mail(c.config.SenderEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := writer.Write(payload); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// Quit errors are non-fatal: some servers drop the connection
	// right after DATA even though the message was accepted.
	_ = client.Quit()
	return nil
}
