package smtp_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgate/core/email"
	"qgate/integration/email/smtp"
)

func validConfig() smtp.Config {
	return smtp.Config{
		Host:         "smtp.observatory.example",
		Port:         587,
		Username:     "gateway",
		Password:     "password",
		TLSMode:      "starttls",
		SenderEmail:  "gateway@observatory.example",
		ReplyToEmail: "ops@observatory.example",
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*smtp.Config)
		errMsg string
	}{
		{"valid config", func(*smtp.Config) {}, ""},
		{"empty host", func(c *smtp.Config) { c.Host = "" }, "Host is required"},
		{"zero port", func(c *smtp.Config) { c.Port = 0 }, "Port must be between 1 and 65535"},
		{"port too high", func(c *smtp.Config) { c.Port = 70000 }, "Port must be between 1 and 65535"},
		{"empty username", func(c *smtp.Config) { c.Username = "" }, "Username is required"},
		{"empty password", func(c *smtp.Config) { c.Password = "" }, "Password is required"},
		{"invalid tls mode", func(c *smtp.Config) { c.TLSMode = "ssl" }, "TLSMode must be starttls, tls, or plain"},
		{"invalid sender", func(c *smtp.Config) { c.SenderEmail = "not-an-email" }, "SenderEmail must be a valid email address"},
		{"invalid reply-to", func(c *smtp.Config) { c.ReplyToEmail = "nope@" }, "ReplyToEmail must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			client, err := smtp.New(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				assert.NotNil(t, client)
				return
			}
			require.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, client)
		})
	}
}

func TestMustNew(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		smtp.MustNew(validConfig())
	})

	assert.Panics(t, func() {
		smtp.MustNew(smtp.Config{})
	})
}

func TestClient_Send_Validation(t *testing.T) {
	t.Parallel()

	client, err := smtp.New(validConfig())
	require.NoError(t, err)

	// Invalid messages never open a connection, so no server is needed.
	err = client.Send(context.Background(), email.Message{Subject: "x", BodyHTML: "y"})
	require.ErrorIs(t, err, email.ErrInvalidMessage)

	err = client.Send(context.Background(), email.Message{To: "ops@observatory.example"})
	require.ErrorIs(t, err, email.ErrInvalidMessage)
}

func TestClient_Send_CancelledContext(t *testing.T) {
	t.Parallel()

	client, err := smtp.New(validConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = client.Send(ctx, email.Message{
		To:       "ops@observatory.example",
		Subject:  "test",
		BodyHTML: "<p>test</p>",
	})
	require.ErrorIs(t, err, email.ErrFailedToSend)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Send_ConnectionError(t *testing.T) {
	t.Parallel()

	// Reserve a port and close it so the dial is refused.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := validConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	cfg.TLSMode = "plain"

	client, err := smtp.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = client.Send(ctx, email.Message{
		To:       "ops@observatory.example",
		Subject:  "test",
		BodyHTML: "<p>test</p>",
	})
	require.ErrorIs(t, err, email.ErrFailedToSend)
	assert.Contains(t, err.Error(), "failed to connect to SMTP server")
}
