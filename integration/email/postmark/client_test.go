package postmark_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgate/core/email"
	"qgate/integration/email/postmark"
)

func validConfig() postmark.Config {
	return postmark.Config{
		ServerToken:  "server-token",
		AccountToken: "account-token",
		SenderEmail:  "gateway@observatory.example",
		ReplyToEmail: "ops@observatory.example",
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*postmark.Config)
		errMsg string
	}{
		{"valid config", func(*postmark.Config) {}, ""},
		{"missing server token", func(c *postmark.Config) { c.ServerToken = "" }, "ServerToken is required"},
		{"missing account token", func(c *postmark.Config) { c.AccountToken = "" }, "AccountToken is required"},
		{"invalid sender", func(c *postmark.Config) { c.SenderEmail = "nope" }, "SenderEmail must be a valid email address"},
		{"invalid reply-to", func(c *postmark.Config) { c.ReplyToEmail = "" }, "ReplyToEmail must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			client, err := postmark.New(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				assert.NotNil(t, client)
				return
			}
			require.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMustNew(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { postmark.MustNew(validConfig()) })
	assert.Panics(t, func() { postmark.MustNew(postmark.Config{}) })
}

func TestClient_Send_Validation(t *testing.T) {
	t.Parallel()

	client, err := postmark.New(validConfig())
	require.NoError(t, err)

	// Invalid messages are rejected before any API call is made.
	err = client.Send(context.Background(), email.Message{})
	require.ErrorIs(t, err, email.ErrInvalidMessage)
}
