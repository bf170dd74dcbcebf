package postmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"qgate/core/email"
)

// Compile-time check that Client implements the Sender contract.
var _ email.Sender = (*Client)(nil)

// Client sends notifications through Postmark's transactional API.
type Client struct {
	client *postmark.Client
	config Config
}

// New validates the configuration and returns a Postmark sender.
func New(cfg Config) (*Client, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: ServerToken is required", email.ErrInvalidConfig)
	}
	if cfg.AccountToken == "" {
		return nil, fmt.Errorf("%w: AccountToken is required", email.ErrInvalidConfig)
	}
	if !email.IsValidAddress(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
	}
	if !email.IsValidAddress(cfg.ReplyToEmail) {
		return nil, fmt.Errorf("%w: ReplyToEmail must be a valid email address", email.ErrInvalidConfig)
	}

	return &Client{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
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

// Send delivers the message via the Postmark API. API-level rejections
// arrive in the response body with a non-zero error code, so both the
// transport error and the response are checked.
func (c *Client) Send(ctx context.Context, msg email.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:     c.config.SenderEmail,
		ReplyTo:  c.config.ReplyToEmail,
		To:       msg.To,
		Subject:  msg.Subject,
		HTMLBody: msg.BodyHTML,
	})
	if err != nil {
		return errors.Join(email.ErrFailedToSend, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			email.ErrFailedToSend,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
