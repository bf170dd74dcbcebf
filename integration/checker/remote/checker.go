package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"qgate/core/sheet"
)

// Compile-time check that Client implements the checker contract.
var _ sheet.Checker = (*Client)(nil)

// maxResponseSize caps the decoded report body. Real reports are a few
// kilobytes; the cap guards against a misconfigured URL returning an
// arbitrary payload.
const maxResponseSize = 16 << 20

// Config points the gateway at the full rule engine.
type Config struct {
	URL     string        `env:"CHECKER_URL,required"`
	Timeout time.Duration `env:"CHECKER_TIMEOUT" envDefault:"60s"`
}

// Client submits workbooks to the remote rule engine and decodes its
// validation report.
type Client struct {
	url        string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the HTTP client. Intended for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// New validates the engine URL and returns a remote checker.
func New(cfg Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidConfig, cfg.URL)
	}

	c := &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Check posts the workbook as multipart form data (fields proposal and
// filename plus the file part) and decodes the engine's report. Any
// error means the checker was unusable; validation findings always
// travel inside the report.
func (c *Client) Check(ctx context.Context, proposal, filename string, data []byte) (*sheet.Report, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("proposal", proposal); err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if err := w.WriteField("filename", filename); err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var rep sheet.Report
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&rep); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	if rep.Proposal == "" {
		rep.Proposal = proposal
	}
	return &rep, nil
}
