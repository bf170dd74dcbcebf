package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config describes the export endpoint for online sheets. ExportURL is
// a template with one %s placeholder for the document key, e.g.
// "https://sheets.example/d/%s/export?format=xlsx".
type Config struct {
	ExportURL string        `env:"SHEETS_EXPORT_URL,required"`
	Timeout   time.Duration `env:"SHEETS_TIMEOUT" envDefault:"30s"`
	MaxSize   int64         `env:"SHEETS_MAX_SIZE" envDefault:"33554432"`
}

// Fetcher downloads an online sheet as an xlsx workbook so it can run
// through the same validation path as a browser upload.
type Fetcher struct {
	exportURL  string
	maxSize    int64
	httpClient *http.Client
}

type Option func(*Fetcher)

// WithHTTPClient overrides the HTTP client. Intended for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// New validates the export template and returns a Fetcher.
func New(cfg Config, opts ...Option) (*Fetcher, error) {
	if strings.Count(cfg.ExportURL, "%s") != 1 {
		return nil, fmt.Errorf("%w: ExportURL needs exactly one %%s placeholder", ErrInvalidConfig)
	}
	probe := fmt.Sprintf(cfg.ExportURL, "probe")
	if u, err := url.Parse(probe); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute http(s) URL template", ErrInvalidConfig, cfg.ExportURL)
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 32 << 20
	}

	f := &Fetcher{
		exportURL:  cfg.ExportURL,
		maxSize:    maxSize,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch downloads the sheet named by its document key and returns the
// workbook as "<name>.xlsx" plus its bytes.
func (f *Fetcher) Fetch(ctx context.Context, name string) (string, []byte, error) {
	if name == "" {
		return "", nil, ErrEmptyName
	}

	u := fmt.Sprintf(f.exportURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if int64(len(data)) > f.maxSize {
		return "", nil, fmt.Errorf("%w: document exceeds %d bytes", ErrFetchFailed, f.maxSize)
	}

	return name + ".xlsx", data, nil
}
