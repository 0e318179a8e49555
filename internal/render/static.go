package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// StaticRenderer "renders" by plain HTTP fetch, without a browser.
// Readiness conditions are meaningless without script execution, so
// they are accepted and ignored. Used for pages known to be served
// fully formed, and throughout the tests.
type StaticRenderer struct {
	client *http.Client
	logger *slog.Logger
}

// StaticOption configures a StaticRenderer.
type StaticOption func(*StaticRenderer)

// WithStaticTimeout sets the fetch timeout.
func WithStaticTimeout(d time.Duration) StaticOption {
	return func(r *StaticRenderer) {
		if d > 0 {
			r.client.Timeout = d
		}
	}
}

// WithStaticLogger sets a custom logger.
func WithStaticLogger(logger *slog.Logger) StaticOption {
	return func(r *StaticRenderer) {
		r.logger = logger
	}
}

// NewStaticRenderer creates a plain HTTP renderer.
func NewStaticRenderer(opts ...StaticOption) *StaticRenderer {
	r := &StaticRenderer{
		client: &http.Client{Timeout: DefaultProbeTimeout},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render fetches pageURL and returns the response body as-is.
func (r *StaticRenderer) Render(ctx context.Context, pageURL string, ready Readiness) (string, error) {
	r.logger.Debug("static render, readiness condition ignored",
		"url", pageURL,
		"selector", ready.Selector,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %s: %w", pageURL, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body of %s: %w", pageURL, err)
	}
	return string(body), nil
}

// Exists reports whether pageURL responds with anything but 404.
func (r *StaticRenderer) Exists(ctx context.Context, pageURL string) (bool, error) {
	return probeExists(ctx, r.client, pageURL)
}

// Close is a no-op; there is no session to release.
func (r *StaticRenderer) Close() error {
	return nil
}
