package render

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"
)

// ChromeRenderer renders pages in a headless Chrome session via the
// DevTools protocol. The session is exclusive: one navigation at a
// time, owned by whoever constructed the renderer.
type ChromeRenderer struct {
	// allocCancel tears down the browser process allocator.
	allocCancel context.CancelFunc

	// browserCtx is the chromedp tab context all actions run in.
	browserCtx context.Context

	// browserCancel closes the tab.
	browserCancel context.CancelFunc

	// client performs the plain HTTP existence probes.
	client *http.Client

	// readyTimeout bounds the wait for a readiness condition.
	readyTimeout time.Duration

	// logger receives render diagnostics.
	logger *slog.Logger
}

// ChromeOption configures a ChromeRenderer.
type ChromeOption func(*ChromeRenderer)

// WithReadyTimeout sets the readiness wait timeout.
func WithReadyTimeout(d time.Duration) ChromeOption {
	return func(r *ChromeRenderer) {
		if d > 0 {
			r.readyTimeout = d
		}
	}
}

// WithChromeLogger sets a custom logger for render diagnostics.
func WithChromeLogger(logger *slog.Logger) ChromeOption {
	return func(r *ChromeRenderer) {
		r.logger = logger
	}
}

// NewChromeRenderer starts a headless browser session.
// The caller owns the session and must call Close on every exit path,
// including the fatal table-shape abort.
func NewChromeRenderer(ctx context.Context, opts ...ChromeOption) (*ChromeRenderer, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	r := &ChromeRenderer{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		client:        &http.Client{Timeout: DefaultProbeTimeout},
		readyTimeout:  DefaultReadyTimeout,
		logger:        slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	// Start the browser eagerly so a missing Chrome binary surfaces
	// here rather than on the first page of the crawl.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("starting headless browser: %w", err)
	}

	return r, nil
}

// Render navigates to pageURL, waits up to the ready timeout for the
// readiness condition, and returns the page source. A readiness
// timeout degrades rather than fails: the current DOM is returned and
// an error-level diagnostic is logged.
func (r *ChromeRenderer) Render(ctx context.Context, pageURL string, ready Readiness) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	runCtx, cancel := r.actionContext(ctx)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.Navigate(pageURL)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("navigating to %s: %w", pageURL, err)
	}

	waitCtx, waitCancel := context.WithTimeout(runCtx, r.readyTimeout)
	if err := chromedp.Run(waitCtx, waitAction(ready)); err != nil {
		r.logger.Error("timeout on element based page source get, page source may be incomplete",
			"url", pageURL,
			"selector", ready.Selector,
			"error", err,
		)
	}
	waitCancel()

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("capturing page source for %s: %w", pageURL, err)
	}
	return html, nil
}

// actionContext derives the context a single render's chromedp actions
// run in. Actions must run on the tab context, but cancellation of the
// caller's ctx has to interrupt an in-flight navigation too, so the
// derived context ends when either the tab or the caller does.
func (r *ChromeRenderer) actionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(r.browserCtx)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Exists reports whether pageURL responds with anything but 404.
func (r *ChromeRenderer) Exists(ctx context.Context, pageURL string) (bool, error) {
	return probeExists(ctx, r.client, pageURL)
}

// Close shuts down the tab and the browser process.
func (r *ChromeRenderer) Close() error {
	r.browserCancel()
	r.allocCancel()
	return nil
}

// waitAction maps a Readiness to the chromedp action implementing it.
func waitAction(ready Readiness) chromedp.Action {
	switch ready.Wait {
	case WaitVisible:
		return chromedp.WaitVisible(ready.Selector, chromedp.ByQuery)
	default:
		return chromedp.WaitReady(ready.Selector, chromedp.ByQuery)
	}
}
