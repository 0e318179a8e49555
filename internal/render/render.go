package render

import (
	"context"
	"io"
	"net/http"
	"time"
)

// DefaultReadyTimeout is how long a renderer waits for the readiness
// condition before proceeding with whatever HTML is available.
// Ten seconds covers the target site's scripted render in practice;
// raising it only slows down pages that will never satisfy the
// condition.
const DefaultReadyTimeout = 10 * time.Second

// DefaultProbeTimeout bounds the plain HTTP existence probe.
const DefaultProbeTimeout = 30 * time.Second

// WaitKind selects how a readiness selector must be satisfied.
type WaitKind int

const (
	// WaitVisible waits for at least one matching element to be visible.
	WaitVisible WaitKind = iota

	// WaitPresent waits for at least one matching element to exist in
	// the DOM, visible or not.
	WaitPresent
)

// Readiness is a predicate over the rendered page: rendering is
// "complete enough" once an element matching Selector satisfies Wait.
type Readiness struct {
	// Selector is a CSS selector, e.g. "a[href*='principle']" or "table".
	Selector string

	// Wait is the condition the selector must meet.
	Wait WaitKind
}

// Renderer is the page-rendering collaborator the crawl depends on.
//
// Render blocks until the readiness condition is met or its timeout
// elapses, then returns the page source. A timeout is not an error:
// implementations log a diagnostic and return the partial HTML.
// Exists is a plain HTTP status probe; it never triggers a render.
type Renderer interface {
	Render(ctx context.Context, pageURL string, ready Readiness) (string, error)
	Exists(ctx context.Context, pageURL string) (bool, error)
	Close() error
}

// probeExists performs the shared existence check. Only a 404 response
// marks a page as absent; other statuses proceed to rendering because
// the site fronts some pages with interstitial status codes that still
// render fine in a browser.
func probeExists(ctx context.Context, client *http.Client, pageURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode != http.StatusNotFound, nil
}
