package render

import (
	"context"
	"log/slog"
)

// PageCache is the storage the cached renderer reads through.
// database.PageCache satisfies it; tests use an in-memory map.
type PageCache interface {
	// Get returns the cached page source for pageURL, if any.
	Get(ctx context.Context, pageURL string) (html string, ok bool, err error)

	// Put stores the page source for pageURL.
	Put(ctx context.Context, pageURL string, html string) error
}

// CachedRenderer reads page sources through a cache before falling
// back to the wrapped renderer. Existence probes always go to the
// wrapped renderer: a cached page may have been removed upstream and
// the probe is cheap.
type CachedRenderer struct {
	inner  Renderer
	cache  PageCache
	logger *slog.Logger
}

// NewCachedRenderer wraps inner with cache.
func NewCachedRenderer(inner Renderer, cache PageCache, logger *slog.Logger) *CachedRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedRenderer{inner: inner, cache: cache, logger: logger}
}

// Render returns the cached source for pageURL if present, otherwise
// renders through the wrapped renderer and stores the result.
// Cache failures are diagnostics, not errors: the crawl can always
// fall back to rendering.
func (r *CachedRenderer) Render(ctx context.Context, pageURL string, ready Readiness) (string, error) {
	html, ok, err := r.cache.Get(ctx, pageURL)
	if err != nil {
		r.logger.Warn("page cache read failed", "url", pageURL, "error", err)
	} else if ok {
		r.logger.Debug("page cache hit", "url", pageURL)
		return html, nil
	}

	html, err = r.inner.Render(ctx, pageURL, ready)
	if err != nil {
		return "", err
	}

	if err := r.cache.Put(ctx, pageURL, html); err != nil {
		r.logger.Warn("page cache write failed", "url", pageURL, "error", err)
	}
	return html, nil
}

// Exists delegates to the wrapped renderer.
func (r *CachedRenderer) Exists(ctx context.Context, pageURL string) (bool, error) {
	return r.inner.Exists(ctx, pageURL)
}

// Close closes the wrapped renderer. The cache has its own lifecycle.
func (r *CachedRenderer) Close() error {
	return r.inner.Close()
}
