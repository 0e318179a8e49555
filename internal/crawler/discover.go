package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ncsc-tools/cafscan/internal/model"
	"github.com/ncsc-tools/cafscan/internal/render"
)

// Discoverer finds child links on rendered pages.
type Discoverer struct {
	// renderer provides the page source and the existence probe.
	renderer render.Renderer

	// logger receives discovery diagnostics.
	logger *slog.Logger
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithLogger sets a custom logger for discovery diagnostics.
func WithLogger(logger *slog.Logger) DiscovererOption {
	return func(d *Discoverer) {
		d.logger = logger
	}
}

// NewDiscoverer creates a Discoverer using the given renderer.
func NewDiscoverer(renderer render.Renderer, opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		renderer: renderer,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Discover renders pageURL (waiting for ready) and returns every
// anchor link whose href contains substr, resolved against pageURL and
// sorted ascending by URL path.
//
// A 404 on the existence probe returns an empty slice without
// rendering. A readiness timeout is absorbed inside the renderer and
// discovery proceeds on the partial source. Both are logged, neither
// is an error; the error return covers only an invalid pageURL or a
// render that produced nothing at all.
func (d *Discoverer) Discover(ctx context.Context, pageURL string, ready render.Readiness, substr string) ([]model.Link, error) {
	base, err := model.ParseLink(pageURL)
	if err != nil {
		return nil, fmt.Errorf("discovering links: %w", err)
	}

	d.logger.Info("discovering links", "url", pageURL, "filter", substr)

	ok, err := d.renderer.Exists(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("existence check for %s: %w", pageURL, err)
	}
	if !ok {
		d.logger.Error("URL returned a not found response code, so will not be parsed", "url", pageURL)
		return []model.Link{}, nil
	}

	source, err := d.renderer.Render(ctx, pageURL, ready)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", pageURL, err)
	}

	links, err := newAnchorParser(base).links(strings.NewReader(source), substr)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}

	slices.SortFunc(links, func(a, b model.Link) int {
		return strings.Compare(a.Path(), b.Path())
	})

	d.logger.Info("discovered links", "url", pageURL, "count", len(links))
	return links, nil
}
