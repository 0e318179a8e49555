package caf

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ncsc-tools/cafscan/internal/model"
	"github.com/ncsc-tools/cafscan/internal/render"
)

// Crawl rules for the known document structure. The selectors are
// overridable via options because the site has changed class names
// before; the defaults match the current markup.
var (
	defaultPrincipleContentReady = render.Readiness{Selector: "table", Wait: render.WaitPresent}
	defaultObjectiveContentReady = render.Readiness{Selector: ".subHeading", Wait: render.WaitPresent}
	defaultPrincipleLinksReady   = render.Readiness{Selector: "a[href*='principle']", Wait: render.WaitVisible}
)

// defaultPrincipleLinkFilter is the href substring identifying
// principle pages on an objective page.
const defaultPrincipleLinkFilter = "principle"

// options holds the shared entity configuration. An Objective passes
// its options down to the Principles it constructs.
type options struct {
	logger              *slog.Logger
	principleReady      render.Readiness
	objectiveReady      render.Readiness
	principleLinksReady render.Readiness
	principleFilter     string
}

func defaultEntityOptions() options {
	return options{
		logger:              slog.Default(),
		principleReady:      defaultPrincipleContentReady,
		objectiveReady:      defaultObjectiveContentReady,
		principleLinksReady: defaultPrincipleLinksReady,
		principleFilter:     defaultPrincipleLinkFilter,
	}
}

// Option configures Objective and Principle entities.
type Option func(*options)

// WithLogger sets a custom logger for entity diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPrincipleReadiness overrides the readiness condition used when
// rendering a principle page.
func WithPrincipleReadiness(r render.Readiness) Option {
	return func(o *options) {
		o.principleReady = r
	}
}

// WithObjectiveReadiness overrides the readiness condition used when
// rendering an objective page.
func WithObjectiveReadiness(r render.Readiness) Option {
	return func(o *options) {
		o.objectiveReady = r
	}
}

// WithPrincipleLinkFilter overrides the href substring and readiness
// condition used to discover principle links on an objective page.
func WithPrincipleLinkFilter(substr string, ready render.Readiness) Option {
	return func(o *options) {
		o.principleFilter = substr
		o.principleLinksReady = ready
	}
}

// fetchDocument renders link's page and parses it. Every failure mode
// short of a caller bug degrades to an empty document with a logged
// diagnostic: a page that cannot be fetched holds no sections, and
// the extractors turn an empty document into sentinels.
func fetchDocument(ctx context.Context, renderer render.Renderer, logger *slog.Logger, link model.Link, ready render.Readiness) *goquery.Document {
	ok, err := renderer.Exists(ctx, link.String())
	if err != nil {
		logger.Error("existence check failed, page will not be parsed", "url", link.String(), "error", err)
		return emptyDocument()
	}
	if !ok {
		logger.Error("URL returned a not found response code, so will not be parsed", "url", link.String())
		return emptyDocument()
	}

	source, err := renderer.Render(ctx, link.String(), ready)
	if err != nil {
		logger.Error("render failed, page will not be parsed", "url", link.String(), "error", err)
		return emptyDocument()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		logger.Error("page source could not be parsed", "url", link.String(), "error", err)
		return emptyDocument()
	}
	return doc
}

func emptyDocument() *goquery.Document {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(""))
	return doc
}
