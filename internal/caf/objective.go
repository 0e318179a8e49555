package caf

import (
	"context"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/ncsc-tools/cafscan/internal/crawler"
	"github.com/ncsc-tools/cafscan/internal/extract"
	"github.com/ncsc-tools/cafscan/internal/model"
	"github.com/ncsc-tools/cafscan/internal/render"
)

// Objective is a lazily-computed objective page entity. Its heading
// comes from its own render; its principles come from a separate link
// discovery pass over the same page. The two are memoized
// independently because the heading render and the discovery render
// wait on different readiness conditions.
type Objective struct {
	link       model.Link
	renderer   render.Renderer
	discoverer *crawler.Discoverer
	extractor  *extract.Extractor
	opts       options
	entityOpts []Option

	docOnce sync.Once
	doc     *goquery.Document

	headingOnce sync.Once
	heading     string

	principlesOnce sync.Once
	principles     []*Principle
}

// NewObjective creates an Objective for link. The given options also
// apply to every Principle the objective constructs.
func NewObjective(link model.Link, renderer render.Renderer, opts ...Option) *Objective {
	o := defaultEntityOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Objective{
		link:       link,
		renderer:   renderer,
		discoverer: crawler.NewDiscoverer(renderer, crawler.WithLogger(o.logger)),
		extractor:  extract.New(extract.WithLogger(o.logger)),
		opts:       o,
		entityOpts: opts,
	}
}

// Link returns the objective page link.
func (o *Objective) Link() model.Link {
	return o.link
}

func (o *Objective) document(ctx context.Context) *goquery.Document {
	o.docOnce.Do(func() {
		o.doc = fetchDocument(ctx, o.renderer, o.opts.logger, o.link, o.opts.objectiveReady)
	})
	return o.doc
}

// Heading returns the page heading, or its sentinel.
func (o *Objective) Heading(ctx context.Context) string {
	o.headingOnce.Do(func() {
		o.heading = o.extractor.Heading(o.document(ctx), o.link.String())
	})
	return o.heading
}

// Principles returns the objective's principle entities, one per
// discovered link, in the discoverer's path-sorted order. Discovery
// failures degrade to an empty sequence with a diagnostic: a broken
// objective page should not sink the rest of the crawl.
func (o *Objective) Principles(ctx context.Context) []*Principle {
	o.principlesOnce.Do(func() {
		links, err := o.discoverer.Discover(ctx, o.link.String(), o.opts.principleLinksReady, o.opts.principleFilter)
		if err != nil {
			o.opts.logger.Error("principle discovery failed", "url", o.link.String(), "error", err)
			o.principles = []*Principle{}
			return
		}

		principles := make([]*Principle, 0, len(links))
		for _, link := range links {
			principles = append(principles, NewPrinciple(link, o.renderer, o.entityOpts...))
		}
		o.principles = principles
	})
	return o.principles
}

// Record assembles the serialized form of the objective and all of
// its principles. A table-shape violation in any principle aborts
// with no partial record.
func (o *Objective) Record(ctx context.Context) (model.ObjectiveRecord, error) {
	principles := o.Principles(ctx)

	records := make([]model.PrincipleRecord, 0, len(principles))
	for _, p := range principles {
		record, err := p.Record(ctx)
		if err != nil {
			return model.ObjectiveRecord{}, err
		}
		records = append(records, record)
	}

	return model.ObjectiveRecord{
		Link:       o.link,
		Heading:    o.Heading(ctx),
		Principles: records,
	}, nil
}
