package caf

import (
	"context"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/ncsc-tools/cafscan/internal/extract"
	"github.com/ncsc-tools/cafscan/internal/model"
	"github.com/ncsc-tools/cafscan/internal/render"
)

// Principle is a lazily-computed principle page entity.
//
// The underlying render happens once, on the first access of any
// computed field; the fields themselves are each parsed on demand and
// independently memoized, so asking only for the heading never pays
// for table extraction. sync.Once per field is the explicit lazy cell
// the design calls for and makes every accessor safe for concurrent
// readers.
type Principle struct {
	link      model.Link
	renderer  render.Renderer
	extractor *extract.Extractor
	opts      options

	docOnce sync.Once
	doc     *goquery.Document

	headingOnce sync.Once
	heading     string

	statementsOnce sync.Once
	statements     []string

	descriptionOnce sync.Once
	description     []string

	guidanceOnce sync.Once
	guidance     []string

	pcfsOnce sync.Once
	pcfs     []model.PCFBlock
	pcfsErr  error
}

// NewPrinciple creates a Principle for link. No network activity
// happens until a computed field is first accessed.
func NewPrinciple(link model.Link, renderer render.Renderer, opts ...Option) *Principle {
	o := defaultEntityOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Principle{
		link:      link,
		renderer:  renderer,
		extractor: extract.New(extract.WithLogger(o.logger)),
		opts:      o,
	}
}

// Link returns the principle page link.
func (p *Principle) Link() model.Link {
	return p.link
}

// document renders and parses the page exactly once. All computed
// fields share this one render.
func (p *Principle) document(ctx context.Context) *goquery.Document {
	p.docOnce.Do(func() {
		p.doc = fetchDocument(ctx, p.renderer, p.opts.logger, p.link, p.opts.principleReady)
	})
	return p.doc
}

// Heading returns the page heading, or its sentinel.
func (p *Principle) Heading(ctx context.Context) string {
	p.headingOnce.Do(func() {
		p.heading = p.extractor.Heading(p.document(ctx), p.link.String())
	})
	return p.heading
}

// PrincipleStatements returns the "Principle" section paragraphs.
func (p *Principle) PrincipleStatements(ctx context.Context) []string {
	p.statementsOnce.Do(func() {
		p.statements = p.extractor.Sections(p.document(ctx), p.link.String(), extract.PrincipleSection)
	})
	return p.statements
}

// Description returns the "Description" section paragraphs.
func (p *Principle) Description(ctx context.Context) []string {
	p.descriptionOnce.Do(func() {
		p.description = p.extractor.Sections(p.document(ctx), p.link.String(), extract.DescriptionSection)
	})
	return p.description
}

// Guidance returns the "Guidance" section paragraphs.
func (p *Principle) Guidance(ctx context.Context) []string {
	p.guidanceOnce.Do(func() {
		p.guidance = p.extractor.Sections(p.document(ctx), p.link.String(), extract.GuidanceSection)
	})
	return p.guidance
}

// PCFs returns the page's PCF blocks. The only possible error is
// extract.ErrTableShape, which is fatal to the whole run; it is
// memoized like the value so retries cannot mask a shape violation.
func (p *Principle) PCFs(ctx context.Context) ([]model.PCFBlock, error) {
	p.pcfsOnce.Do(func() {
		p.pcfs, p.pcfsErr = p.extractor.Blocks(p.document(ctx), p.link.String())
	})
	return p.pcfs, p.pcfsErr
}

// Record assembles the serialized form of the principle, computing
// any fields not yet accessed.
func (p *Principle) Record(ctx context.Context) (model.PrincipleRecord, error) {
	pcfs, err := p.PCFs(ctx)
	if err != nil {
		return model.PrincipleRecord{}, err
	}

	return model.PrincipleRecord{
		Link:                p.link,
		Heading:             p.Heading(ctx),
		PrincipleStatements: p.PrincipleStatements(ctx),
		Description:         p.Description(ctx),
		Guidance:            p.Guidance(ctx),
		PCFs:                pcfs,
	}, nil
}
