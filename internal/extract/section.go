package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Section describes one labeled content section of a principle page.
// The three known sections share the same extraction algorithm and
// differ only in these fields, so they live in a declarative table
// rather than three near-identical functions.
type Section struct {
	// Label names the section in logs.
	Label string

	// Pattern matches the h2 heading text that opens the section.
	Pattern *regexp.Regexp

	// Sentinel is returned (as a single-element sequence) when the
	// section cannot be located.
	Sentinel string
}

// newSection builds the Section entry for a heading word. The pattern
// is anchored at both ends: a heading must be the word alone, give or
// take whitespace, so one that merely contains the word, such as
// "Principle: governance", is content rather than a marker.
func newSection(label string) Section {
	return Section{
		Label:    label,
		Pattern:  regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(label) + `\s*$`),
		Sentinel: "error determining " + strings.ToLower(label),
	}
}

// The labeled sections of a principle page.
var (
	PrincipleSection   = newSection("Principle")
	DescriptionSection = newSection("Description")
	GuidanceSection    = newSection("Guidance")
)

// Extractor extracts sections and PCF blocks from parsed pages.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets a custom logger for extraction diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{logger: slog.Default()}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Sections returns the paragraph texts of the labeled section in doc:
// the first h2 matching sec.Pattern is located, and every paragraph
// under its parent container is collected in document order, trimmed.
//
// If the heading, its parent, or the paragraphs are missing, Sections
// returns the sentinel sequence and logs a warning. It never fails:
// a missing section is data, not an error.
func (e *Extractor) Sections(doc *goquery.Document, pageURL string, sec Section) []string {
	var heading *goquery.Selection
	doc.Find("h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if sec.Pattern.MatchString(s.Text()) {
			heading = s
			return false
		}
		return true
	})

	if heading == nil {
		e.logger.Warn("unable to determine section", "section", sec.Label, "url", pageURL)
		return []string{sec.Sentinel}
	}

	parent := heading.Parent()
	if parent.Length() == 0 {
		e.logger.Warn("unable to determine section", "section", sec.Label, "url", pageURL)
		return []string{sec.Sentinel}
	}

	paragraphs := parent.Find("p")
	if paragraphs.Length() == 0 {
		e.logger.Warn("unable to determine section", "section", sec.Label, "url", pageURL)
		return []string{sec.Sentinel}
	}

	texts := make([]string, 0, paragraphs.Length())
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(p.Text()))
	})
	return texts
}

// Heading returns the page heading (h1 with the subHeading class), or
// the heading sentinel when the page has none.
func (e *Extractor) Heading(doc *goquery.Document, pageURL string) string {
	tag := doc.Find("h1.subHeading").First()
	if tag.Length() == 0 {
		e.logger.Warn("unable to determine heading", "url", pageURL)
		return "error determining heading"
	}
	return strings.TrimSpace(tag.Text())
}
