package pipeline

import (
	"context"
	"log/slog"

	"github.com/ncsc-tools/cafscan/internal/crawler"
	"github.com/ncsc-tools/cafscan/internal/render"
	"github.com/ncsc-tools/cafscan/internal/report"
)

// Crawl rules for discovering objective pages on the collection page.
// Overridable via options; the defaults match the current markup.
var defaultObjectiveLinksReady = render.Readiness{
	Selector: "a[href*='objective']",
	Wait:     render.WaitVisible,
}

// defaultObjectiveLinkFilter is the href substring identifying
// objective pages on the collection page.
const defaultObjectiveLinkFilter = "objective"

// DiscoverStep finds the objective links on the collection page.
// It is the entry point of every crawl: the rest of the document
// hierarchy hangs off these links.
type DiscoverStep struct {
	// discoverer renders the collection page and extracts links.
	discoverer *crawler.Discoverer

	// ready is the element waited for before extracting links.
	ready render.Readiness

	// filter is the href substring identifying objective links.
	filter string

	// logger for structured logging.
	logger *slog.Logger
}

// DiscoverStepOption configures a DiscoverStep.
type DiscoverStepOption func(*DiscoverStep)

// WithDiscoverReadiness overrides the readiness condition for the
// collection page.
func WithDiscoverReadiness(r render.Readiness) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.ready = r
	}
}

// WithDiscoverFilter overrides the href substring identifying
// objective links.
func WithDiscoverFilter(substr string) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.filter = substr
	}
}

// WithDiscoverLogger sets a custom logger for the discover step.
func WithDiscoverLogger(logger *slog.Logger) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.logger = logger
	}
}

// NewDiscoverStep creates the objective discovery step.
func NewDiscoverStep(discoverer *crawler.Discoverer, opts ...DiscoverStepOption) *DiscoverStep {
	s := &DiscoverStep{
		discoverer: discoverer,
		ready:      defaultObjectiveLinksReady,
		filter:     defaultObjectiveLinkFilter,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *DiscoverStep) Name() string {
	return "discover_objectives"
}

// Do renders the collection page and records the objective links on
// the run. A collection page that yields no links is suspicious but
// not fatal: the crawl produces an empty document and the warning
// points at the page to check.
func (s *DiscoverStep) Do(ctx context.Context, run *Run) error {
	links, err := s.discoverer.Discover(ctx, run.Base.String(), s.ready, s.filter)
	if err != nil {
		return err
	}

	if len(links) == 0 {
		s.logger.Warn("no objective links found on collection page",
			"base", run.Base.String(),
		)
	} else {
		s.logger.Info("discovered objective links",
			"base", run.Base.String(),
			"count", len(links),
		)
	}

	run.ObjectiveLinks = links
	return nil
}

// CrawlStep builds the record for every discovered objective.
type CrawlStep struct {
	// batch fans the objectives out over renderer sessions.
	batch *BatchCrawler
}

// NewCrawlStep creates the objective crawl step.
func NewCrawlStep(batch *BatchCrawler) *CrawlStep {
	return &CrawlStep{batch: batch}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl_objectives"
}

// Do crawls every objective on the run. A structural error aborts
// the run without output; page-level failures surface as sentinels
// inside the records instead.
func (s *CrawlStep) Do(ctx context.Context, run *Run) error {
	records, err := s.batch.Crawl(ctx, run.ObjectiveLinks)
	if err != nil {
		return err
	}

	run.Objectives = records
	return nil
}

// ReportStep writes the crawled objectives to the configured outputs.
type ReportStep struct {
	// writer receives the finished records. Usually a MultiWriter
	// fanning out to the JSON dump and the optional Markdown digest.
	writer report.Writer

	// logger for structured logging.
	logger *slog.Logger
}

// ReportStepOption configures a ReportStep.
type ReportStepOption func(*ReportStep)

// WithReportLogger sets a custom logger for the report step.
func WithReportLogger(logger *slog.Logger) ReportStepOption {
	return func(s *ReportStep) {
		s.logger = logger
	}
}

// NewReportStep creates the output writing step.
func NewReportStep(writer report.Writer, opts ...ReportStepOption) *ReportStep {
	s := &ReportStep{
		writer: writer,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return "write_report"
}

// Do writes the run's objectives through the configured writer.
func (s *ReportStep) Do(_ context.Context, run *Run) error {
	n, err := s.writer.Write(run.Objectives)
	if err != nil {
		return err
	}

	s.logger.Info("report written",
		"objectives", len(run.Objectives),
		"bytes", n,
	)
	return nil
}
