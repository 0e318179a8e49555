package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ncsc-tools/cafscan/internal/caf"
	"github.com/ncsc-tools/cafscan/internal/model"
	"github.com/ncsc-tools/cafscan/internal/render"
)

// RendererFactory creates a renderer for one crawl worker.
// Browser sessions cannot be shared across goroutines, so each
// concurrent objective gets its own session from the factory.
type RendererFactory func(ctx context.Context) (render.Renderer, error)

// SharedRenderer returns a factory that hands out the same renderer
// to every worker without closing it. Used when the batch size is 1
// or when the renderer is safe to share (the static fetcher is).
func SharedRenderer(r render.Renderer) RendererFactory {
	return func(context.Context) (render.Renderer, error) {
		return nopCloseRenderer{r}, nil
	}
}

// nopCloseRenderer shields a shared renderer from per-worker Close.
type nopCloseRenderer struct {
	render.Renderer
}

func (nopCloseRenderer) Close() error { return nil }

// BatchCrawler crawls multiple objectives concurrently.
// It uses errgroup to manage goroutines and respect the concurrency
// limit.
//
// Design decision: We use a separate BatchCrawler rather than adding
// concurrency to the Objective entity because the entity's laziness
// already handles per-page work; what the batch adds is fan-out over
// objectives and the browser-session-per-worker rule.
type BatchCrawler struct {
	// factory creates a renderer for each objective crawl.
	factory RendererFactory

	// concurrency is the maximum number of concurrent objectives.
	concurrency int

	// entityOpts are passed to every Objective the batch constructs.
	entityOpts []caf.Option

	// logger is used for batch-level logging.
	logger *slog.Logger

	mu sync.Mutex
}

// BatchOption configures a BatchCrawler.
type BatchOption func(*BatchCrawler)

// WithBatchLogger sets a custom logger for batch crawling.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchCrawler) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent objective
// crawls. Default is 1 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchCrawler) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithEntityOptions sets the options passed to every Objective the
// batch constructs, such as readiness overrides from the config file.
func WithEntityOptions(opts ...caf.Option) BatchOption {
	return func(b *BatchCrawler) {
		b.entityOpts = opts
	}
}

// NewBatchCrawler creates a new BatchCrawler.
//
// The factory is called once per objective to create a renderer; the
// batch closes it when the objective's crawl finishes.
func NewBatchCrawler(factory RendererFactory, opts ...BatchOption) *BatchCrawler {
	bc := &BatchCrawler{
		factory:     factory,
		concurrency: 1,
	}

	for _, opt := range opts {
		opt(bc)
	}

	if bc.logger == nil {
		bc.logger = slog.Default()
	}

	return bc
}

// Crawl builds the record for every objective link concurrently and
// returns the records in the order of the input links.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency
// correctly. A structural error on any objective (a malformed
// achievement table) cancels the rest of the batch: the output
// document would be wrong anyway.
func (bc *BatchCrawler) Crawl(ctx context.Context, links []model.Link) ([]model.ObjectiveRecord, error) {
	bc.logger.Info("crawling objectives",
		"total", len(links),
		"concurrency", bc.concurrency,
	)

	startTime := time.Now()

	// Results are indexed by input position to keep the output order
	// deterministic regardless of completion order.
	results := make([]model.ObjectiveRecord, len(links))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bc.concurrency)

	for i, link := range links {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bc.logger.Info("crawling objective",
				"url", link.String(),
				"index", i+1,
				"total", len(links),
			)

			record, err := bc.crawlOne(ctx, link)
			if err != nil {
				return err
			}

			bc.mu.Lock()
			results[i] = record
			bc.mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	bc.logger.Info("objective crawl complete",
		"total", len(links),
		"elapsed", time.Since(startTime),
	)

	return results, nil
}

// crawlOne builds one objective's record with its own renderer.
func (bc *BatchCrawler) crawlOne(ctx context.Context, link model.Link) (model.ObjectiveRecord, error) {
	renderer, err := bc.factory(ctx)
	if err != nil {
		return model.ObjectiveRecord{}, err
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			bc.logger.Warn("failed to close renderer", "url", link.String(), "error", err)
		}
	}()

	objective := caf.NewObjective(link, renderer, bc.entityOpts...)
	return objective.Record(ctx)
}
