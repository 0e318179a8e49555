package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/ncsc-tools/cafscan/internal/model"
)

// Run carries the state of one crawl through the pipeline.
// Steps read what earlier steps produced and append their own output.
type Run struct {
	// Base is the collection page the crawl starts from.
	Base model.Link

	// ObjectiveLinks are the objective pages discovered on the
	// collection page, in path order.
	ObjectiveLinks []model.Link

	// Objectives are the crawled objective records, in the same
	// order as ObjectiveLinks.
	Objectives []model.ObjectiveRecord

	// StartedAt is when the run began.
	StartedAt time.Time

	// Performed lists the names of the steps that ran, in order.
	Performed []string
}

// NewRun creates a run starting from the given collection page.
func NewRun(base model.Link) *Run {
	return &Run{
		Base:      base,
		StartedAt: time.Now(),
	}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the
// accumulated run state from previous steps.
//
// Design decision: We use an interface rather than function types
// because it allows steps to carry configuration state and provides
// a Name() method for logging.
type Step interface {
	// Do executes the pipeline step. It receives the context for
	// cancellation and the run to modify. Returns an error only for
	// failures that invalidate the whole crawl; recoverable page
	// failures are logged and leave sentinels in the output instead.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, the default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence, stopping on the first
// error. A step error means the output would be structurally wrong
// (a malformed table, an unwritable output file), so no partial
// document is produced.
//
// Design decision: We check context.Done() before each step rather
// than during, because steps handle their own timeouts. This allows
// graceful cleanup between steps while still respecting cancellation.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"base", run.Base.String(),
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"base", run.Base.String(),
				"error", err,
			)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"elapsed", time.Since(run.StartedAt),
		)

		run.Performed = append(run.Performed, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
