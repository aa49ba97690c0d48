package check

import (
	"context"
	"log/slog"

	"github.com/nao1215/scamcheck/internal/classifier"
	"github.com/nao1215/scamcheck/internal/log"
)

// Job is the state that flows through a preprocessing pipeline.
type Job struct {
	// Input is the submission as received.
	Input *Input

	// Request is the classifier request being assembled.
	Request *classifier.Request

	// Text is the plain text scanned for local indicators: the message
	// itself, or the visible text of a fetched page.
	Text string
}

// Step is one preprocessing stage.
// A step that returns an error stops the pipeline and fails the check.
// Steps whose failure should not fail the check log and return nil.
type Step interface {
	// Do executes the step against the job.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline runs steps in the order they were added.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineLogger sets the logger used while executing steps.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a Pipeline from steps.
func NewPipeline(steps []Step, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		steps: steps,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.Discard()
	}
	return p
}

// Execute runs every step in sequence and stops at the first error.
// Cancellation is checked between steps; each step handles its own timeouts.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
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

		p.logger.Debug("executing step",
			"step", step.Name(),
			"modality", job.Request.Modality,
		)

		if err := step.Do(ctx, job); err != nil {
			p.logger.Debug("step failed",
				"step", step.Name(),
				"modality", job.Request.Modality,
				"error", err,
			)
			return err
		}
	}
	return nil
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
