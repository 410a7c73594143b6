package app

import (
	"context"

	"go.uber.org/zap"
)

// ExitInterrupted is returned when the context is cancelled between steps
const ExitInterrupted = 130

// StepOutcome is what a step reports back to the pipeline
type StepOutcome struct {
	ExitCode int
	Fatal    bool // stop the pipeline; ExitCode becomes the pipeline's code
	Skipped  bool
}

// Continue returns a non-fatal outcome carrying code
func Continue(code int) StepOutcome {
	return StepOutcome{ExitCode: code}
}

// Abort returns a fatal outcome carrying code
func Abort(code int) StepOutcome {
	return StepOutcome{ExitCode: code, Fatal: true}
}

// Skip returns an outcome for a step that had nothing to do
func Skip() StepOutcome {
	return StepOutcome{Skipped: true}
}

// Step is one named stage of a workflow
type Step struct {
	Name string
	Run  func(ctx context.Context) StepOutcome
}

// StepReport records how a step finished
type StepReport struct {
	Name     string `json:"name"`
	ExitCode int    `json:"exit_code"`
	Skipped  bool   `json:"skipped,omitempty"`
}

// PipelineResult is the outcome of a pipeline run
type PipelineResult struct {
	Steps     []StepReport
	FatalStep string // empty when every step ran
	ExitCode  int    // the fatal step's code, or 0
}

// Aborted reports whether a fatal step stopped the pipeline
func (r PipelineResult) Aborted() bool {
	return r.FatalStep != ""
}

// Ran reports whether the named step was executed (not skipped)
func (r PipelineResult) Ran(name string) bool {
	for _, s := range r.Steps {
		if s.Name == name {
			return !s.Skipped
		}
	}
	return false
}

// Code returns the exit code of the named step, if it ran
func (r PipelineResult) Code(name string) (int, bool) {
	for _, s := range r.Steps {
		if s.Name == name && !s.Skipped {
			return s.ExitCode, true
		}
	}
	return 0, false
}

// FirstFailure returns the first non-zero code among the named steps,
// in the order given, or 0 when all of them succeeded or were skipped
func (r PipelineResult) FirstFailure(names ...string) int {
	for _, name := range names {
		if code, ok := r.Code(name); ok && code != 0 {
			return code
		}
	}
	return 0
}

// Pipeline runs steps in order and stops at the first fatal outcome
type Pipeline struct {
	steps  []Step
	logger *zap.Logger
}

// NewPipeline creates a pipeline over steps
func NewPipeline(logger *zap.Logger, steps ...Step) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{steps: steps, logger: logger}
}

// Run executes the steps sequentially
func (p *Pipeline) Run(ctx context.Context) PipelineResult {
	var result PipelineResult

	for _, step := range p.steps {
		if ctx.Err() != nil {
			p.logger.Warn("Pipeline interrupted", zap.String("step", step.Name))
			result.FatalStep = step.Name
			result.ExitCode = ExitInterrupted
			return result
		}

		outcome := step.Run(ctx)
		result.Steps = append(result.Steps, StepReport{
			Name:     step.Name,
			ExitCode: outcome.ExitCode,
			Skipped:  outcome.Skipped,
		})

		p.logger.Debug("Step finished",
			zap.String("step", step.Name),
			zap.Int("exit_code", outcome.ExitCode),
			zap.Bool("skipped", outcome.Skipped),
			zap.Bool("fatal", outcome.Fatal))

		if outcome.Fatal {
			result.FatalStep = step.Name
			result.ExitCode = outcome.ExitCode
			return result
		}
	}

	return result
}
