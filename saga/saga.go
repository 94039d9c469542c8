// Package saga runs multi-request workflows against a backend that has no
// atomic multi-entity endpoint, e.g. "create product, then its variants".
// Each step carries an explicit status and the final report counts partial
// failures, instead of fire-and-forget completion counting.
package saga

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Status of one step
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
	StatusSkipped   Status = "SKIPPED"
)

// Step is one request of the workflow
type Step struct {
	Name string
	Do   func(ctx context.Context) error

	// Critical aborts the whole saga on failure; remaining steps are
	// marked skipped. Non-critical failures are recorded and the saga
	// continues, which matches sibling sub-entity creation.
	Critical bool

	Status Status
	Err    error
}

// Report summarizes a finished saga
type Report struct {
	Steps     []Step
	Succeeded int
	Failed    int
	Skipped   int
}

// Ok reports whether every step succeeded
func (r *Report) Ok() bool {
	return r.Failed == 0 && r.Skipped == 0
}

// PartialFailure reports whether some but not all steps failed
func (r *Report) PartialFailure() bool {
	return r.Failed > 0 && r.Succeeded > 0
}

// Error summarises the failures, nil when everything succeeded
func (r *Report) Error() error {
	if r.Failed == 0 {
		return nil
	}
	for _, s := range r.Steps {
		if s.Status == StatusFailed && s.Critical {
			return fmt.Errorf("step %q failed: %w", s.Name, s.Err)
		}
	}
	return fmt.Errorf("%d of %d steps failed", r.Failed, len(r.Steps))
}

// Run executes the steps in order. Context cancellation marks the
// remaining steps skipped and stops.
func Run(ctx context.Context, log *zap.Logger, steps []Step) *Report {
	report := &Report{Steps: steps}
	aborted := false

	for i := range report.Steps {
		step := &report.Steps[i]

		if aborted || ctx.Err() != nil {
			step.Status = StatusSkipped
			report.Skipped++
			continue
		}

		if err := step.Do(ctx); err != nil {
			step.Status = StatusFailed
			step.Err = err
			report.Failed++
			log.Warn("saga step failed",
				zap.String("step", step.Name),
				zap.Bool("critical", step.Critical),
				zap.Error(err),
			)
			if step.Critical {
				aborted = true
			}
			continue
		}
		step.Status = StatusSucceeded
		report.Succeeded++
	}
	return report
}
