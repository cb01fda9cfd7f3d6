// Package health derives a coarse service health verdict from recent
// scoring metrics and collaborator availability.
package health

import (
	"time"

	"github.com/riskfuse/riskfuse/internal/monitor"
)

// Default evaluation constants.
const (
	// defaultErrorRateThreshold degrades the service when the majority of
	// recent attempts failed.
	defaultErrorRateThreshold = 0.5
)

// Status is the coarse health verdict.
type Status string

// Possible verdicts.
const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
)

// Report is the health verdict served to callers.
type Report struct {
	Status        Status                     `json:"status"`
	Collaborators monitor.CollaboratorStatus `json:"collaborators"`
	Timestamp     time.Time                  `json:"timestamp"`
}

// Evaluator is a stateless decision over a metrics snapshot and the
// collaborator status reported by the caller. It never probes or retries
// collaborators itself.
type Evaluator struct {
	errorRateThreshold float64
}

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithErrorRateThreshold sets the error rate above which the service is
// considered degraded. Values outside (0, 1] keep the default.
func WithErrorRateThreshold(t float64) Option {
	return func(e *Evaluator) {
		if t > 0 && t <= 1 {
			e.errorRateThreshold = t
		}
	}
}

// NewEvaluator creates an Evaluator with the given options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		errorRateThreshold: defaultErrorRateThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Threshold returns the configured error rate threshold.
func (e *Evaluator) Threshold() float64 {
	return e.errorRateThreshold
}

// Evaluate returns degraded when either collaborator is unavailable or the
// snapshot error rate exceeds the threshold, healthy otherwise. An error
// rate exactly at the threshold is still healthy.
func (e *Evaluator) Evaluate(snap monitor.MetricsSnapshot, collaborators monitor.CollaboratorStatus) Status {
	if !collaborators.Local || !collaborators.Remote {
		return StatusDegraded
	}
	if snap.ErrorRate > e.errorRateThreshold {
		return StatusDegraded
	}
	return StatusHealthy
}
