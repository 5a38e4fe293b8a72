package metrics

import "time"

// OutcomeLabel enumerates per-module render outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeRendered OutcomeLabel = "rendered"
	OutcomeSkipped  OutcomeLabel = "skipped"
	OutcomeFailed   OutcomeLabel = "failed"
)

// Recorder defines observability hooks for run and render metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveRenderDuration(d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncRenderOutcome(outcome OutcomeLabel)
	IncRunOutcome(outcome string) // outcome: success|failed|fatal|cancelled
	SetWorkerConcurrency(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRenderDuration(time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)    {}
func (NoopRecorder) IncRenderOutcome(OutcomeLabel)       {}
func (NoopRecorder) IncRunOutcome(string)                {}
func (NoopRecorder) SetWorkerConcurrency(int)            {}
