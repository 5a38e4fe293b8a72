// Package metrics provides observability hooks for generation runs.
//
// The package implements the Null Object pattern so components never need
// nil checks: by default everything uses NoopRecorder, whose no-op methods
// inline away. When metrics are wanted (watch mode with the endpoint
// enabled), a PrometheusRecorder is injected instead:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	p, _ := pipeline.New(cfg, pipeline.WithRecorder(recorder))
//
// Tests inject their own Recorder to verify what a run observed.
package metrics
