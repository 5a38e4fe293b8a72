package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	renderDuration    prom.Histogram
	runDuration       prom.Histogram
	renderOutcomes    *prom.CounterVec
	runOutcomes       *prom.CounterVec
	workerConcurrency prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.renderDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "autonixdoc",
			Name:      "render_duration_seconds",
			Help:      "Duration of individual nixdoc invocations",
			Buckets:   prom.DefBuckets,
		})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "autonixdoc",
			Name:      "run_duration_seconds",
			Help:      "Total generation run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.renderOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "autonixdoc",
			Name:      "render_outcomes_total",
			Help:      "Per-module render outcome counts",
		}, []string{"outcome"})
		pr.runOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "autonixdoc",
			Name:      "run_outcomes_total",
			Help:      "Run outcomes by final status",
		}, []string{"outcome"})
		pr.workerConcurrency = prom.NewGauge(prom.GaugeOpts{
			Namespace: "autonixdoc",
			Name:      "worker_concurrency",
			Help:      "Configured render worker concurrency for the last run",
		})
		reg.MustRegister(pr.renderDuration, pr.runDuration, pr.renderOutcomes, pr.runOutcomes, pr.workerConcurrency)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveRenderDuration(d time.Duration) {
	p.renderDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRenderOutcome(outcome OutcomeLabel) {
	p.renderOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	p.runOutcomes.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetWorkerConcurrency(n int) {
	p.workerConcurrency.Set(float64(n))
}
