package watch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/autonixdoc/internal/config"
	"git.home.luguber.info/inful/autonixdoc/internal/logfields"
)

// Runner owns watch-mode execution: an initial run, filesystem-triggered
// reruns, an optional scheduled rebuild interval, and an optional metrics
// endpoint.
type Runner struct {
	cfg            *config.Config
	trigger        func(context.Context)
	metricsHandler http.Handler
}

// NewRunner creates a watch-mode runner. trigger performs one generation run.
func NewRunner(cfg *config.Config, trigger func(context.Context)) *Runner {
	return &Runner{cfg: cfg, trigger: trigger}
}

// WithMetricsHandler serves the given handler on the configured metrics address.
func (r *Runner) WithMetricsHandler(h http.Handler) *Runner {
	r.metricsHandler = h
	return r
}

// Run blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	// Initial run before watching so the output tree exists.
	r.trigger(ctx)

	debounce, _ := time.ParseDuration(r.cfg.Watch.Debounce)

	watcher, err := NewTreeWatcher(r.cfg.Input, debounce, r.trigger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	var scheduler gocron.Scheduler
	if interval, _ := time.ParseDuration(r.cfg.Watch.Interval); interval > 0 {
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(func() { r.trigger(ctx) }),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule rebuild job: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
		slog.Info("Scheduled rebuilds enabled", slog.Duration("interval", interval))
	}

	var srv *http.Server
	if r.cfg.Metrics.Enabled && r.metricsHandler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", r.metricsHandler)
		srv = &http.Server{Addr: r.cfg.Metrics.Listen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			slog.Info("Metrics endpoint listening", slog.String("addr", r.cfg.Metrics.Listen))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("Metrics server failed", logfields.Error(err))
			}
		}()
	}

	<-ctx.Done()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
	return nil
}
