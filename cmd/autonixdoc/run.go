package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/autonixdoc/internal/config"
	apperrors "git.home.luguber.info/inful/autonixdoc/internal/errors"
	"git.home.luguber.info/inful/autonixdoc/internal/events"
	"git.home.luguber.info/inful/autonixdoc/internal/history"
	"git.home.luguber.info/inful/autonixdoc/internal/logfields"
	"git.home.luguber.info/inful/autonixdoc/internal/metrics"
	"git.home.luguber.info/inful/autonixdoc/internal/pipeline"
	"git.home.luguber.info/inful/autonixdoc/internal/report"
	"git.home.luguber.info/inful/autonixdoc/internal/watch"
)

func runGenerate(ctx context.Context) error {
	cfg, err := loadConfig(CLI.Generate.Input, CLI.Generate.Output)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	rep := p.Run(ctx)
	finishRun(ctx, cfg, rep)

	if CLI.Generate.Report != "" {
		data, err := rep.ToJSON()
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.SeverityError, "serialize report")
		}
		if err := os.WriteFile(CLI.Generate.Report, data, 0o644); err != nil {
			return apperrors.WriteError(CLI.Generate.Report, err)
		}
	}

	if rep.Fatal != nil {
		switch rep.Fatal.Kind {
		case report.FatalUnreadableRoot:
			return apperrors.New(apperrors.CategoryCatalog, apperrors.SeverityFatal, rep.Fatal.Message)
		default:
			return apperrors.New(apperrors.CategoryConfig, apperrors.SeverityFatal, rep.Fatal.Message)
		}
	}
	if CLI.Generate.OnFailure == "fail" && rep.Failed > 0 {
		return apperrors.New(apperrors.CategoryRender, apperrors.SeverityError,
			fmt.Sprintf("%d of %d modules failed to render", rep.Failed, rep.Mapped))
	}
	return nil
}

func runWatch(ctx context.Context) error {
	cfg, err := loadConfig(CLI.Watch.Input, CLI.Watch.Output)
	if err != nil {
		return err
	}

	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		registry *prom.Registry
	)
	if cfg.Metrics.Enabled {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	p, err := pipeline.New(cfg, pipeline.WithRecorder(recorder))
	if err != nil {
		return err
	}

	runner := watch.NewRunner(cfg, func(ctx context.Context) {
		rep := p.Run(ctx)
		finishRun(ctx, cfg, rep)
	})
	if registry != nil {
		runner.WithMetricsHandler(metrics.HTTPHandler(registry))
	}
	return runner.Run(ctx)
}

// finishRun handles the post-run collaborators shared by generate and watch:
// history persistence and event publishing. Both are best-effort.
func finishRun(ctx context.Context, cfg *config.Config, rep *report.RunReport) {
	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History.Path)
		if err != nil {
			slog.Warn("History store unavailable", logfields.Error(err))
		} else {
			if err := store.Save(ctx, rep); err != nil {
				slog.Warn("Failed to persist run report", logfields.Error(err))
			}
			_ = store.Close()
		}
	}

	if cfg.Events.Enabled {
		pub, err := events.NewPublisher(&cfg.Events)
		if err != nil {
			slog.Warn("Event publisher unavailable", logfields.Error(err))
		} else {
			if err := pub.PublishRun(rep); err != nil {
				slog.Warn("Failed to publish run summary", logfields.Error(err))
			}
			pub.Close()
		}
	}
}

func runRuns(ctx context.Context, limit int) error {
	cfg, err := loadConfig("", "")
	if err != nil {
		// History inspection works without a full config; fall back to defaults.
		cfg = config.Default(".", ".")
	}

	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryRuntime, apperrors.SeverityError, "open history store")
	}
	defer store.Close()

	reports, err := store.Recent(ctx, limit)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryRuntime, apperrors.SeverityError, "list runs")
	}

	if len(reports) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	for _, rep := range reports {
		fmt.Printf("%s  %s  %-9s rendered=%d skipped=%d failed=%d\n",
			rep.StartedAt.Format("2006-01-02 15:04:05"), rep.RunID, rep.Outcome(),
			rep.Rendered, rep.Skipped, rep.Failed)
	}
	return nil
}
