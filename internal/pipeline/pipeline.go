// Package pipeline orchestrates catalog enumeration, path resolution,
// rendering and writing into a single reported run.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/autonixdoc/internal/catalog"
	"git.home.luguber.info/inful/autonixdoc/internal/config"
	"git.home.luguber.info/inful/autonixdoc/internal/gitinfo"
	"git.home.luguber.info/inful/autonixdoc/internal/loader"
	"git.home.luguber.info/inful/autonixdoc/internal/logfields"
	"git.home.luguber.info/inful/autonixdoc/internal/metrics"
	"git.home.luguber.info/inful/autonixdoc/internal/nixdoc"
	"git.home.luguber.info/inful/autonixdoc/internal/report"
)

// State is the pipeline execution phase.
type State string

const (
	StateCollecting State = "collecting"
	StateRendering  State = "rendering"
	StateReported   State = "reported"
)

// Pipeline drives one generation run. Construct with New; a Pipeline is good
// for any number of sequential runs (watch mode reuses it per trigger).
type Pipeline struct {
	cfg      *config.Config
	ldr      loader.Loader
	renderer nixdoc.Renderer
	recorder metrics.Recorder

	mu    sync.Mutex
	state State
}

// Option customizes a Pipeline, mainly for tests.
type Option func(*Pipeline)

// WithRenderer replaces the exec-backed renderer.
func WithRenderer(r nixdoc.Renderer) Option {
	return func(p *Pipeline) { p.renderer = r }
}

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// New builds a pipeline from configuration.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	ldr, err := loader.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:      cfg,
		ldr:      ldr,
		renderer: nixdoc.NewExecRenderer(cfg),
		recorder: metrics.NoopRecorder{},
		state:    StateCollecting,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// State returns the current pipeline phase.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Run executes one generation run and always returns a RunReport; run-level
// failures (unreadable root, destination collisions) surface as the report's
// Fatal field rather than as a returned error. Per-file render and write
// failures are recorded in the report's entries and never abort the run.
func (p *Pipeline) Run(ctx context.Context) *report.RunReport {
	rep := report.New(p.cfg.Input, p.cfg.Output)
	defer func() {
		p.recorder.IncRunOutcome(rep.Outcome())
		p.recorder.ObserveRunDuration(rep.Duration())
	}()

	if commit, err := gitinfo.HeadCommit(p.cfg.Input); err == nil {
		rep.Commit = commit
	}

	// Collecting: enumerate the catalog and resolve the full mapping set
	// before anything is rendered or written.
	p.setState(StateCollecting)

	candidates, warnings, err := catalog.Enumerate(p.cfg.Input, p.cfg.Include, p.cfg.Exclude)
	if err != nil {
		rep.SetFatal(report.FatalUnreadableRoot, err)
		rep.Finalize()
		p.setState(StateReported)
		return rep
	}
	rep.Candidates = len(candidates)
	for _, w := range warnings {
		rep.Warnings = append(rep.Warnings, w.Path+": "+w.Reason)
	}

	mappings, err := loader.ResolveAll(p.ldr, candidates)
	if err != nil {
		rep.SetFatal(report.FatalCollision, err)
		rep.Finalize()
		p.setState(StateReported)
		return rep
	}

	slog.Info("Catalog collected",
		logfields.RunID(rep.RunID),
		logfields.Candidates(len(candidates)),
		logfields.Mapped(len(mappings)))

	// Rendering: independent mappings across a bounded worker pool. Entries
	// land in a catalog-position-indexed buffer so the report order matches
	// catalog order regardless of completion order.
	p.setState(StateRendering)
	rep.Cancelled = p.renderAll(ctx, mappings, rep)

	rep.Finalize()

	if p.cfg.Index.Enabled && rep.Fatal == nil && !rep.Cancelled {
		if indexPath, err := WriteIndex(p.cfg, rep); err != nil {
			slog.Warn("Index generation failed", logfields.Error(err))
			rep.Warnings = append(rep.Warnings, "index: "+err.Error())
		} else {
			rep.IndexPath = indexPath
		}
	}

	p.setState(StateReported)
	slog.Info("Run complete",
		logfields.RunID(rep.RunID),
		logfields.Outcome(rep.Outcome()),
		logfields.Rendered(rep.Rendered),
		logfields.Skipped(rep.Skipped),
		logfields.Failed(rep.Failed),
		logfields.DurationMS(float64(rep.Duration().Milliseconds())))
	return rep
}

// renderAll processes mappings with bounded concurrency and merges results in
// catalog order. Returns true when the run was cancelled before dispatching
// every mapping; entries processed so far are kept.
func (p *Pipeline) renderAll(ctx context.Context, mappings []loader.Mapping, rep *report.RunReport) bool {
	if len(mappings) == 0 {
		return false
	}

	workers := p.cfg.Concurrency
	if workers > len(mappings) {
		workers = len(mappings)
	}
	p.recorder.SetWorkerConcurrency(workers)

	entries := make([]report.Entry, len(mappings))
	done := make([]bool, len(mappings))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i] = p.process(ctx, mappings[i])
				done[i] = true
			}
		}()
	}

	cancelled := false
dispatch:
	for i := range mappings {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		select {
		case <-ctx.Done():
			cancelled = true
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for i := range entries {
		if done[i] {
			rep.Entries = append(rep.Entries, entries[i])
		}
	}
	return cancelled
}

// process renders one mapping and writes its output. All failure modes are
// folded into the returned entry.
func (p *Pipeline) process(ctx context.Context, m loader.Mapping) report.Entry {
	t0 := time.Now()
	entry := report.Entry{Mapping: m}

	// The filesystem may have changed between discovery and processing.
	if _, err := os.Stat(m.Source); err != nil {
		entry.Status = report.StatusFailed
		entry.Error = "source no longer readable: " + err.Error()
		return p.finishEntry(entry, t0)
	}

	outcome := p.renderer.Render(ctx, m.Source)
	switch outcome.Status {
	case nixdoc.StatusSkipped:
		entry.Status = report.StatusSkipped
		entry.Reason = outcome.Reason
	case nixdoc.StatusFailed:
		entry.Status = report.StatusFailed
		entry.Error = outcome.Err.Error()
	case nixdoc.StatusRendered:
		entry = p.write(entry, outcome.Content)
	}

	return p.finishEntry(entry, t0)
}

// write persists rendered content, creating missing destination directories.
// Unchanged destinations (same content fingerprint) are left untouched.
func (p *Pipeline) write(entry report.Entry, content []byte) report.Entry {
	dest := entry.Mapping.Destination
	entry.Fingerprint = mdfp.CalculateFingerprintFromParts("", string(content))

	if existing, err := os.ReadFile(dest); err == nil {
		if mdfp.CalculateFingerprintFromParts("", string(existing)) == entry.Fingerprint {
			entry.Status = report.StatusRendered
			entry.Unchanged = true
			return entry
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		entry.Status = report.StatusFailed
		entry.Error = "create destination directory: " + err.Error()
		return entry
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		entry.Status = report.StatusFailed
		entry.Error = "write destination: " + err.Error()
		return entry
	}

	entry.Status = report.StatusRendered
	return entry
}

func (p *Pipeline) finishEntry(entry report.Entry, t0 time.Time) report.Entry {
	d := time.Since(t0)
	entry.DurationMS = float64(d.Microseconds()) / 1000.0
	p.recorder.ObserveRenderDuration(d)
	p.recorder.IncRenderOutcome(metrics.OutcomeLabel(entry.Status))
	slog.Debug("Processed module",
		logfields.Source(entry.Mapping.Source),
		logfields.Dest(entry.Mapping.Destination),
		logfields.Outcome(string(entry.Status)))
	return entry
}
