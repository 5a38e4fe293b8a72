// Package events publishes run summaries to NATS for downstream consumers
// (dashboards, notification bots). Publishing is best-effort and optional.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/autonixdoc/internal/config"
	"git.home.luguber.info/inful/autonixdoc/internal/logfields"
	"git.home.luguber.info/inful/autonixdoc/internal/report"
)

// RunSummary is the event payload emitted after each completed run.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Root       string    `json:"root"`
	Commit     string    `json:"commit,omitempty"`
	Outcome    string    `json:"outcome"`
	Candidates int       `json:"candidates"`
	Rendered   int       `json:"rendered"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	FinishedAt time.Time `json:"finished_at"`
}

// Publisher publishes run summaries to a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS using the events configuration.
func NewPublisher(cfg *config.EventsConfig) (*Publisher, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("events publishing is disabled")
	}

	conn, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	slog.Info("NATS publisher initialized", "url", cfg.URL, "subject", cfg.Subject)
	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// PublishRun emits a summary for a finished run.
func (p *Publisher) PublishRun(rep *report.RunReport) error {
	summary := RunSummary{
		RunID:      rep.RunID,
		Root:       rep.Root,
		Commit:     rep.Commit,
		Outcome:    rep.Outcome(),
		Candidates: rep.Candidates,
		Rendered:   rep.Rendered,
		Skipped:    rep.Skipped,
		Failed:     rep.Failed,
		FinishedAt: rep.FinishedAt,
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish run summary: %w", err)
	}

	slog.Debug("Published run summary", logfields.RunID(rep.RunID))
	return nil
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}
