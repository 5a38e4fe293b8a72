// Package report defines the RunReport, the single artifact a pipeline
// execution hands back to its driver.
package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/autonixdoc/internal/loader"
)

// EntryStatus classifies the outcome of one mapping.
type EntryStatus string

const (
	StatusRendered EntryStatus = "rendered"
	StatusSkipped  EntryStatus = "skipped"
	StatusFailed   EntryStatus = "failed"
)

// FatalKind identifies a run-level failure. Only these terminate a run early;
// per-mapping failures are recorded in entries and the run continues.
type FatalKind string

const (
	FatalUnreadableRoot FatalKind = "unreadable_root"
	FatalCollision      FatalKind = "destination_collision"
)

// Entry is one (mapping, outcome) pair in catalog order.
type Entry struct {
	Mapping     loader.Mapping `json:"mapping"`
	Status      EntryStatus    `json:"status"`
	Reason      string         `json:"reason,omitempty"`      // skip reason
	Error       string         `json:"error,omitempty"`       // render or write failure
	Unchanged   bool           `json:"unchanged,omitempty"`   // destination already had identical content
	Fingerprint string         `json:"fingerprint,omitempty"` // content fingerprint of rendered output
	DurationMS  float64        `json:"duration_ms"`
}

// FatalError describes a run-level configuration failure.
type FatalError struct {
	Kind    FatalKind `json:"kind"`
	Message string    `json:"message"`
}

// RunReport is the ordered outcome record for one pipeline execution. It is
// created once per run and treated as immutable once Finalize has been called.
type RunReport struct {
	RunID      string    `json:"run_id"`
	Root       string    `json:"root"`
	Output     string    `json:"output"`
	Commit     string    `json:"commit,omitempty"` // HEAD of the input tree, when it is a git repo
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Candidates int `json:"candidates"`
	Mapped     int `json:"mapped"`
	Rendered   int `json:"rendered"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`

	Cancelled bool        `json:"cancelled,omitempty"`
	Fatal     *FatalError `json:"fatal,omitempty"`
	Warnings  []string    `json:"warnings,omitempty"`
	IndexPath string      `json:"index_path,omitempty"`

	Entries []Entry `json:"entries"`
}

// New creates a RunReport for a run over root writing to output.
func New(root, output string) *RunReport {
	return &RunReport{
		RunID:     uuid.NewString(),
		Root:      root,
		Output:    output,
		StartedAt: time.Now().UTC(),
	}
}

// SetFatal records a run-level failure. The report is still the return value;
// fatal errors surface as data, not as a raised error.
func (r *RunReport) SetFatal(kind FatalKind, err error) {
	r.Fatal = &FatalError{Kind: kind, Message: err.Error()}
}

// Finalize derives aggregate counts from the entries and stamps the end time.
// Callers must not mutate the report afterwards.
func (r *RunReport) Finalize() {
	r.Mapped = len(r.Entries)
	r.Rendered, r.Skipped, r.Failed = 0, 0, 0
	for i := range r.Entries {
		switch r.Entries[i].Status {
		case StatusRendered:
			r.Rendered++
		case StatusSkipped:
			r.Skipped++
		case StatusFailed:
			r.Failed++
		}
	}
	r.FinishedAt = time.Now().UTC()
}

// Outcome summarizes the run for metrics and event labels.
func (r *RunReport) Outcome() string {
	switch {
	case r.Fatal != nil:
		return "fatal"
	case r.Cancelled:
		return "cancelled"
	case r.Failed > 0:
		return "failed"
	default:
		return "success"
	}
}

// Duration returns the wall-clock duration of the run.
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ToJSON serializes the report.
func (r *RunReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FromJSON deserializes a report.
func FromJSON(data []byte) (*RunReport, error) {
	var r RunReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
