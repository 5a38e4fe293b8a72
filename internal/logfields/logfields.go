package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeySource     = "source"
	KeyDest       = "destination"
	KeyRoot       = "root"
	KeyOutcome    = "outcome"
	KeyDurationMS = "duration_ms"
	KeyCandidates = "candidates"
	KeyMapped     = "mapped"
	KeyRendered   = "rendered"
	KeySkipped    = "skipped"
	KeyFailed     = "failed"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Dest(p string) slog.Attr         { return slog.String(KeyDest, p) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Candidates(n int) slog.Attr      { return slog.Int(KeyCandidates, n) }
func Mapped(n int) slog.Attr          { return slog.Int(KeyMapped, n) }
func Rendered(n int) slog.Attr        { return slog.Int(KeyRendered, n) }
func Skipped(n int) slog.Attr         { return slog.Int(KeySkipped, n) }
func Failed(n int) slog.Attr          { return slog.Int(KeyFailed, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
