package report

import (
	"errors"
	"testing"

	"git.home.luguber.info/inful/autonixdoc/internal/loader"
)

func entry(src, dest string, status EntryStatus) Entry {
	return Entry{Mapping: loader.Mapping{Source: src, Destination: dest}, Status: status}
}

func TestFinalizeDerivesCounts(t *testing.T) {
	r := New("lib", "doc")
	r.Candidates = 5
	r.Entries = []Entry{
		entry("lib/a.nix", "doc/a.md", StatusRendered),
		entry("lib/b.nix", "doc/b.md", StatusSkipped),
		entry("lib/c.nix", "doc/c.md", StatusFailed),
		entry("lib/d.nix", "doc/d.md", StatusRendered),
	}
	r.Finalize()

	if r.Mapped != 4 {
		t.Errorf("expected 4 mapped, got %d", r.Mapped)
	}
	if r.Rendered != 2 || r.Skipped != 1 || r.Failed != 1 {
		t.Errorf("unexpected counts: rendered=%d skipped=%d failed=%d", r.Rendered, r.Skipped, r.Failed)
	}
	if r.FinishedAt.IsZero() {
		t.Error("Finalize must stamp FinishedAt")
	}
	if r.RunID == "" {
		t.Error("report must carry a run ID")
	}
}

func TestOutcomePrecedence(t *testing.T) {
	r := New("lib", "doc")
	if r.Outcome() != "success" {
		t.Errorf("empty report should be success, got %s", r.Outcome())
	}

	r.Failed = 2
	if r.Outcome() != "failed" {
		t.Errorf("expected failed, got %s", r.Outcome())
	}

	r.Cancelled = true
	if r.Outcome() != "cancelled" {
		t.Errorf("cancelled takes precedence over failed, got %s", r.Outcome())
	}

	r.SetFatal(FatalCollision, errors.New("two sources, one destination"))
	if r.Outcome() != "fatal" {
		t.Errorf("fatal takes precedence over everything, got %s", r.Outcome())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	r := New("lib", "doc")
	r.Commit = "abc123"
	r.Entries = []Entry{entry("lib/a.nix", "doc/a.md", StatusRendered)}
	r.Finalize()

	data, err := r.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	restored, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}

	if restored.RunID != r.RunID {
		t.Errorf("expected run ID %s, got %s", r.RunID, restored.RunID)
	}
	if restored.Commit != r.Commit {
		t.Errorf("expected commit %s, got %s", r.Commit, restored.Commit)
	}
	if len(restored.Entries) != 1 || restored.Entries[0].Mapping.Source != "lib/a.nix" {
		t.Errorf("entries not preserved: %+v", restored.Entries)
	}
}
