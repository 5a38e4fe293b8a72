package logfields

import (
	"errors"
	"testing"
)

func TestAttrsCarryCanonicalKeys(t *testing.T) {
	if got := RunID("r1").Key; got != KeyRunID {
		t.Errorf("RunID key = %s, want %s", got, KeyRunID)
	}
	if got := Source("lib/a.nix").Value.String(); got != "lib/a.nix" {
		t.Errorf("Source value = %s", got)
	}
	if got := Rendered(3).Value.Int64(); got != 3 {
		t.Errorf("Rendered value = %d", got)
	}
}

func TestErrorAttrHandlesNil(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("nil error should render empty, got %q", got)
	}
	if got := Error(errors.New("boom")).Value.String(); got != "boom" {
		t.Errorf("error value = %q", got)
	}
}
