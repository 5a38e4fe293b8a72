package errors

import (
	"errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CategoryConfig, SeverityFatal, "bad config")
	want := "config (fatal): bad config"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	cause := errors.New("underlying")
	wrapped := Wrap(cause, CategoryRender, SeverityError, "render broke")
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error must unwrap to its cause")
	}
}

func TestIsCategory(t *testing.T) {
	err := DestinationCollision("doc/a.md", []string{"lib/a.nix", "lib/b.nix"})
	if !IsCategory(err, CategoryConfig) {
		t.Error("collision should be a config error")
	}
	if IsCategory(errors.New("plain"), CategoryConfig) {
		t.Error("plain errors have no category")
	}
}

func TestExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{errors.New("plain"), 1},
		{New(CategoryValidation, SeverityFatal, "usage"), 2},
		{New(CategoryConfig, SeverityFatal, "config"), 7},
		{New(CategoryCatalog, SeverityFatal, "root"), 11},
		{New(CategoryRender, SeverityError, "render"), 11},
		{New(CategoryRuntime, SeverityError, "runtime"), 12},
	}
	for _, tt := range tests {
		if got := adapter.ExitCodeFor(tt.err); got != tt.want {
			t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestFormatErrorVerbosity(t *testing.T) {
	err := Wrap(errors.New("cause"), CategoryConfig, SeverityFatal, "bad config")

	terse := NewCLIErrorAdapter(false, nil).FormatError(err)
	verbose := NewCLIErrorAdapter(true, nil).FormatError(err)

	if terse == verbose {
		t.Error("verbose formatting should differ from terse")
	}
}
