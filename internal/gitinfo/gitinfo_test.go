package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHeadCommitOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.nix"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := HeadCommit(dir); err == nil {
		t.Error("expected an error for a directory outside any git repository")
	}
}
