package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTreeWatcherTriggersOnChange(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))

	var triggered atomic.Int32
	w, err := NewTreeWatcher(root, 10*time.Millisecond, func(context.Context) {
		triggered.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "new.nix"), []byte("# new\n"), 0o644))

	deadline := time.After(3 * time.Second)
	for triggered.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("watcher did not trigger within deadline")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestTreeWatcherDebouncesBursts(t *testing.T) {
	root := t.TempDir()

	var triggered atomic.Int32
	w, err := NewTreeWatcher(root, 100*time.Millisecond, func(context.Context) {
		triggered.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	// A burst of writes within the debounce window.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "a.nix"), []byte{byte(i)}, 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(400 * time.Millisecond)
	if n := triggered.Load(); n < 1 || n > 2 {
		t.Errorf("expected the burst to collapse into 1-2 triggers, got %d", n)
	}
}
