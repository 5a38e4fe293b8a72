// Package watch reruns the generation pipeline when the input tree changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/autonixdoc/internal/logfields"
)

// TreeWatcher monitors a directory tree and invokes a trigger after changes,
// debounced so bursts of writes cause a single regeneration.
type TreeWatcher struct {
	root         string
	watcher      *fsnotify.Watcher
	trigger      func(context.Context)
	debounceTime time.Duration
	changeChan   chan struct{}
}

// NewTreeWatcher creates a watcher over root.
func NewTreeWatcher(root string, debounce time.Duration, trigger func(context.Context)) (*TreeWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}

	return &TreeWatcher{
		root:         absRoot,
		watcher:      watcher,
		trigger:      trigger,
		debounceTime: debounce,
		changeChan:   make(chan struct{}, 1),
	}, nil
}

// Start registers the tree and begins the watch and trigger loops. It returns
// immediately; loops stop when ctx is cancelled.
func (w *TreeWatcher) Start(ctx context.Context) error {
	if err := w.addTree(w.root); err != nil {
		return err
	}

	slog.Info("Watching for changes", logfields.Root(w.root))

	go w.watchLoop(ctx)
	go w.triggerLoop(ctx)
	return nil
}

// Close releases the underlying filesystem watcher.
func (w *TreeWatcher) Close() error {
	return w.watcher.Close()
}

// addTree watches every directory under root; fsnotify is not recursive.
func (w *TreeWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unwatchable path", slog.String("path", p), logfields.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *TreeWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// New directories must be registered for further events.
			if event.Op.Has(fsnotify.Create) {
				_ = w.addTree(event.Name)
			}
			select {
			case w.changeChan <- struct{}{}:
			default: // a change is already pending
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", logfields.Error(err))
		}
	}
}

func (w *TreeWatcher) triggerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.changeChan:
			// Debounce rapid file changes.
			timer := time.NewTimer(w.debounceTime)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			// Drain any change queued while debouncing.
			select {
			case <-w.changeChan:
			default:
			}
			w.trigger(ctx)
		}
	}
}
