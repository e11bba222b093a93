// Package watch re-runs a search whenever the source file changes. Events
// are debounced so editors that write in bursts trigger a single re-search.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/seekfast/bmgrep/internal/debug"
)

// Watcher monitors one file and invokes a callback after changes settle.
type Watcher struct {
	watcher   *fsnotify.Watcher
	path      string
	debouncer *debouncer
	wg        sync.WaitGroup
}

// New creates a watcher for path. onChange runs on the watcher's goroutine
// after each debounced change; it must not block indefinitely.
func New(path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch path %q: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		watcher:   fsw,
		path:      abs,
		debouncer: newDebouncer(debounce, onChange),
	}, nil
}

// Start begins watching. The containing directory is watched rather than
// the file itself, because editors commonly replace files via rename and
// the watch on the old inode would be lost.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	debug.LogWatch("watching %s for changes to %s\n", dir, w.path)

	w.wg.Add(1)
	go w.processEvents(ctx)
	return nil
}

// Stop cancels watching and waits for the event loop to exit. The callback
// will not fire after Stop returns.
func (w *Watcher) Stop() error {
	err := w.watcher.Close()
	w.wg.Wait()
	w.debouncer.stop()
	return err
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isRelevant(event) {
				continue
			}
			debug.LogWatch("event %s on %s\n", event.Op, event.Name)
			w.debouncer.trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.LogWatch("watch error: %v\n", err)
		}
	}
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
