// Package watch reports changes to a single schema file.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches the directory holding a file and filters events for that
// file, so editors that save by rename are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	w        *fsnotify.Watcher
}

// New starts watching path.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &Watcher{path: abs, debounce: DefaultDebounce, w: w}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Next blocks until the file is written, created or renamed into place,
// then returns once no further event has arrived for the debounce interval.
func (w *Watcher) Next(ctx context.Context) error {
	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-settle:
			return nil
		case ev, ok := <-w.w.Events:
			if !ok {
				return fmt.Errorf("watch %s: watcher closed", w.path)
			}
			if !w.relevant(ev) {
				continue
			}
			settle = time.After(w.debounce)
		case err, ok := <-w.w.Errors:
			if !ok {
				return fmt.Errorf("watch %s: watcher closed", w.path)
			}
			return fmt.Errorf("watch %s: %w", w.path, err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.w.Close()
}
