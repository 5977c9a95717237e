// Package watch re-runs datasets when their files change.
//
// It watches a single input directory with fsnotify, ignores anything that
// is not a dataset file, and debounces bursts of events per file (editors
// often write a file several times per save) so each burst triggers exactly
// one callback once the file has been quiet for the debounce interval.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/coregx/kmp/dataset"
	"github.com/coregx/kmp/internal/logging"
)

// DefaultDebounce is the quiet period used by NewWatcher.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports created or written dataset files in one directory.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewWatcher creates a watcher with DefaultDebounce.
func NewWatcher() (*Watcher, error) {
	return NewWatcherWithDebounce(DefaultDebounce)
}

// NewWatcherWithDebounce creates a watcher with a custom quiet period.
func NewWatcherWithDebounce(d time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:       fw,
		debounce: d,
		done:     make(chan struct{}),
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Watch monitors dir and calls onChange with the path of every dataset file
// that was created or written. It blocks until ctx is done or Stop is
// called. onChange may run concurrently for different files.
func (w *Watcher) Watch(ctx context.Context, dir string, onChange func(path string)) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := w.fw.Add(abs); err != nil {
		return err
	}
	log := logging.From(ctx, "dir", abs)
	log.Debug("watching")

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !dataset.IsDatasetFile(filepath.Base(event.Name)) {
				continue
			}
			w.schedule(event.Name, onChange)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "err", err)

		case <-ctx.Done():
			w.Stop()
			return ctx.Err()

		case <-w.done:
			return nil
		}
	}
}

// schedule (re)starts the quiet-period timer for path.
func (w *Watcher) schedule(path string, onChange func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		stopped := w.stopped
		w.mu.Unlock()
		if !stopped {
			onChange(path)
		}
	})
}

// Stop ends monitoring, cancels pending callbacks and releases resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	close(w.done)
	return w.fw.Close()
}
