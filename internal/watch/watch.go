// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     watch
// Description: Debounced file watching for re-checking sources on save
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	thingerror "github.com/msto63/thing/foundation/core/error"
	"github.com/msto63/thing/pkg/core/logging"
)

// DefaultDebounce collapses the burst of events editors emit on save
const DefaultDebounce = 150 * time.Millisecond

// Watcher calls a handler after a watched file changes. The parent
// directory is watched so that editors replacing the file by rename are
// noticed as well.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(path string)
	logger   *logging.Logger

	watcher *fsnotify.Watcher
	done    chan struct{}
	once    sync.Once
}

// New creates a watcher for path. A debounce of zero uses DefaultDebounce.
func New(path string, debounce time.Duration, onChange func(path string), logger *logging.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.New("watch")
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins watching. Events are handled in the background until ctx
// is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return thingerror.Wrap(err, "failed to create watcher").
			WithCode(thingerror.CodeIOError).
			WithOperation("watch.Start")
	}

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return thingerror.Wrap(err, "failed to watch directory").
			WithCode(thingerror.CodeIOError).
			WithOperation("watch.Start").
			WithDetail("dir", dir)
	}

	w.watcher = watcher
	w.logger.Info("Watching for changes", "file", w.path)

	go w.loop(ctx)
	return nil
}

// Run starts watching and blocks until ctx is cancelled or Stop is called
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-w.done
	return nil
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() {
	if w.watcher != nil {
		w.watcher.Close()
	}
}

// Done is closed when the event loop has ended
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.once.Do(func() { close(w.done) })
	defer w.watcher.Close()

	// a fresh timer per event keeps a stale fire from an earlier timer out
	// of the loop regardless of the runtime's timer channel semantics
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping file watcher (context cancelled)")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("File event", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("File watcher error", "error", err)

		case <-fire:
			timer, fire = nil, nil
			w.onChange(w.path)
		}
	}
}

// relevant reports whether event touches the watched file with a write or
// a (re)creation
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create
}
