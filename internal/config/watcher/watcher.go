// Package watcher reports changes to the reqpad config file.
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a new file and renaming it over the old one are still
// seen. Bursts of events are collapsed into one callback.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/reqpad/internal/logging"
)

// DefaultDebounce is the quiet period after the last event before the
// handler runs.
const DefaultDebounce = 100 * time.Millisecond

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the last operation seen during the debounce window.
	Op Operation

	// Time is when the event occurred.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Handler is called when a file change is detected.
type Handler func(event Event)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		w.log = logging.OrDiscard(l)
	}
}

// Watcher monitors one file for changes.
type Watcher struct {
	path     string
	debounce time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	pending *Event
	timer   *time.Timer
}

// New creates a watcher for path. The file need not exist yet; its
// directory must.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run delivers change events to fn until ctx is cancelled. fn runs on a
// timer goroutine, never concurrently with itself. Run returns nil when ctx
// is cancelled.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.log.Debug("config watch started", "path", w.path)

	var fnMu sync.Mutex
	deliver := func() {
		w.mu.Lock()
		ev := w.pending
		w.pending = nil
		w.mu.Unlock()
		if ev == nil || ctx.Err() != nil {
			return
		}
		fnMu.Lock()
		defer fnMu.Unlock()
		fn(*ev)
	}

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("config watch stopped", "path", w.path)
			return nil

		case fsEvent, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			op, ok := convertOp(fsEvent.Op)
			if !ok || !w.matches(fsEvent.Name) {
				continue
			}
			w.schedule(Event{Path: w.path, Op: op, Time: time.Now()}, deliver)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Events were lost; assume the file changed.
				w.schedule(Event{Path: w.path, Op: OpWrite, Time: time.Now()}, deliver)
				continue
			}
			w.log.Warn("config watch error", "path", w.path, "err", err)
		}
	}
}

// Watch is New followed by Run.
func Watch(ctx context.Context, path string, fn Handler, opts ...Option) error {
	w, err := New(path, opts...)
	if err != nil {
		return err
	}
	return w.Run(ctx, fn)
}

// schedule records ev as pending and restarts the debounce timer.
func (w *Watcher) schedule(ev Event, deliver func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = &ev
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, deliver)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = nil
}

func (w *Watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.path
}

// convertOp maps an fsnotify operation. Chmod alone is not a change.
func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	}
	return 0, false
}
