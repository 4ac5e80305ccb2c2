package history

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/reqpad/internal/logging"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Defaults used when Config fields are zero.
const (
	DefaultDebounce   = 500 * time.Millisecond
	DefaultMaxEntries = 1000
)

// Entry is one immutable checkpoint.
type Entry[T any] struct {
	Value     T
	Timestamp time.Time
}

// Config holds store settings.
type Config struct {
	// Debounce is the minimum gap between two archived checkpoints.
	Debounce time.Duration

	// MaxEntries bounds the past stack. The oldest entry is evicted first.
	MaxEntries int

	// Now is the clock. Nil means time.Now.
	Now func() time.Time

	// Logger receives debug records for every operation. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns the default store settings.
func DefaultConfig() Config {
	return Config{
		Debounce:   DefaultDebounce,
		MaxEntries: DefaultMaxEntries,
	}
}

// Store is a debounced undo/redo history over values of type T.
type Store[T any] struct {
	mu sync.Mutex

	past    []Entry[T]
	future  []Entry[T]
	current Entry[T]
	hasCur  bool

	lastSnapshot time.Time
	sealed       bool

	// Grouping state
	grouping     bool
	groupName    string
	groupStarted bool

	debounce   time.Duration
	maxEntries int
	equal      func(a, b T) bool
	now        func() time.Time
	log        *slog.Logger
}

// NewStore creates an empty store. equal decides whether a push is a no-op.
func NewStore[T any](cfg Config, equal func(a, b T) bool) *Store[T] {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Store[T]{
		debounce:   cfg.Debounce,
		maxEntries: cfg.MaxEntries,
		equal:      equal,
		now:        cfg.Now,
		log:        logging.OrDiscard(cfg.Logger),
	}
}

// Reset discards all history and makes v the current value.
// The next push archives v.
func (s *Store[T]) Reset(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.past = nil
	s.future = nil
	s.current = Entry[T]{Value: v, Timestamp: now}
	s.hasCur = true
	s.lastSnapshot = now
	s.sealed = false
	s.grouping = false
	s.groupStarted = false
}

// Push records v as the new current value. Pushing a value equal to the
// current one does nothing. Any push that changes the value clears the future.
func (s *Store[T]) Push(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasCur && s.equal(s.current.Value, v) {
		return
	}

	now := s.now()
	archived := false

	switch {
	case !s.hasCur:
		// First value: becomes the baseline, nothing to archive.
		s.lastSnapshot = now
		s.groupStarted = s.grouping
	case s.grouping:
		if !s.groupStarted {
			s.archiveLocked(now)
			archived = true
			s.groupStarted = true
		}
	case s.sealed || len(s.past) == 0 || now.Sub(s.lastSnapshot) >= s.debounce:
		s.archiveLocked(now)
		archived = true
	}

	s.sealed = false
	s.current = Entry[T]{Value: v, Timestamp: now}
	s.hasCur = true
	s.future = nil

	s.log.Debug("history push",
		"archived", archived,
		"past", len(s.past),
		"grouping", s.grouping)
}

// archiveLocked moves the current value onto the past stack.
func (s *Store[T]) archiveLocked(now time.Time) {
	s.past = append(s.past, s.current)
	s.lastSnapshot = now

	if len(s.past) > s.maxEntries {
		excess := len(s.past) - s.maxEntries
		s.past = s.past[excess:]
	}
}

// Undo moves one checkpoint back and returns the restored value.
func (s *Store[T]) Undo() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.past) == 0 {
		var zero T
		return zero, ErrNothingToUndo
	}

	s.closeGroupLocked()
	prev := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = append(s.future, s.current)
	s.current = prev
	s.sealed = true

	s.log.Debug("history undo", "past", len(s.past), "future", len(s.future))
	return prev.Value, nil
}

// Redo re-applies the most recently undone value and returns it.
func (s *Store[T]) Redo() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.future) == 0 {
		var zero T
		return zero, ErrNothingToRedo
	}

	s.closeGroupLocked()
	next := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.past = append(s.past, s.current)
	s.current = next
	s.sealed = true

	s.log.Debug("history redo", "past", len(s.past), "future", len(s.future))
	return next.Value, nil
}

// Seal forces the next push to archive the current value regardless of the
// debounce window. Widgets call it after a cursor jump or focus change.
func (s *Store[T]) Seal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealed = true
}

// Current returns the current value and whether one has been set.
func (s *Store[T]) Current() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Value, s.hasCur
}

// CanUndo returns true if undo is available.
func (s *Store[T]) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past) > 0
}

// CanRedo returns true if redo is available.
func (s *Store[T]) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future) > 0
}

// UndoCount returns the number of undo steps available.
func (s *Store[T]) UndoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past)
}

// RedoCount returns the number of redo steps available.
func (s *Store[T]) RedoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future)
}

// PeekUndo returns the value Undo would restore, without changing state.
func (s *Store[T]) PeekUndo() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.past) == 0 {
		var zero T
		return zero, false
	}
	return s.past[len(s.past)-1].Value, true
}

// Clear drops the past and the future but keeps the current value.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.past = nil
	s.future = nil
	s.closeGroupLocked()
}

// SetMaxEntries changes the capacity, evicting the oldest entries if needed.
func (s *Store[T]) SetMaxEntries(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		n = DefaultMaxEntries
	}
	s.maxEntries = n
	if len(s.past) > n {
		s.past = s.past[len(s.past)-n:]
	}
}

// SetDebounce changes the debounce window for subsequent pushes.
func (s *Store[T]) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d < 0 {
		d = 0
	}
	s.debounce = d
}

// MaxEntries returns the capacity of the past stack.
func (s *Store[T]) MaxEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxEntries
}
