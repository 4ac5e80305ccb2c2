package history

// BeginGroup starts a push group. Every push until EndGroup collapses into a
// single checkpoint, independent of the debounce window.
func (s *Store[T]) BeginGroup(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grouping {
		// Already grouping, ignore nested calls
		return
	}

	s.grouping = true
	s.groupName = name
	s.groupStarted = false
	s.log.Debug("history group begin", "name", name)
}

// EndGroup finishes a push group. If the group changed the value, the next
// push starts a new checkpoint so the group undoes as one unit.
func (s *Store[T]) EndGroup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.grouping {
		return
	}
	if s.groupStarted {
		s.sealed = true
	}
	s.log.Debug("history group end", "name", s.groupName, "changed", s.groupStarted)
	s.closeGroupLocked()
}

// CancelGroup finishes a push group and rolls the current value back to what
// it was before the group. It returns the restored value and true when the
// group had changed anything.
func (s *Store[T]) CancelGroup() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if !s.grouping {
		return zero, false
	}
	started := s.groupStarted
	s.closeGroupLocked()
	if !started || len(s.past) == 0 {
		return zero, false
	}

	s.current = s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.future = nil
	return s.current.Value, true
}

// InGroup reports whether a group is open.
func (s *Store[T]) InGroup() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grouping
}

func (s *Store[T]) closeGroupLocked() {
	s.grouping = false
	s.groupName = ""
	s.groupStarted = false
}

// GroupScope provides a convenient way to group pushes using defer.
// Usage:
//
//	func paste(h *history.Store[string], text string) {
//	    defer h.GroupScope("paste").End()
//	    // ... several pushes ...
//	}
type GroupScope[T any] struct {
	store  *Store[T]
	active bool
}

// GroupScope starts a new group scope.
func (s *Store[T]) GroupScope(name string) *GroupScope[T] {
	s.BeginGroup(name)
	return &GroupScope[T]{store: s, active: true}
}

// End ends the group scope.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope[T]) End() {
	if g.active {
		g.store.EndGroup()
		g.active = false
	}
}

// Transaction runs fn inside a group. If fn returns an error the group is
// cancelled and the value rolled back.
func (s *Store[T]) Transaction(name string, fn func() error) error {
	s.BeginGroup(name)

	if err := fn(); err != nil {
		s.CancelGroup()
		return err
	}

	s.EndGroup()
	return nil
}

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint creates a checkpoint at the current history position.
// The current value is sealed so the next push cannot be folded into it.
func (s *Store[T]) CreateCheckpoint() Checkpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealed = true
	return Checkpoint{undoDepth: len(s.past)}
}

// UndoToCheckpoint undoes every step taken since cp and returns the value
// restored last. It returns ErrNothingToUndo if there was nothing to undo.
func (s *Store[T]) UndoToCheckpoint(cp Checkpoint) (T, error) {
	var (
		v   T
		err error
		n   int
	)
	for s.UndoCount() > cp.undoDepth {
		if v, err = s.Undo(); err != nil {
			return v, err
		}
		n++
	}
	if n == 0 {
		return v, ErrNothingToUndo
	}
	return v, nil
}
