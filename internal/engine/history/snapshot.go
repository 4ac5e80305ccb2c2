package history

// Range is a half-open span of rune offsets.
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered.
func (r Range) Len() int {
	if r.End < r.Start {
		return r.Start - r.End
	}
	return r.End - r.Start
}

// Normalize returns r with Start <= End.
func (r Range) Normalize() Range {
	if r.End < r.Start {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Snapshot is the payload of the cursor-aware history: text plus the cursor
// and selection to restore with it.
type Snapshot struct {
	Value     string
	Cursor    int
	Selection *Range
}

// WithSelection returns a copy of s whose selection is sel. A nil or empty
// sel clears the selection.
func (s Snapshot) WithSelection(sel *Range) Snapshot {
	if sel == nil || sel.Len() == 0 {
		s.Selection = nil
		return s
	}
	cp := *sel
	s.Selection = &cp
	return s
}

// NewText creates a plain string history.
func NewText(cfg Config) *Store[string] {
	return NewStore(cfg, func(a, b string) bool { return a == b })
}

// NewSnapshots creates a cursor-aware history. Two snapshots with the same
// text are equal regardless of cursor and selection, so cursor movement alone
// never creates a checkpoint.
func NewSnapshots(cfg Config) *Store[Snapshot] {
	return NewStore(cfg, func(a, b Snapshot) bool { return a.Value == b.Value })
}
