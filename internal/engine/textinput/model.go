package textinput

import (
	"log/slog"
	"time"

	"github.com/dshills/reqpad/internal/engine/history"
	"github.com/dshills/reqpad/internal/renderer/highlight"
)

// Defaults for the URL bar.
const (
	DefaultGroupingThreshold = time.Second
	DefaultMaxHistory        = 50
)

// Config configures a Model.
type Config struct {
	// History configures the undo store. Zero values mean the URL bar
	// defaults: one second grouping and fifty entries.
	History history.Config

	// Highlight configures variable highlighting.
	Highlight highlight.Config

	// Logger receives debug records. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns the URL bar configuration.
func DefaultConfig() Config {
	return Config{
		History: history.Config{
			Debounce:   DefaultGroupingThreshold,
			MaxEntries: DefaultMaxHistory,
		},
		Highlight: highlight.DefaultConfig(),
	}
}

// Model is a single-line text input.
type Model struct {
	value     []rune
	cursor    int
	selection *history.Range // Start is the anchor, End follows the cursor
	focused   bool

	hist *history.Store[history.Snapshot]
	tok  *highlight.Tokenizer
}

// New creates an input holding value with the cursor at its end. The value
// is the history baseline.
func New(cfg Config, value string) *Model {
	if cfg.History.Debounce == 0 {
		cfg.History.Debounce = DefaultGroupingThreshold
	}
	if cfg.History.MaxEntries == 0 {
		cfg.History.MaxEntries = DefaultMaxHistory
	}
	if cfg.History.Logger == nil {
		cfg.History.Logger = cfg.Logger
	}
	if cfg.Highlight.Logger == nil {
		cfg.Highlight.Logger = cfg.Logger
	}

	m := &Model{
		value: []rune(value),
		hist:  history.NewSnapshots(cfg.History),
		tok:   highlight.NewTokenizer(cfg.Highlight),
	}
	m.cursor = len(m.value)
	m.hist.Reset(m.snapshot())
	return m
}

// Value returns the current text.
func (m *Model) Value() string {
	return string(m.value)
}

// Len returns the length of the value in runes.
func (m *Model) Len() int {
	return len(m.value)
}

// Cursor returns the cursor offset.
func (m *Model) Cursor() int {
	return m.cursor
}

// Selection returns the normalized selection, if any.
func (m *Model) Selection() (history.Range, bool) {
	if m.selection == nil {
		return history.Range{}, false
	}
	return m.selection.Normalize(), true
}

// SelectedText returns the selected text, or "" without a selection.
func (m *Model) SelectedText() string {
	sel, ok := m.Selection()
	if !ok {
		return ""
	}
	return string(m.value[sel.Start:sel.End])
}

// Focused reports whether the input has focus.
func (m *Model) Focused() bool {
	return m.focused
}

// Focus gives the input focus.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes focus. The next edit starts a new undo step.
func (m *Model) Blur() {
	m.focused = false
	m.selection = nil
	m.hist.Seal()
}

// History returns the undo store.
func (m *Model) History() *history.Store[history.Snapshot] {
	return m.hist
}

func (m *Model) snapshot() history.Snapshot {
	return history.Snapshot{Value: string(m.value), Cursor: m.cursor}.WithSelection(m.selection)
}

// commit records the current state in history.
func (m *Model) commit() {
	m.hist.Push(m.snapshot())
}

// restore applies a snapshot without recording it.
func (m *Model) restore(s history.Snapshot) {
	m.value = []rune(s.Value)
	m.cursor = clamp(s.Cursor, 0, len(m.value))
	m.selection = nil
	if s.Selection != nil {
		sel := history.Range{
			Start: clamp(s.Selection.Start, 0, len(m.value)),
			End:   clamp(s.Selection.End, 0, len(m.value)),
		}
		m.selection = &sel
	}
}

// SetValue replaces the value, puts the cursor at the end and records the
// change in history.
func (m *Model) SetValue(v string) {
	m.value = []rune(v)
	m.cursor = len(m.value)
	m.selection = nil
	m.commit()
}

// SetValueWithoutHistory replaces the value and resets history to it. It is
// used when loading a saved request into the input.
func (m *Model) SetValueWithoutHistory(v string) {
	m.value = []rune(v)
	m.cursor = len(m.value)
	m.selection = nil
	m.hist.Reset(m.snapshot())
}

// deleteSelection removes the selected text and returns true if there was
// one.
func (m *Model) deleteSelection() bool {
	sel, ok := m.Selection()
	if !ok {
		return false
	}
	m.selection = nil
	if sel.Len() == 0 {
		return false
	}
	m.value = append(m.value[:sel.Start:sel.Start], m.value[sel.End:]...)
	m.cursor = sel.Start
	return true
}

// Insert replaces the selection, if any, with text and moves the cursor past
// the inserted text.
func (m *Model) Insert(text string) {
	changed := m.deleteSelection()
	ins := []rune(text)
	if len(ins) > 0 {
		out := make([]rune, 0, len(m.value)+len(ins))
		out = append(out, m.value[:m.cursor]...)
		out = append(out, ins...)
		out = append(out, m.value[m.cursor:]...)
		m.value = out
		m.cursor += len(ins)
		changed = true
	}
	if changed {
		m.commit()
	}
}

// DeletePrevious deletes the selection, or the grapheme cluster before the
// cursor (backspace).
func (m *Model) DeletePrevious() {
	if m.deleteSelection() {
		m.commit()
		return
	}
	if m.cursor == 0 {
		return
	}
	start := prevBoundary(graphemeBounds(string(m.value)), m.cursor)
	m.value = append(m.value[:start:start], m.value[m.cursor:]...)
	m.cursor = start
	m.commit()
}

// DeleteNext deletes the selection, or the grapheme cluster after the
// cursor (delete).
func (m *Model) DeleteNext() {
	if m.deleteSelection() {
		m.commit()
		return
	}
	if m.cursor >= len(m.value) {
		return
	}
	end := nextBoundary(graphemeBounds(string(m.value)), m.cursor)
	m.value = append(m.value[:m.cursor:m.cursor], m.value[end:]...)
	m.commit()
}

// DeleteWordBackward deletes the selection, or back to the start of the
// previous word.
func (m *Model) DeleteWordBackward() {
	if m.deleteSelection() {
		m.commit()
		return
	}
	start := wordLeft(string(m.value), m.cursor)
	if start == m.cursor {
		return
	}
	m.value = append(m.value[:start:start], m.value[m.cursor:]...)
	m.cursor = start
	m.commit()
}

// MoveLeft moves the cursor one grapheme cluster left and clears the
// selection.
func (m *Model) MoveLeft() {
	m.selection = nil
	m.cursor = prevBoundary(graphemeBounds(string(m.value)), m.cursor)
}

// MoveRight moves the cursor one grapheme cluster right and clears the
// selection.
func (m *Model) MoveRight() {
	m.selection = nil
	m.cursor = nextBoundary(graphemeBounds(string(m.value)), m.cursor)
}

// MoveWordLeft moves the cursor to the start of the previous word.
func (m *Model) MoveWordLeft() {
	m.selection = nil
	m.cursor = wordLeft(string(m.value), m.cursor)
}

// MoveWordRight moves the cursor to the end of the next word.
func (m *Model) MoveWordRight() {
	m.selection = nil
	m.cursor = wordRight(string(m.value), m.cursor)
}

// MoveTo places the cursor at pos, clamped to the value, and clears the
// selection. A jump ends the current undo step.
func (m *Model) MoveTo(pos int) {
	m.selection = nil
	m.cursor = clamp(pos, 0, len(m.value))
	m.hist.Seal()
}

// MoveToFront moves the cursor to the start.
func (m *Model) MoveToFront() {
	m.MoveTo(0)
}

// MoveToEnd moves the cursor to the end.
func (m *Model) MoveToEnd() {
	m.MoveTo(len(m.value))
}

// SelectLeft extends the selection one grapheme cluster left.
func (m *Model) SelectLeft() {
	m.extendTo(prevBoundary(graphemeBounds(string(m.value)), m.cursor))
}

// SelectRight extends the selection one grapheme cluster right.
func (m *Model) SelectRight() {
	m.extendTo(nextBoundary(graphemeBounds(string(m.value)), m.cursor))
}

func (m *Model) extendTo(pos int) {
	if m.selection == nil {
		m.selection = &history.Range{Start: m.cursor, End: m.cursor}
	}
	m.cursor = pos
	m.selection.End = pos
}

// Select sets the selection from anchor to cursor.
func (m *Model) Select(anchor, cursor int) {
	anchor = clamp(anchor, 0, len(m.value))
	cursor = clamp(cursor, 0, len(m.value))
	m.cursor = cursor
	m.selection = &history.Range{Start: anchor, End: cursor}
}

// SelectAll selects the whole value with the cursor at the end. It does
// nothing on an empty value.
func (m *Model) SelectAll() {
	if len(m.value) == 0 {
		return
	}
	m.Select(0, len(m.value))
}

// Undo restores the previous checkpoint, including its cursor and
// selection. It returns false if there was nothing to undo.
func (m *Model) Undo() bool {
	s, err := m.hist.Undo()
	if err != nil {
		return false
	}
	m.restore(s)
	return true
}

// Redo re-applies the last undone checkpoint. It returns false if there was
// nothing to redo.
func (m *Model) Redo() bool {
	s, err := m.hist.Redo()
	if err != nil {
		return false
	}
	m.restore(s)
	return true
}

// CanUndo returns true if undo is available.
func (m *Model) CanUndo() bool {
	return m.hist.CanUndo()
}

// CanRedo returns true if redo is available.
func (m *Model) CanRedo() bool {
	return m.hist.CanRedo()
}

// Segments tokenizes the value for highlighting.
func (m *Model) Segments() []highlight.Segment {
	return m.tok.Tokenize(string(m.value))
}

// VariableAt returns the name of the variable placeholder covering offset.
func (m *Model) VariableAt(offset int) (string, bool) {
	seg, ok := highlight.SegmentAt(m.Segments(), offset)
	if !ok {
		return "", false
	}
	return highlight.VariableName(seg)
}

// Resolve returns the value with known variables substituted and the names
// of the unknown ones.
func (m *Model) Resolve(lookup func(string) (string, bool)) (string, []string) {
	return m.tok.Resolve(string(m.value), lookup)
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
