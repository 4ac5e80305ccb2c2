// Package history provides debounced undo/redo for the editing widgets.
//
// A Store keeps three pieces of state: the past (older checkpoints, oldest
// first), the current value shown by the widget, and the future (values that
// were undone, most recently undone last). Every edit pushes the new value.
// Whether the value it replaces becomes a checkpoint depends on time:
//
//   - if at least Debounce has elapsed since the last checkpoint, or the past
//     is empty, the replaced value is archived and the checkpoint clock resets
//   - otherwise the replaced value is dropped and the new value takes its place
//
// The result is that a burst of keystrokes collapses into one undo step while
// a pause in typing starts a new one.
//
// # Payloads
//
// Store is generic over its payload. The plain variant stores strings:
//
//	h := history.NewText(history.DefaultConfig())
//	h.Reset("GET /users")
//	h.Push("GET /users/1")
//	v, err := h.Undo() // "GET /users"
//
// The cursor-aware variant stores a Snapshot so that undo restores the cursor
// and selection along with the text:
//
//	h := history.NewSnapshots(cfg)
//	h.Push(history.Snapshot{Value: "abc", Cursor: 3})
//
// # Grouping
//
// Pushes between BeginGroup and EndGroup collapse into one checkpoint no
// matter how much time passes, which suits paste and reformat operations:
//
//	defer h.GroupScope("format").End()
//
// # Errors
//
// Undo and Redo on an empty stack return ErrNothingToUndo or ErrNothingToRedo.
// Callers treat both as "nothing happened".
package history
