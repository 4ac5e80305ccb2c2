// Package editor implements the multi-line body and response editor view.
//
// A View owns the text, a content version bumped on every change, a
// debounced undo history, the body tokenizer, a layout cache, the gutter
// and the viewport. An edit flows through SetText: the version is bumped,
// the new text is pushed into history, and the next Layout call rebuilds
// the visual rows. Undo and Redo replace the text wholesale and never
// re-enter history.
//
//	v := editor.New(editor.DefaultConfig(), layout.FixedMeasurer(8), body)
//	v.SetText(body + "\n}")
//	frame := v.Layout(640, 480)
//	for _, row := range frame.Visible {
//	    // draw row
//	}
package editor
