package editor

import (
	"github.com/dshills/reqpad/internal/renderer/gutter"
	"github.com/dshills/reqpad/internal/renderer/layout"
)

// Frame is the geometry of one layout pass. Row Y values are content
// coordinates; subtract ScrollY to get widget coordinates.
type Frame struct {
	Metrics layout.Metrics

	GutterWidth  float64
	ContentWidth float64

	// TextLeft is the x of the first text column in widget coordinates:
	// the gutter, the left padding and a one pixel border.
	TextLeft float64

	// Rows are all visual rows; Visible is the slice inside the viewport.
	Rows    []layout.VisualRow
	Visible []layout.VisualRow
	Labels  []gutter.Label

	ContentHeight   float64
	MaxContentWidth float64
	ScrollY         float64
	ViewportHeight  float64
}

// Rect is a rectangle in content coordinates, relative to the left edge of
// the text area.
type Rect struct {
	X, Y, W, H float64
}

// Layout computes the frame for a widget outerWidth by height pixels. Rows
// are served from the cache unless the text or the content width changed.
func (v *View) Layout(outerWidth, height float64) Frame {
	m := v.cache.Metrics()
	v.gutter.SetCharWidth(m.CharWidth)

	gw := v.gutter.Width()
	cw := layout.ContentWidth(outerWidth-gw, v.cfg.Layout.Padding, v.cfg.Layout.PaddingRight)

	rows := v.cache.Rows(v.buf.lines, cw, v.version)
	maxW := v.cache.MaxContentWidth(v.buf.lines, v.version)
	contentH := layout.ContentHeight(rows)

	v.vp.Resize(cw, height)
	if v.cfg.Layout.WrapMode == layout.WrapGlyph || layout.ColumnsPerRow(cw, m.CharWidth) > 0 {
		v.vp.SetContentSize(cw, contentH)
	} else {
		v.vp.SetContentSize(maxW, contentH)
	}

	start, end := v.vp.Range()
	return Frame{
		Metrics:         m,
		GutterWidth:     gw,
		ContentWidth:    cw,
		TextLeft:        gw + v.cfg.Layout.Padding + 1,
		Rows:            rows,
		Visible:         layout.VisibleRows(rows, start, end),
		Labels:          v.gutter.Labels(rows, start, end),
		ContentHeight:   contentH,
		MaxContentWidth: maxW,
		ScrollY:         start,
		ViewportHeight:  height,
	}
}

// HighlightRects returns the rectangles covering the rune range [start, end)
// in the given frame: one per visual row the range touches. The rectangles
// are placed using the frame's rows, the same geometry as the gutter.
func (v *View) HighlightRects(f Frame, start, end int) []Rect {
	if end < start {
		start, end = end, start
	}
	sp, ep := v.buf.position(start), v.buf.position(end)
	cw := f.Metrics.CharWidth
	wide := v.cache.Engine().Wide()

	var rects []Rect
	first, ok := layout.FirstRowOf(f.Rows, sp.Line)
	if !ok {
		return nil
	}
	for i := first; i < len(f.Rows); i++ {
		r := f.Rows[i]
		if r.Line > ep.Line {
			break
		}

		from, to := r.Start, r.End
		if r.Line == sp.Line && sp.Column > from {
			from = sp.Column
		}
		if r.Line == ep.Line && ep.Column < to {
			to = ep.Column
		}
		lastRow := i+1 == len(f.Rows) || f.Rows[i+1].Line != r.Line
		newline := r.Line < ep.Line && to == r.End && lastRow
		if from > to || (from == to && !newline) {
			continue
		}

		line := []rune(v.buf.lines[r.Line])
		x := float64(layout.CellCount(string(line[r.Start:from]), wide)) * cw
		w := float64(layout.CellCount(string(line[from:to]), wide)) * cw
		if newline {
			// The range continues past the line end.
			w += cw
		}
		rects = append(rects, Rect{X: x, Y: r.Y, W: w, H: r.Height})
	}
	return rects
}

// CaretRect returns the caret rectangle for offset in the given frame. Its
// y is the y of the line's first visual row plus the wrapped row offset. A
// caret after the last cell of a full row is drawn against the right edge
// of the content area.
func (v *View) CaretRect(f Frame, off int) (Rect, bool) {
	p := v.buf.position(off)
	first, ok := layout.FirstRowOf(f.Rows, p.Line)
	if !ok {
		return Rect{}, false
	}
	x, dy := v.cache.Engine().WrapPosition(v.buf.lines[p.Line], p.Column, f.Metrics.CharWidth, f.ContentWidth, f.Metrics.LineHeight)
	if f.ContentWidth >= 1 && x > f.ContentWidth-1 {
		x = f.ContentWidth - 1
	}
	return Rect{X: x, Y: f.Rows[first].Y + dy, W: 1, H: f.Metrics.LineHeight}, true
}

// OffsetAt returns the rune offset under the content point (x, y), for
// mouse hit-testing.
func (v *View) OffsetAt(f Frame, x, y float64) int {
	if len(f.Rows) == 0 {
		return 0
	}
	i, ok := layout.RowAt(f.Rows, y)
	if !ok {
		if y < 0 {
			return 0
		}
		return v.buf.total
	}
	r := f.Rows[i]
	first, _ := layout.FirstRowOf(f.Rows, r.Line)
	col := v.cache.Engine().ColumnAt(v.buf.lines[r.Line], i-first, x, f.Metrics.CharWidth, f.ContentWidth)
	return v.buf.offset(Position{Line: r.Line, Column: col})
}

// Reveal scrolls so that the rune range [start, end) is visible, centering
// it when it is off screen. It returns true if the view scrolled.
func (v *View) Reveal(f Frame, start, end int) bool {
	rects := v.HighlightRects(f, start, end)
	if len(rects) == 0 {
		c, ok := v.CaretRect(f, start)
		if !ok {
			return false
		}
		rects = []Rect{c}
	}
	top := rects[0].Y
	bottom := rects[len(rects)-1].Y + rects[len(rects)-1].H
	return v.vp.EnsureRangeVisible(top, bottom)
}
