// Package preview paints an editor frame into a terminal screen.
//
// One terminal cell stands for one character cell of the frame and one
// terminal row for one line height, so a view laid out with a measurer of
// width 1 and a line height of 1 maps onto the screen exactly.
package preview

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/reqpad/internal/editor"
	"github.com/dshills/reqpad/internal/renderer/highlight"
)

// Painter draws frames onto a screen.
type Painter struct {
	screen tcell.Screen
	theme  Theme
	wide   bool
}

// New creates a painter. wide must match the view's WideCells setting.
func New(screen tcell.Screen, theme Theme, wide bool) *Painter {
	return &Painter{screen: screen, theme: theme, wide: wide}
}

// Screen returns the target screen.
func (p *Painter) Screen() tcell.Screen {
	return p.screen
}

// Paint clears the screen and draws f: gutter labels, the visible rows with
// their segment styles, the marks (for example search matches) and the
// caret. It does not call Show.
func (p *Painter) Paint(v *editor.View, f editor.Frame, marks []editor.Rect) {
	p.screen.Clear()
	cw, lh := f.Metrics.CharWidth, f.Metrics.LineHeight
	if cw <= 0 || lh <= 0 {
		return
	}
	cellX := func(x float64) int { return int(math.Round(x / cw)) }
	cellY := func(y float64) int { return int(math.Round((y - f.ScrollY) / lh)) }

	gutterCols := cellX(f.GutterWidth)
	for _, l := range f.Labels {
		style := p.theme.Gutter
		if l.Current {
			style = p.theme.CurrentLine
		}
		// Right-align against the spare column.
		x := gutterCols - 1 - len(l.Text)
		p.puts(x, cellY(l.Y), l.Text, style)
	}

	left := cellX(f.TextLeft)
	lines := v.Lines()
	classes := lineClasses(v.LineSegments(), lines)
	right := left + cellX(f.ContentWidth)
	for _, r := range f.Visible {
		y := cellY(r.Y)
		runes := []rune(lines[r.Line])
		x := left
		for i := r.Start; i < r.End; i++ {
			if f.ContentWidth > 0 && x >= right {
				// Whitespace hanging past the row edge in word mode.
				break
			}
			p.screen.SetContent(x, y, runes[i], nil, p.theme.Style(classes[r.Line][i]))
			x += p.width(runes[i])
		}
	}

	for _, m := range marks {
		y := cellY(m.Y)
		for x := cellX(m.X); x < cellX(m.X+m.W); x++ {
			mainc, comb, _, _ := p.screen.GetContent(left+x, y)
			if mainc == 0 {
				mainc = ' '
			}
			p.screen.SetContent(left+x, y, mainc, comb, p.theme.Mark)
		}
	}

	if c, ok := v.CaretRect(f, v.Cursor()); ok {
		p.screen.ShowCursor(left+cellX(c.X), cellY(c.Y))
	} else {
		p.screen.HideCursor()
	}
}

func (p *Painter) width(r rune) int {
	if !p.wide {
		return 1
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

func (p *Painter) puts(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		p.screen.SetContent(x, y, r, nil, style)
		x += p.width(r)
	}
}

// lineClasses expands per-line segments into one class per rune.
func lineClasses(segs [][]highlight.Segment, lines []string) [][]highlight.SegmentType {
	out := make([][]highlight.SegmentType, len(lines))
	for i, line := range lines {
		out[i] = make([]highlight.SegmentType, len([]rune(line)))
		if i >= len(segs) {
			continue
		}
		for _, s := range segs[i] {
			for j := s.Start; j < s.End && j < len(out[i]); j++ {
				out[i][j] = s.Type
			}
		}
	}
	return out
}
