package preview

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/reqpad/internal/editor"
	"github.com/dshills/reqpad/internal/renderer/highlight"
	"github.com/dshills/reqpad/internal/renderer/layout"
)

// newCellView returns a view where one pixel is one terminal cell.
func newCellView(t *testing.T, text string) *editor.View {
	t.Helper()
	cfg := editor.DefaultConfig()
	cfg.Language = highlight.LangText
	cfg.Layout.FontSize = 1
	cfg.Layout.LineHeightFactor = 1
	cfg.Layout.Padding = 0
	cfg.Layout.PaddingRight = 0
	cfg.Gutter.Padding = 0
	return editor.New(cfg, layout.FixedMeasurer(1), text)
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func cellAt(s tcell.SimulationScreen, x, y int) (rune, tcell.Style) {
	cells, w, _ := s.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' ', c.Style
	}
	return c.Runes[0], c.Style
}

func rowText(s tcell.SimulationScreen, y, from, to int) string {
	var out []rune
	for x := from; x < to; x++ {
		r, _ := cellAt(s, x, y)
		out = append(out, r)
	}
	return string(out)
}

func TestPaint(t *testing.T) {
	screen := newScreen(t, 20, 5)
	v := newCellView(t, "ab {{x}}\ncd")
	f := v.Layout(20, 5)

	// Gutter: one digit and one spare cell, then a one cell border.
	if f.GutterWidth != 2 || f.TextLeft != 3 {
		t.Fatalf("GutterWidth, TextLeft = %v, %v, want 2, 3", f.GutterWidth, f.TextLeft)
	}

	theme := DefaultTheme()
	p := New(screen, theme, false)
	p.Paint(v, f, nil)
	screen.Show()

	if got := rowText(screen, 0, 0, 11); got != "1  ab {{x}}" {
		t.Errorf("row 0 = %q, want %q", got, "1  ab {{x}}")
	}
	if got := rowText(screen, 1, 0, 5); got != "2  cd" {
		t.Errorf("row 1 = %q, want %q", got, "2  cd")
	}

	if _, style := cellAt(screen, 0, 0); style != theme.Gutter && style != theme.CurrentLine {
		t.Errorf("gutter style = %v, want gutter style", style)
	}
	if _, style := cellAt(screen, 3, 0); style != theme.Style(highlight.Normal) {
		t.Errorf("style of 'a' = %v, want normal", style)
	}
	if _, style := cellAt(screen, 6, 0); style != theme.Style(highlight.Variable) {
		t.Errorf("style of '{' = %v, want variable", style)
	}
}

func TestPaintWrapsRows(t *testing.T) {
	screen := newScreen(t, 10, 5)
	v := newCellView(t, "abcdefghij")
	// Content width is 10 - 2 (gutter) - 2 (borders) = 6 cells.
	f := v.Layout(10, 5)

	New(screen, DefaultTheme(), false).Paint(v, f, nil)
	screen.Show()

	if got := rowText(screen, 0, 0, 9); got != "1  abcdef" {
		t.Errorf("row 0 = %q, want %q", got, "1  abcdef")
	}
	// Continuation rows get no line number.
	if got := rowText(screen, 1, 0, 7); got != "   ghij" {
		t.Errorf("row 1 = %q, want %q", got, "   ghij")
	}
}

func TestPaintMarks(t *testing.T) {
	screen := newScreen(t, 20, 3)
	v := newCellView(t, "find me")
	f := v.Layout(20, 3)

	m, ok := v.Find("me", 0, true)
	if !ok {
		t.Fatal("Find() found nothing")
	}
	theme := DefaultTheme()
	New(screen, theme, false).Paint(v, f, v.HighlightRects(f, m.Start, m.End))
	screen.Show()

	for x := 8; x < 10; x++ {
		if _, style := cellAt(screen, x, 0); style != theme.Mark {
			t.Errorf("cell %d style = %v, want mark", x, style)
		}
	}
	if _, style := cellAt(screen, 7, 0); style == theme.Mark {
		t.Error("cell before the match is marked")
	}
}

func TestPaintCaret(t *testing.T) {
	screen := newScreen(t, 20, 3)
	v := newCellView(t, "abc\ndef")
	v.SetCursor(5)
	f := v.Layout(20, 3)

	New(screen, DefaultTheme(), false).Paint(v, f, nil)
	screen.Show()

	x, y, visible := screen.GetCursor()
	if !visible || x != 4 || y != 1 {
		t.Errorf("cursor = (%d, %d, %v), want (4, 1, true)", x, y, visible)
	}
}
