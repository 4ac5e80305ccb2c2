package layout

import (
	"sort"
	"strconv"
)

// VisualRow is one rendered row of a logical line. Y is relative to the top
// of the content area.
type VisualRow struct {
	// Line is the logical line index.
	Line int

	// First is true for the first visual row of Line.
	First bool

	// Start and End are the rune range of Line shown on this row.
	Start int
	End   int

	Y      float64
	Height float64
}

// Bottom returns Y + Height.
func (r VisualRow) Bottom() float64 {
	return r.Y + r.Height
}

// Engine computes visual rows and positions for a wrap policy.
type Engine struct {
	mode WrapMode
	wide bool
}

// NewEngine creates an engine with the given wrap mode. wide enables two-cell
// East Asian wide runes.
func NewEngine(mode WrapMode, wide bool) *Engine {
	return &Engine{mode: mode, wide: wide}
}

// defaultEngine backs the package-level functions.
var defaultEngine = NewEngine(WrapGlyph, false)

// Mode returns the wrap mode.
func (e *Engine) Mode() WrapMode {
	return e.mode
}

// Wide reports whether wide cells are enabled.
func (e *Engine) Wide() bool {
	return e.wide
}

// Breaks returns the rune index at which each visual row of line starts for
// a row of cols cells. The result always starts with 0.
func (e *Engine) Breaks(line string, cols int) []int {
	return breaks([]rune(line), cols, e.mode, e.wide)
}

// RowCount returns the number of visual rows line takes. It is at least 1.
func (e *Engine) RowCount(line string, contentWidth, charWidth float64) int {
	return len(e.Breaks(line, ColumnsPerRow(contentWidth, charWidth)))
}

// ComputeVisualRows lays out lines top to bottom. Every line yields at least
// one row, all rows are lineHeight tall, and Y increases strictly.
func (e *Engine) ComputeVisualRows(lines []string, contentWidth, charWidth, lineHeight float64) []VisualRow {
	cols := ColumnsPerRow(contentWidth, charWidth)
	rows := make([]VisualRow, 0, len(lines))
	y := 0.0

	for i, line := range lines {
		runes := []rune(line)
		starts := breaks(runes, cols, e.mode, e.wide)
		for r, start := range starts {
			end := len(runes)
			if r+1 < len(starts) {
				end = starts[r+1]
			}
			rows = append(rows, VisualRow{
				Line:   i,
				First:  r == 0,
				Start:  start,
				End:    end,
				Y:      y,
				Height: lineHeight,
			})
			y += lineHeight
		}
	}
	return rows
}

// WrapPosition returns the pixel offset of column within text, relative to
// the top-left of the line's first row. Columns past the end of text are
// clamped to the end. x never exceeds the last cell edge of a row: a column
// at the end of a full last row, or inside whitespace hanging past the edge,
// stays on that row at x = cols*charWidth, since no row exists below it.
func (e *Engine) WrapPosition(text string, column int, charWidth, contentWidth, lineHeight float64) (x, y float64) {
	runes := []rune(text)
	if column <= 0 {
		return 0, 0
	}
	if column > len(runes) {
		column = len(runes)
	}

	cols := ColumnsPerRow(contentWidth, charWidth)
	starts := breaks(runes, cols, e.mode, e.wide)
	row := rowOf(starts, column)

	cells := 0
	for _, r := range runes[starts[row]:column] {
		cells += cellWidth(r, e.wide)
	}
	if cols > 0 && cells > cols {
		cells = cols
	}
	return float64(cells) * charWidth, float64(row) * lineHeight
}

// ColumnAt returns the column of the character under x on the given visual
// row of text. It is the inverse of WrapPosition for hit-testing.
func (e *Engine) ColumnAt(text string, row int, x, charWidth, contentWidth float64) int {
	runes := []rune(text)
	starts := breaks(runes, ColumnsPerRow(contentWidth, charWidth), e.mode, e.wide)
	if row < 0 {
		return 0
	}
	if row >= len(starts) {
		return len(runes)
	}

	end := len(runes)
	if row+1 < len(starts) {
		end = starts[row+1]
	}
	if charWidth <= 0 || x <= 0 {
		return starts[row]
	}

	cells := 0.0
	for i := starts[row]; i < end; i++ {
		w := float64(cellWidth(runes[i], e.wide)) * charWidth
		if x < cells+w/2 {
			return i
		}
		cells += w
	}
	return end
}

// MaxContentWidth returns the pixel width of the widest line when not
// wrapped.
func (e *Engine) MaxContentWidth(lines []string, charWidth float64) float64 {
	widest := 0
	for _, line := range lines {
		if n := CellCount(line, e.wide); n > widest {
			widest = n
		}
	}
	return float64(widest) * charWidth
}

// ComputeVisualRows lays out lines with glyph wrapping.
func ComputeVisualRows(lines []string, contentWidth, charWidth, lineHeight float64) []VisualRow {
	return defaultEngine.ComputeVisualRows(lines, contentWidth, charWidth, lineHeight)
}

// WrapPosition returns the pixel offset of column within text with glyph
// wrapping.
func WrapPosition(text string, column int, charWidth, contentWidth, lineHeight float64) (x, y float64) {
	return defaultEngine.WrapPosition(text, column, charWidth, contentWidth, lineHeight)
}

// GutterWidth returns the pixel width of a line-number gutter for lineCount
// lines: one cell per digit, one spare cell, plus padding.
func GutterWidth(lineCount int, charWidth, padding float64) float64 {
	if lineCount < 1 {
		lineCount = 1
	}
	digits := len(strconv.Itoa(lineCount))
	return float64(digits)*charWidth + charWidth + padding
}

// ContentWidth returns the width available to text inside a widget of the
// given outer width, after padding and a one pixel border on each side.
func ContentWidth(outerWidth, paddingLeft, paddingRight float64) float64 {
	w := outerWidth - (paddingLeft + 1) - (paddingRight + 1)
	if w < 0 {
		return 0
	}
	return w
}

// InViewport reports whether a row spanning [y, y+height) overlaps the
// viewport [start, end).
func InViewport(y, height, start, end float64) bool {
	return y+height > start && y < end
}

// VisibleRows returns the sub-slice of rows overlapping [start, end).
// rows must be ordered by Y as produced by ComputeVisualRows.
func VisibleRows(rows []VisualRow, start, end float64) []VisualRow {
	lo := sort.Search(len(rows), func(i int) bool {
		return rows[i].Bottom() > start
	})
	hi := sort.Search(len(rows), func(i int) bool {
		return rows[i].Y >= end
	})
	if lo >= hi {
		return nil
	}
	return rows[lo:hi]
}

// FirstRowOf returns the index of the first visual row of line.
func FirstRowOf(rows []VisualRow, line int) (int, bool) {
	i := sort.Search(len(rows), func(i int) bool {
		return rows[i].Line >= line
	})
	if i < len(rows) && rows[i].Line == line {
		return i, true
	}
	return 0, false
}

// RowAt returns the index of the row containing y.
func RowAt(rows []VisualRow, y float64) (int, bool) {
	i := sort.Search(len(rows), func(i int) bool {
		return rows[i].Bottom() > y
	})
	if i < len(rows) && y >= rows[i].Y {
		return i, true
	}
	return 0, false
}

// ContentHeight returns the total height of rows.
func ContentHeight(rows []VisualRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	return rows[len(rows)-1].Bottom()
}
