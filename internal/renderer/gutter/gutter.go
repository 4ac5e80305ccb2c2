// Package gutter computes the line-number gutter drawn to the left of a
// multi-line editor. Labels are positioned from the same visual rows the text
// renderer uses, so a number always sits on the first row of its line.
package gutter

import (
	"sync"

	"github.com/dshills/reqpad/internal/renderer/layout"
)

// DefaultPadding is the horizontal padding added to the digit columns.
const DefaultPadding = 5.0

// Config holds gutter configuration.
type Config struct {
	// Padding is added to the digit and spare columns.
	Padding float64

	// Mode selects absolute, relative or hybrid numbering.
	Mode LineNumberMode
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		Padding: DefaultPadding,
		Mode:    LineNumberAbsolute,
	}
}

// Label is one line number placed on a visual row.
type Label struct {
	// Line is the logical line index (0-indexed).
	Line int

	// Text is the number, right-aligned to the gutter's digit count.
	Text string

	// Y and Height locate the row the label is drawn on.
	Y      float64
	Height float64

	// Current is true on the cursor line.
	Current bool
}

// Gutter tracks the pixel width of the gutter and formats its labels.
type Gutter struct {
	mu sync.RWMutex

	config    Config
	charWidth float64

	lineCount   int
	digits      int
	width       float64
	currentLine int
}

// New creates a gutter for cells charWidth pixels wide.
func New(config Config, charWidth float64) *Gutter {
	g := &Gutter{
		config:    config,
		charWidth: charWidth,
		lineCount: 1,
		digits:    1,
	}
	g.width = layout.GutterWidth(1, charWidth, config.Padding)
	return g
}

// Width returns the gutter width in pixels.
func (g *Gutter) Width() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.width
}

// Digits returns the number of digit columns.
func (g *Gutter) Digits() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.digits
}

// Config returns the current configuration.
func (g *Gutter) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig updates the gutter configuration.
func (g *Gutter) SetConfig(config Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config = config
	g.width = layout.GutterWidth(g.lineCount, g.charWidth, config.Padding)
}

// SetCharWidth updates the cell width after a font change.
func (g *Gutter) SetCharWidth(w float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.charWidth = w
	g.width = layout.GutterWidth(g.lineCount, w, g.config.Padding)
}

// SetLineCount updates the total line count. It returns true if the gutter
// width changed, which happens only when the digit count changes.
func (g *Gutter) SetLineCount(count int) bool {
	if count < 1 {
		count = 1
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.lineCount = count
	digits := countDigits(count)
	if digits == g.digits {
		return false
	}
	g.digits = digits
	g.width = layout.GutterWidth(count, g.charWidth, g.config.Padding)
	return true
}

// LineCount returns the total line count.
func (g *Gutter) LineCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lineCount
}

// SetCurrentLine sets the cursor line used by relative numbering.
func (g *Gutter) SetCurrentLine(line int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentLine = line
}

// Labels returns a label for every first visual row overlapping the
// viewport [start, end). Continuation rows of a wrapped line get no label.
func (g *Gutter) Labels(rows []layout.VisualRow, start, end float64) []Label {
	g.mu.RLock()
	defer g.mu.RUnlock()

	visible := layout.VisibleRows(rows, start, end)
	labels := make([]Label, 0, len(visible))
	for _, r := range visible {
		if !r.First {
			continue
		}
		labels = append(labels, Label{
			Line:    r.Line,
			Text:    PadLeft(FormatNumber(lineNumber(g.config.Mode, r.Line, g.currentLine)), g.digits),
			Y:       r.Y,
			Height:  r.Height,
			Current: r.Line == g.currentLine,
		})
	}
	return labels
}
