package gutter

import (
	"fmt"
	"strconv"
	"strings"
)

// LineNumberMode defines how line numbers are displayed.
type LineNumberMode uint8

const (
	// LineNumberAbsolute shows absolute line numbers (1, 2, 3, ...).
	LineNumberAbsolute LineNumberMode = iota

	// LineNumberRelative shows relative line numbers from cursor.
	LineNumberRelative

	// LineNumberHybrid shows absolute for current line, relative for others.
	LineNumberHybrid
)

// String returns the mode name.
func (m LineNumberMode) String() string {
	switch m {
	case LineNumberAbsolute:
		return "absolute"
	case LineNumberRelative:
		return "relative"
	case LineNumberHybrid:
		return "hybrid"
	}
	return "unknown"
}

// ParseLineNumberMode converts a mode name to a LineNumberMode.
func ParseLineNumberMode(s string) (LineNumberMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "absolute":
		return LineNumberAbsolute, nil
	case "relative":
		return LineNumberRelative, nil
	case "hybrid":
		return LineNumberHybrid, nil
	}
	return LineNumberAbsolute, fmt.Errorf("unknown line number mode %q", s)
}

// lineNumber returns the number to display for a line.
func lineNumber(mode LineNumberMode, line, current int) int {
	switch mode {
	case LineNumberRelative:
		return absDiff(line, current)
	case LineNumberHybrid:
		if line == current {
			return line + 1
		}
		return absDiff(line, current)
	default: // LineNumberAbsolute
		return line + 1 // 1-indexed display
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// FormatNumber formats a line number.
func FormatNumber(n int) string {
	return strconv.Itoa(n)
}

// PadLeft pads a string with spaces on the left to the specified width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func countDigits(n int) int {
	if n < 1 {
		return 1
	}
	return len(strconv.Itoa(n))
}
