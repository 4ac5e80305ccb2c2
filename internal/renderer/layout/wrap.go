package layout

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// WrapMode selects how a line is split into rows.
type WrapMode uint8

const (
	// WrapGlyph breaks at the row edge regardless of word boundaries. A line
	// of n cells takes max(1, ceil(n/cols)) rows.
	WrapGlyph WrapMode = iota

	// WrapWord breaks before a word that would overflow a non-empty row.
	// Words longer than a row are split at the row edge. Whitespace never
	// starts a row on its own; it hangs past the edge of the row it follows.
	WrapWord
)

// String returns the mode name.
func (m WrapMode) String() string {
	switch m {
	case WrapGlyph:
		return "glyph"
	case WrapWord:
		return "word"
	}
	return "unknown"
}

// ParseWrapMode converts a mode name to a WrapMode.
func ParseWrapMode(s string) (WrapMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "glyph", "char", "character":
		return WrapGlyph, nil
	case "word":
		return WrapWord, nil
	}
	return WrapGlyph, fmt.Errorf("unknown wrap mode %q", s)
}

// ColumnsPerRow returns floor(contentWidth / charWidth), or 0 when the
// geometry cannot hold a single column. Zero means no wrapping.
func ColumnsPerRow(contentWidth, charWidth float64) int {
	if charWidth <= 0 || contentWidth <= 0 {
		return 0
	}
	cols := math.Floor(contentWidth / charWidth)
	if cols < 1 || math.IsInf(cols, 0) || math.IsNaN(cols) {
		return 0
	}
	if cols > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(cols)
}

// cellWidth returns the number of cells r occupies.
func cellWidth(r rune, wide bool) int {
	if !wide {
		return 1
	}
	return runewidth.RuneWidth(r)
}

// CellCount returns the number of cells text occupies.
func CellCount(text string, wide bool) int {
	if !wide {
		return len([]rune(text))
	}
	n := 0
	for _, r := range text {
		n += cellWidth(r, true)
	}
	return n
}

// breaks returns the rune index at which each visual row of a line starts.
// The first element is always 0. cols < 1 disables wrapping.
func breaks(runes []rune, cols int, mode WrapMode, wide bool) []int {
	starts := []int{0}
	if cols < 1 || len(runes) == 0 {
		return starts
	}

	used := 0
	// place adds one rune to the current row, starting a new row first if it
	// would overflow a non-empty one.
	place := func(i int) {
		w := cellWidth(runes[i], wide)
		if used > 0 && used+w > cols {
			starts = append(starts, i)
			used = 0
		}
		used += w
	}

	if mode == WrapGlyph {
		for i := range runes {
			place(i)
		}
		return starts
	}

	for i := 0; i < len(runes); {
		space := unicode.IsSpace(runes[i])
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) == space {
			j++
		}

		if space {
			for k := i; k < j; k++ {
				used += cellWidth(runes[k], wide)
			}
			i = j
			continue
		}

		tw := 0
		for k := i; k < j; k++ {
			tw += cellWidth(runes[k], wide)
		}
		if used > 0 && used+tw > cols {
			starts = append(starts, i)
			used = 0
		}
		if tw > cols {
			for k := i; k < j; k++ {
				place(k)
			}
		} else {
			used += tw
		}
		i = j
	}
	return starts
}

// rowOf returns the index of the row containing column.
func rowOf(starts []int, column int) int {
	row := 0
	for i, s := range starts {
		if s > column {
			break
		}
		row = i
	}
	return row
}
