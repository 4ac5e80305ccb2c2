package preview

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/reqpad/internal/renderer/highlight"
)

// Theme maps segment types and chrome to terminal styles.
type Theme struct {
	Segments    map[highlight.SegmentType]tcell.Style
	Gutter      tcell.Style
	CurrentLine tcell.Style
	Mark        tcell.Style
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Segments: map[highlight.SegmentType]tcell.Style{
			highlight.Normal:   base,
			highlight.Variable: base.Foreground(tcell.ColorTeal).Bold(true),
			highlight.String:   base.Foreground(tcell.ColorGreen),
			highlight.Number:   base.Foreground(tcell.ColorPurple),
			highlight.Keyword:  base.Foreground(tcell.ColorBlue),
		},
		Gutter:      base.Foreground(tcell.ColorGray),
		CurrentLine: base.Foreground(tcell.ColorYellow),
		Mark:        base.Reverse(true),
	}
}

// Style returns the style for a segment type, falling back to Normal.
func (t Theme) Style(st highlight.SegmentType) tcell.Style {
	if s, ok := t.Segments[st]; ok {
		return s
	}
	return t.Segments[highlight.Normal]
}
