// Package layout computes pixel geometry for a monospace text grid.
//
// Every logical line is split into one or more visual rows by a single wrap
// routine. The same routine answers "where does column c of this line land"
// and "how many rows does this line take", so the gutter, the text renderer
// and any overlay (selection, search match) always agree on row positions.
//
// Geometry is expressed in float64 pixels. Columns and offsets are rune
// indices. A character occupies one cell of charWidth pixels, or two cells
// for East Asian wide runes when wide cells are enabled.
//
// Cache holds measured font metrics and the last computed row list for one
// editor view. It recomputes rows only when the caller's content version
// changes or the content width moves by more than WidthEpsilon.
package layout
