package editor

import (
	"strings"
	"unicode/utf8"
)

// Position is a line and rune column.
type Position struct {
	Line   int
	Column int
}

// Less reports whether p comes before q.
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// buffer is an immutable split of a text into lines. Line endings are not
// part of the lines; endings holds the rune length of each line's ending
// (0 for the last line, 1 for "\n", 2 for "\r\n").
type buffer struct {
	text    string
	lines   []string
	lens    []int // rune length of each line
	endings []int
	total   int // rune length of text
}

func newBuffer(text string) *buffer {
	b := &buffer{text: text}
	rest := text
	for {
		i := strings.IndexByte(rest, '\n')
		if i < 0 {
			b.add(rest, 0)
			break
		}
		line, ending := rest[:i], 1
		if strings.HasSuffix(line, "\r") {
			line, ending = line[:len(line)-1], 2
		}
		b.add(line, ending)
		rest = rest[i+1:]
	}
	return b
}

func (b *buffer) add(line string, ending int) {
	n := utf8.RuneCountInString(line)
	b.lines = append(b.lines, line)
	b.lens = append(b.lens, n)
	b.endings = append(b.endings, ending)
	b.total += n + ending
}

// lineStart returns the rune offset of the first rune of line.
func (b *buffer) lineStart(line int) int {
	off := 0
	for i := 0; i < line && i < len(b.lines); i++ {
		off += b.lens[i] + b.endings[i]
	}
	return off
}

// offset converts a position to a rune offset. Out of range lines and
// columns are clamped.
func (b *buffer) offset(p Position) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(b.lines) {
		return b.total
	}
	col := p.Column
	if col < 0 {
		col = 0
	}
	if col > b.lens[p.Line] {
		col = b.lens[p.Line]
	}
	return b.lineStart(p.Line) + col
}

// position converts a rune offset to a position. An offset inside a line
// ending maps to the end of that line; offsets past the end map to the end
// of the last line.
func (b *buffer) position(off int) Position {
	if off < 0 {
		off = 0
	}
	start := 0
	for i := range b.lines {
		total := b.lens[i] + b.endings[i]
		if off < start+total {
			col := off - start
			if col > b.lens[i] {
				col = b.lens[i]
			}
			return Position{Line: i, Column: col}
		}
		start += total
	}
	last := len(b.lines) - 1
	return Position{Line: last, Column: b.lens[last]}
}
