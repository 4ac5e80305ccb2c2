package textinput

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// graphemeBounds returns the rune offsets of every grapheme cluster boundary
// in s, including 0 and the rune length of s.
func graphemeBounds(s string) []int {
	bounds := []int{0}
	offset := 0
	state := -1
	var cluster string
	for s != "" {
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		offset += utf8.RuneCountInString(cluster)
		bounds = append(bounds, offset)
	}
	return bounds
}

// prevBoundary returns the closest boundary before pos, or 0.
func prevBoundary(bounds []int, pos int) int {
	prev := 0
	for _, b := range bounds {
		if b >= pos {
			break
		}
		prev = b
	}
	return prev
}

// nextBoundary returns the closest boundary after pos, or the last one.
func nextBoundary(bounds []int, pos int) int {
	for _, b := range bounds {
		if b > pos {
			return b
		}
	}
	return bounds[len(bounds)-1]
}

// span is a rune range produced by word segmentation.
type span struct {
	start, end int
	word       bool
}

// wordSpans splits s into word and non-word segments.
func wordSpans(s string) []span {
	var spans []span
	offset := 0
	state := -1
	var seg string
	for s != "" {
		seg, s, state = uniseg.FirstWordInString(s, state)
		n := utf8.RuneCountInString(seg)
		spans = append(spans, span{start: offset, end: offset + n, word: isWord(seg)})
		offset += n
	}
	return spans
}

func isWord(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

// wordLeft returns the start of the word at or before pos.
func wordLeft(s string, pos int) int {
	target := 0
	for _, sp := range wordSpans(s) {
		if sp.start >= pos {
			break
		}
		if sp.word {
			target = sp.start
		}
	}
	return target
}

// wordRight returns the end of the word at or after pos.
func wordRight(s string, pos int) int {
	spans := wordSpans(s)
	for _, sp := range spans {
		if sp.word && sp.end > pos {
			return sp.end
		}
	}
	if len(spans) == 0 {
		return 0
	}
	return spans[len(spans)-1].end
}
