package editor

import (
	"unicode"
)

// Match is a search hit as a rune range [Start, End).
type Match struct {
	Start int
	End   int
}

// Find searches for query starting from the rune offset from, wrapping
// around the ends of the text. Forward search starts one character after
// from, so repeated calls with the previous match's end step through all
// matches. Backward search returns the last match ending at or before from,
// skipping the one that ends exactly at from.
func (v *View) Find(query string, from int, forward bool) (Match, bool) {
	q := []rune(query)
	if len(q) == 0 {
		return Match{}, false
	}
	text := []rune(v.buf.text)
	hits := v.occurrences(text, q)
	if len(hits) == 0 {
		return Match{}, false
	}
	if from < 0 {
		from = 0
	}
	if from > len(text) {
		from = len(text)
	}

	n := len(q)
	if forward {
		start := from
		if start < len(text) {
			start++
		}
		for _, h := range hits {
			if h >= start {
				return Match{Start: h, End: h + n}, true
			}
		}
		return Match{Start: hits[0], End: hits[0] + n}, true
	}

	best := -1
	for _, h := range hits {
		if h+n > from {
			break
		}
		if h+n == from {
			continue
		}
		best = h
	}
	if best < 0 {
		// Wrap around to the last match.
		best = hits[len(hits)-1]
	}
	return Match{Start: best, End: best + n}, true
}

// FindAll returns every match of query, in order. Overlapping matches are
// included.
func (v *View) FindAll(query string) []Match {
	q := []rune(query)
	if len(q) == 0 {
		return nil
	}
	hits := v.occurrences([]rune(v.buf.text), q)
	out := make([]Match, len(hits))
	for i, h := range hits {
		out[i] = Match{Start: h, End: h + len(q)}
	}
	return out
}

// occurrences returns the start offset of every occurrence of q in text.
func (v *View) occurrences(text, q []rune) []int {
	var hits []int
	for i := 0; i+len(q) <= len(text); i++ {
		if v.matchAt(text, q, i) {
			hits = append(hits, i)
		}
	}
	return hits
}

func (v *View) matchAt(text, q []rune, i int) bool {
	for j, r := range q {
		t := text[i+j]
		if t == r {
			continue
		}
		if v.cfg.Search.CaseSensitive || unicode.ToLower(t) != unicode.ToLower(r) {
			return false
		}
	}
	return true
}
