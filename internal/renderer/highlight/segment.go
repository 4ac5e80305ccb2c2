// Package highlight classifies the text of the editing widgets into typed
// segments for syntax and variable highlighting.
//
// All offsets are rune offsets. A segment list always covers its input
// exactly: segments are ordered, contiguous, non-overlapping, and an empty
// input produces a single empty Normal segment.
package highlight

// SegmentType represents the semantic class of a segment.
type SegmentType uint8

// Segment types.
const (
	Normal SegmentType = iota
	Variable
	String
	Number
	Keyword

	segmentTypeCount
)

// String returns the string representation of a segment type.
func (t SegmentType) String() string {
	if int(t) < len(segmentTypeNames) {
		return segmentTypeNames[t]
	}
	return "unknown"
}

var segmentTypeNames = [...]string{
	Normal:   "normal",
	Variable: "variable",
	String:   "string",
	Number:   "number",
	Keyword:  "keyword",
}

// ParseSegmentType converts a name back to a SegmentType.
func ParseSegmentType(name string) (SegmentType, bool) {
	for i, n := range segmentTypeNames {
		if n == name {
			return SegmentType(i), true
		}
	}
	return Normal, false
}

// Segment is a classified span of text.
type Segment struct {
	// Type is the semantic class.
	Type SegmentType

	// Text is the covered substring.
	Text string

	// Start is the first rune offset.
	Start int

	// End is the rune offset after the last rune (exclusive).
	End int
}

// Len returns the length of the segment in runes.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Contains returns true if the rune offset is within the segment.
func (s Segment) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// SegmentAt returns the segment covering offset, if any.
// segs must be sorted by Start.
func SegmentAt(segs []Segment, offset int) (Segment, bool) {
	for _, seg := range segs {
		if seg.Contains(offset) {
			return seg, true
		}
		if seg.Start > offset {
			break // Segments are sorted, no need to continue
		}
	}
	return Segment{}, false
}

// whole returns the single Normal segment spanning text.
func whole(text string, runeLen int) []Segment {
	return []Segment{{Type: Normal, Text: text, Start: 0, End: runeLen}}
}

// byteOffsets returns the byte offset of every rune index in text, plus a
// final entry for len(text). Each invalid UTF-8 byte counts as one rune, as
// in a []rune conversion.
func byteOffsets(text string) []int {
	offs := make([]int, 0, len(text)+1)
	for i := range text {
		offs = append(offs, i)
	}
	return append(offs, len(text))
}

// encode run-length encodes a per-rune class slice into segments. Segment
// text is sliced from text so the segments join back to it byte for byte.
func encode(text string, classes []SegmentType) []Segment {
	if len(classes) == 0 {
		return whole("", 0)
	}

	offs := byteOffsets(text)
	segs := make([]Segment, 0, 8)
	start := 0
	for i := 1; i <= len(classes); i++ {
		if i < len(classes) && classes[i] == classes[start] {
			continue
		}
		segs = append(segs, Segment{
			Type:  classes[start],
			Text:  text[offs[start]:offs[i]],
			Start: start,
			End:   i,
		})
		start = i
	}
	return segs
}
