package highlight

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

// checkCoverage verifies that segs cover text exactly.
func checkCoverage(t *testing.T, text string, segs []Segment) {
	t.Helper()
	if len(segs) == 0 {
		t.Fatal("no segments")
	}
	var b strings.Builder
	pos := 0
	for i, seg := range segs {
		if seg.Start != pos {
			t.Fatalf("segment %d starts at %d, want %d", i, seg.Start, pos)
		}
		if got := utf8.RuneCountInString(seg.Text); got != seg.Len() {
			t.Fatalf("segment %d text has %d runes, Len() = %d", i, got, seg.Len())
		}
		b.WriteString(seg.Text)
		pos = seg.End
	}
	if pos != utf8.RuneCountInString(text) {
		t.Errorf("segments end at %d, want %d", pos, utf8.RuneCountInString(text))
	}
	if b.String() != text {
		t.Errorf("concatenated segments = %q, want %q", b.String(), text)
	}
}

func TestTokenizeVariables(t *testing.T) {
	text := "https://{{host}}/users/{{ id }}"
	segs := Tokenize(text, DefaultVariablePattern, true)
	checkCoverage(t, text, segs)

	want := []struct {
		typ  SegmentType
		text string
	}{
		{Normal, "https://"},
		{Variable, "{{host}}"},
		{Normal, "/users/"},
		{Variable, "{{ id }}"},
	}
	if len(segs) != len(want) {
		t.Fatalf("len(segs) = %d, want %d: %+v", len(segs), len(want), segs)
	}
	for i, w := range want {
		if segs[i].Type != w.typ || segs[i].Text != w.text {
			t.Errorf("segs[%d] = %v %q, want %v %q", i, segs[i].Type, segs[i].Text, w.typ, w.text)
		}
	}
}

func TestTokenizeFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		enabled bool
	}{
		{"disabled", "a {{b}} c", DefaultVariablePattern, false},
		{"invalid pattern", "a {{b}} c", `(\{\{`, true},
		{"no matches", "plain text", DefaultVariablePattern, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Tokenize(tt.text, tt.pattern, tt.enabled)
			if len(segs) != 1 {
				t.Fatalf("len(segs) = %d, want 1", len(segs))
			}
			if segs[0].Type != Normal || segs[0].Text != tt.text {
				t.Errorf("segs[0] = %+v, want whole-text Normal", segs[0])
			}
		})
	}
}

func TestTokenizeEmpty(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		segs := Tokenize("", DefaultVariablePattern, enabled)
		if len(segs) != 1 {
			t.Fatalf("len(segs) = %d, want 1", len(segs))
		}
		if segs[0] != (Segment{Type: Normal}) {
			t.Errorf("segs[0] = %+v, want empty Normal", segs[0])
		}
	}
}

func TestTokenizeRuneOffsets(t *testing.T) {
	text := "héllo {{naïve}} ✓"
	segs := Tokenize(text, DefaultVariablePattern, true)
	checkCoverage(t, text, segs)

	if len(segs) != 3 {
		t.Fatalf("len(segs) = %d, want 3", len(segs))
	}
	if segs[1].Start != 6 || segs[1].End != 15 {
		t.Errorf("variable at [%d,%d), want [6,15)", segs[1].Start, segs[1].End)
	}
}

func TestTokenizeInvalidUTF8(t *testing.T) {
	inputs := []string{"a\xff{{x}}b", "\xff\xfe", "{{\xffname}}", "ok {{x}}\xc3"}
	for _, in := range inputs {
		segs := Tokenize(in, DefaultVariablePattern, true)
		checkCoverage(t, in, segs)
		checkCoverage(t, in, Tokenize(in, DefaultVariablePattern, false))
	}

	segs := Tokenize("a\xff{{x}}b", DefaultVariablePattern, true)
	if len(segs) != 3 || segs[0].Text != "a\xff" || segs[1].Start != 2 {
		t.Errorf("Tokenize() = %+v, want Normal \"a\\xff\" then Variable at 2", segs)
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	inputs := []string{"", "x", "{{a}}{{b}}", "{{unterminated", "}} {{ok}} {{", "{{a}}\n{{b}}"}
	for _, in := range inputs {
		a := Tokenize(in, DefaultVariablePattern, true)
		b := Tokenize(in, DefaultVariablePattern, true)
		checkCoverage(t, in, a)
		if len(a) != len(b) {
			t.Fatalf("Tokenize(%q) not deterministic", in)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("Tokenize(%q)[%d] = %+v then %+v", in, i, a[i], b[i])
			}
		}
	}
}

func TestTokenizerAdjacentMatches(t *testing.T) {
	tok := NewTokenizer(DefaultConfig())
	segs := tok.Tokenize("{{a}}{{b}}")
	if len(segs) != 2 {
		t.Fatalf("len(segs) = %d, want 2", len(segs))
	}
	for _, seg := range segs {
		if seg.Type != Variable {
			t.Errorf("segment %q type = %v, want variable", seg.Text, seg.Type)
		}
	}
}

func TestTokenizerLookaroundPattern(t *testing.T) {
	tok := NewTokenizer(Config{Enabled: true, Pattern: `(?<=\$)\w+`})
	if err := tok.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	segs := tok.Tokenize("cost $amount now")
	checkCoverage(t, "cost $amount now", segs)
	seg, ok := SegmentAt(segs, 6)
	if !ok || seg.Type != Variable || seg.Text != "amount" {
		t.Errorf("SegmentAt(6) = %+v, want variable amount", seg)
	}
}

func TestTokenizerInvalidPattern(t *testing.T) {
	tok := NewTokenizer(Config{Enabled: true, Pattern: `[`})
	if tok.Err() == nil {
		t.Fatal("Err() = nil, want compile error")
	}
	segs := tok.Tokenize("{{a}}")
	if len(segs) != 1 || segs[0].Type != Normal {
		t.Errorf("Tokenize() = %+v, want whole-text Normal", segs)
	}
}

func TestTokenizerTimeoutFallsBack(t *testing.T) {
	tok := NewTokenizer(Config{
		Enabled:      true,
		Pattern:      `(a+)+$`,
		MatchTimeout: time.Millisecond,
	})
	text := strings.Repeat("a", 5000) + "!"
	segs := tok.Tokenize(text)
	checkCoverage(t, text, segs)
	if len(segs) != 1 || segs[0].Type != Normal {
		t.Errorf("len(segs) = %d, want single Normal segment", len(segs))
	}
}

func TestValidatePattern(t *testing.T) {
	if err := ValidatePattern(DefaultVariablePattern); err != nil {
		t.Errorf("ValidatePattern(default) = %v", err)
	}
	if err := ValidatePattern(`(`); err == nil {
		t.Error("ValidatePattern(\"(\") = nil, want error")
	}
}

func TestSegmentTypeString(t *testing.T) {
	for typ := Normal; typ < segmentTypeCount; typ++ {
		got, ok := ParseSegmentType(typ.String())
		if !ok || got != typ {
			t.Errorf("ParseSegmentType(%q) = %v, %v", typ.String(), got, ok)
		}
	}
	if SegmentType(200).String() != "unknown" {
		t.Error("out of range type should be unknown")
	}
}
