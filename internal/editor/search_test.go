package editor

import (
	"testing"

	"github.com/dshills/reqpad/internal/renderer/highlight"
	"github.com/dshills/reqpad/internal/renderer/layout"
)

func TestFind(t *testing.T) {
	v, _ := newTestView(t, "foo bar foo")

	tests := []struct {
		name    string
		query   string
		from    int
		forward bool
		want    Match
		found   bool
	}{
		{"forward from start skips current", "foo", 0, true, Match{8, 11}, true},
		{"forward wraps", "foo", 8, true, Match{0, 3}, true},
		{"forward from before", "bar", 0, true, Match{4, 7}, true},
		{"backward skips match ending at from", "foo", 11, false, Match{0, 3}, true},
		{"backward wraps", "foo", 3, false, Match{8, 11}, true},
		{"missing", "baz", 0, true, Match{}, false},
		{"empty query", "", 0, true, Match{}, false},
		{"case sensitive", "FOO", 0, true, Match{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.Find(tt.query, tt.from, tt.forward)
			if ok != tt.found || got != tt.want {
				t.Errorf("Find(%q, %d, %v) = %v, %v, want %v, %v",
					tt.query, tt.from, tt.forward, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestFindCaseInsensitive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Language = highlight.LangText
	cfg.Search.CaseSensitive = false
	v := New(cfg, layout.FixedMeasurer(8), "Héllo HÉLLO")

	got, ok := v.Find("héllo", 0, true)
	if !ok || got != (Match{6, 11}) {
		t.Errorf("Find() = %v, %v, want {6 11}, true", got, ok)
	}
}

func TestFindAll(t *testing.T) {
	v, _ := newTestView(t, "aaa")

	got := v.FindAll("aa")
	want := []Match{{0, 2}, {1, 3}}
	if len(got) != len(want) {
		t.Fatalf("FindAll() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindAll()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
