package gutter

import (
	"testing"

	"github.com/dshills/reqpad/internal/renderer/layout"
)

func TestGutterWidthTracksDigits(t *testing.T) {
	g := New(DefaultConfig(), 8)
	if got := g.Width(); got != 21 {
		t.Fatalf("Width() = %v, want 21", got)
	}

	tests := []struct {
		count   int
		changed bool
		width   float64
	}{
		{9, false, 21},
		{10, true, 29},
		{57, false, 29},
		{100, true, 37},
		{1000, true, 45},
		{3, true, 21},
		{0, false, 21},
	}

	for _, tt := range tests {
		if changed := g.SetLineCount(tt.count); changed != tt.changed {
			t.Errorf("SetLineCount(%d) = %v, want %v", tt.count, changed, tt.changed)
		}
		if got := g.Width(); got != tt.width {
			t.Errorf("after SetLineCount(%d) Width() = %v, want %v", tt.count, got, tt.width)
		}
	}
}

func TestGutterSetCharWidth(t *testing.T) {
	g := New(DefaultConfig(), 8)
	g.SetLineCount(10)
	g.SetCharWidth(10)
	if got := g.Width(); got != 35 {
		t.Errorf("Width() = %v, want 35", got)
	}

	g.SetConfig(Config{Padding: 0})
	if got := g.Width(); got != 30 {
		t.Errorf("Width() after padding change = %v, want 30", got)
	}
}

func TestLabelsFirstRowsOnly(t *testing.T) {
	lines := []string{"short", "a much longer line that wraps", "x"}
	rows := layout.ComputeVisualRows(lines, 80, 8, 20)

	g := New(DefaultConfig(), 8)
	g.SetLineCount(len(lines))
	labels := g.Labels(rows, 0, 1000)

	if len(labels) != 3 {
		t.Fatalf("len(labels) = %d, want 3", len(labels))
	}
	for i, l := range labels {
		if l.Line != i {
			t.Errorf("labels[%d].Line = %d, want %d", i, l.Line, i)
		}
		idx, _ := layout.FirstRowOf(rows, i)
		if l.Y != rows[idx].Y {
			t.Errorf("labels[%d].Y = %v, want %v", i, l.Y, rows[idx].Y)
		}
	}
	if labels[2].Y <= 40 {
		t.Errorf("third label y = %v, should be below the wrapped line", labels[2].Y)
	}
}

func TestLabelsViewportCulled(t *testing.T) {
	lines := make([]string, 20)
	rows := layout.ComputeVisualRows(lines, 80, 8, 20)

	g := New(DefaultConfig(), 8)
	g.SetLineCount(len(lines))
	labels := g.Labels(rows, 50, 200)

	// Rows at y=40..180 overlap [50,200).
	if len(labels) != 8 {
		t.Fatalf("len(labels) = %d, want 8", len(labels))
	}
	if labels[0].Text != " 3" || labels[7].Text != "10" {
		t.Errorf("labels = %q .. %q, want \" 3\" .. \"10\"", labels[0].Text, labels[7].Text)
	}
}

func TestLabelsContinuationOnlyInViewport(t *testing.T) {
	rows := layout.ComputeVisualRows([]string{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}, 80, 8, 20)
	g := New(DefaultConfig(), 8)
	if labels := g.Labels(rows, 25, 60); len(labels) != 0 {
		t.Errorf("len(labels) = %d, want 0 for continuation rows", len(labels))
	}
}

func TestLabelsRelative(t *testing.T) {
	rows := layout.ComputeVisualRows([]string{"a", "b", "c", "d"}, 80, 8, 20)
	g := New(Config{Mode: LineNumberHybrid}, 8)
	g.SetLineCount(4)
	g.SetCurrentLine(1)

	var got []string
	for _, l := range g.Labels(rows, 0, 100) {
		got = append(got, l.Text)
		if l.Current != (l.Line == 1) {
			t.Errorf("label %d Current = %v", l.Line, l.Current)
		}
	}
	want := []string{"1", "2", "1", "2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("labels = %v, want %v", got, want)
			break
		}
	}
}

func TestLineNumber(t *testing.T) {
	tests := []struct {
		mode          LineNumberMode
		line, current int
		want          int
	}{
		{LineNumberAbsolute, 0, 5, 1},
		{LineNumberRelative, 5, 5, 0},
		{LineNumberRelative, 2, 5, 3},
		{LineNumberHybrid, 5, 5, 6},
		{LineNumberHybrid, 8, 5, 3},
	}

	for _, tt := range tests {
		if got := lineNumber(tt.mode, tt.line, tt.current); got != tt.want {
			t.Errorf("lineNumber(%v, %d, %d) = %d, want %d", tt.mode, tt.line, tt.current, got, tt.want)
		}
	}
}

func TestPadLeft(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"7", 3, "  7"},
		{"123", 3, "123"},
		{"1234", 3, "1234"},
	}
	for _, tt := range tests {
		if got := PadLeft(tt.s, tt.width); got != tt.want {
			t.Errorf("PadLeft(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestParseLineNumberMode(t *testing.T) {
	for _, m := range []LineNumberMode{LineNumberAbsolute, LineNumberRelative, LineNumberHybrid} {
		got, err := ParseLineNumberMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseLineNumberMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseLineNumberMode("roman"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
