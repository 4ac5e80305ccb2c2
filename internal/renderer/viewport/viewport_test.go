package viewport

import "testing"

func newTestViewport() *Viewport {
	v := New(300, 150)
	v.SetContentSize(600, 1000)
	return v
}

func TestNewClampsNegative(t *testing.T) {
	v := New(-1, -5)
	if v.Width() != 0 || v.Height() != 0 {
		t.Errorf("size = %vx%v, want 0x0", v.Width(), v.Height())
	}
}

func TestScrollToClamps(t *testing.T) {
	v := newTestViewport()

	tests := []struct {
		y    float64
		want float64
	}{
		{100, 100},
		{-10, 0},
		{5000, 850},
	}
	for _, tt := range tests {
		v.ScrollTo(tt.y)
		if got := v.Offset(); got != tt.want {
			t.Errorf("ScrollTo(%v) offset = %v, want %v", tt.y, got, tt.want)
		}
	}

	if v.ScrollTo(850) {
		t.Error("ScrollTo() to the current offset reported a change")
	}
}

func TestScrollBy(t *testing.T) {
	v := newTestViewport()
	v.ScrollBy(40)
	v.ScrollBy(-15)
	if got := v.Offset(); got != 25 {
		t.Errorf("Offset() = %v, want 25", got)
	}
}

func TestRange(t *testing.T) {
	v := newTestViewport()
	v.ScrollTo(50)
	start, end := v.Range()
	if start != 50 || end != 200 {
		t.Errorf("Range() = [%v, %v), want [50, 200)", start, end)
	}
	if !v.IsVisible(190, 20) || v.IsVisible(250, 20) {
		t.Error("IsVisible disagrees with the viewport range")
	}
}

func TestReveal(t *testing.T) {
	tests := []struct {
		name       string
		margin     float64
		start      float64
		y, h       float64
		wantOffset float64
		wantMoved  bool
	}{
		{"already visible", 0, 0, 40, 20, 0, false},
		{"below", 0, 0, 200, 20, 70, true},
		{"above", 0, 300, 100, 20, 100, true},
		{"below with margin", 20, 0, 200, 20, 90, true},
		{"above with margin", 20, 300, 100, 20, 80, true},
		{"margin too large", 100, 0, 200, 20, 70, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViewport()
			v.SetMargin(tt.margin)
			v.ScrollTo(tt.start)
			if moved := v.Reveal(tt.y, tt.h); moved != tt.wantMoved {
				t.Errorf("Reveal() = %v, want %v", moved, tt.wantMoved)
			}
			if got := v.Offset(); got != tt.wantOffset {
				t.Errorf("Offset() = %v, want %v", got, tt.wantOffset)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	v := newTestViewport()
	v.Center(500, 20)
	if got := v.Offset(); got != 435 {
		t.Errorf("Offset() = %v, want 435", got)
	}
	v.Center(0, 20)
	if got := v.Offset(); got != 0 {
		t.Errorf("Offset() near top = %v, want 0", got)
	}
	v.Center(990, 10)
	if got := v.Offset(); got != 850 {
		t.Errorf("Offset() near bottom = %v, want 850", got)
	}
}

func TestEnsureRangeVisible(t *testing.T) {
	v := newTestViewport()
	if v.EnsureRangeVisible(10, 100) {
		t.Error("visible range should not scroll")
	}
	v.EnsureRangeVisible(400, 450)
	if got := v.Offset(); got != 350 {
		t.Errorf("Offset() = %v, want 350", got)
	}
	v.EnsureRangeVisible(600, 900)
	if got := v.Offset(); got != 600 {
		t.Errorf("Offset() for tall range = %v, want 600", got)
	}
}

func TestSetContentSizeReclamps(t *testing.T) {
	v := newTestViewport()
	v.ScrollTo(800)
	v.SetContentSize(600, 200)
	if got := v.Offset(); got != 50 {
		t.Errorf("Offset() = %v, want 50", got)
	}
	v.Resize(300, 400)
	if got := v.Offset(); got != 0 {
		t.Errorf("Offset() after growing = %v, want 0", got)
	}
}

func TestScrollPercent(t *testing.T) {
	v := newTestViewport()
	v.ScrollToPercent(0.5)
	if got := v.Offset(); got != 425 {
		t.Errorf("Offset() = %v, want 425", got)
	}
	if got := v.ScrollPercent(); got != 0.5 {
		t.Errorf("ScrollPercent() = %v, want 0.5", got)
	}
	v.ScrollToPercent(3)
	if got := v.ScrollPercent(); got != 1 {
		t.Errorf("ScrollPercent() = %v, want 1", got)
	}
}

func TestScrollToX(t *testing.T) {
	v := newTestViewport()
	v.ScrollToX(1000)
	if got := v.OffsetX(); got != 300 {
		t.Errorf("OffsetX() = %v, want 300", got)
	}
}
