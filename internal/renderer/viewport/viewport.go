// Package viewport tracks the visible pixel region of a scrollable text area.
//
// Offsets are in the same coordinate space as layout.VisualRow.Y: zero is
// the top of the content, not the top of the widget.
package viewport

import (
	"math"
	"sync"
)

// Viewport represents the visible portion of the content.
type Viewport struct {
	mu sync.RWMutex

	// Scroll position in pixels
	offsetY float64
	offsetX float64

	// Visible size in pixels
	width  float64
	height float64

	// Content size in pixels
	contentWidth  float64
	contentHeight float64

	// margin keeps revealed rows this far from the edges
	margin float64
}

// New creates a viewport with the given visible size. Negative sizes are
// clamped to zero.
func New(width, height float64) *Viewport {
	return &Viewport{
		width:  math.Max(width, 0),
		height: math.Max(height, 0),
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// Offset returns the vertical scroll offset.
func (v *Viewport) Offset() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offsetY
}

// OffsetX returns the horizontal scroll offset.
func (v *Viewport) OffsetX() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offsetX
}

// Range returns the visible vertical span [start, end).
func (v *Viewport) Range() (start, end float64) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offsetY, v.offsetY + v.height
}

// Resize updates the visible size and re-clamps the scroll offsets.
func (v *Viewport) Resize(width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = math.Max(width, 0)
	v.height = math.Max(height, 0)
	v.clamp()
}

// SetContentSize updates the scrollable extent and re-clamps the offsets.
func (v *Viewport) SetContentSize(width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.contentWidth = math.Max(width, 0)
	v.contentHeight = math.Max(height, 0)
	v.clamp()
}

// ContentHeight returns the scrollable height.
func (v *Viewport) ContentHeight() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.contentHeight
}

// SetMargin sets the distance Reveal keeps between a row and the edges.
func (v *Viewport) SetMargin(m float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.margin = math.Max(m, 0)
}

// MaxOffset returns the largest valid vertical offset.
func (v *Viewport) MaxOffset() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.maxOffsetY()
}

func (v *Viewport) maxOffsetY() float64 {
	return math.Max(v.contentHeight-v.height, 0)
}

func (v *Viewport) maxOffsetX() float64 {
	return math.Max(v.contentWidth-v.width, 0)
}

// clamp keeps the offsets inside the content. Must be called with the lock held.
func (v *Viewport) clamp() {
	v.offsetY = clampf(v.offsetY, 0, v.maxOffsetY())
	v.offsetX = clampf(v.offsetX, 0, v.maxOffsetX())
}

func clampf(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
