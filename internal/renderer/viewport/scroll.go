package viewport

// ScrollTo sets the vertical offset, clamped to the content. It returns true
// if the offset changed.
func (v *Viewport) ScrollTo(y float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	old := v.offsetY
	v.offsetY = clampf(y, 0, v.maxOffsetY())
	return v.offsetY != old
}

// ScrollBy moves the vertical offset by dy.
func (v *Viewport) ScrollBy(dy float64) bool {
	v.mu.RLock()
	y := v.offsetY
	v.mu.RUnlock()
	return v.ScrollTo(y + dy)
}

// ScrollToX sets the horizontal offset, clamped to the content.
func (v *Viewport) ScrollToX(x float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	old := v.offsetX
	v.offsetX = clampf(x, 0, v.maxOffsetX())
	return v.offsetX != old
}

// IsVisible reports whether any part of [y, y+h) is on screen.
func (v *Viewport) IsVisible(y, h float64) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return y+h > v.offsetY && y < v.offsetY+v.height
}

// Reveal scrolls the minimum distance needed to show [y, y+h) fully, keeping
// the configured margin where there is room. Returns true if scrolling was
// needed.
func (v *Viewport) Reveal(y, h float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	margin := v.margin
	if 2*margin+h > v.height {
		margin = 0
	}

	target := v.offsetY
	switch {
	case y-margin < v.offsetY:
		target = y - margin
	case y+h+margin > v.offsetY+v.height:
		target = y + h + margin - v.height
	}

	old := v.offsetY
	v.offsetY = clampf(target, 0, v.maxOffsetY())
	return v.offsetY != old
}

// Center scrolls so that [y, y+h) sits in the middle of the viewport, as far
// as the content allows.
func (v *Viewport) Center(y, h float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	old := v.offsetY
	v.offsetY = clampf(y+h/2-v.height/2, 0, v.maxOffsetY())
	return v.offsetY != old
}

// EnsureRangeVisible makes [top, bottom) visible. A span that fits is
// centered if it is not already fully shown; a larger span is revealed from
// its top.
func (v *Viewport) EnsureRangeVisible(top, bottom float64) bool {
	v.mu.RLock()
	height := v.height
	start, end := v.offsetY, v.offsetY+v.height
	v.mu.RUnlock()

	if top >= start && bottom <= end {
		return false
	}
	if bottom-top <= height {
		return v.Center(top, bottom-top)
	}
	return v.ScrollTo(top)
}

// ScrollPercent returns how far through the content the view is (0.0 to 1.0).
func (v *Viewport) ScrollPercent() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	maxY := v.maxOffsetY()
	if maxY == 0 {
		return 0
	}
	return v.offsetY / maxY
}

// ScrollToPercent scrolls to a fraction of the scrollable range.
func (v *Viewport) ScrollToPercent(percent float64) bool {
	percent = clampf(percent, 0, 1)
	v.mu.RLock()
	maxY := v.maxOffsetY()
	v.mu.RUnlock()
	return v.ScrollTo(percent * maxY)
}
