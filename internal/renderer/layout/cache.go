package layout

import (
	"math"
	"sync"
	"sync/atomic"
)

// WidthEpsilon is the content width change, in pixels, below which cached
// rows are reused.
const WidthEpsilon = 0.1

// DefaultLineHeightFactor scales the font size to the single row height.
const DefaultLineHeightFactor = 1.3

// MetricsGlyph is the representative glyph measured for the cell width.
const MetricsGlyph = '0'

// Measurer measures a glyph at a font size. Implementations wrap the real
// text renderer.
type Measurer interface {
	MeasureGlyph(r rune, fontSize float64) (width float64)
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(r rune, fontSize float64) float64

// MeasureGlyph calls f.
func (f MeasurerFunc) MeasureGlyph(r rune, fontSize float64) float64 {
	return f(r, fontSize)
}

// FixedMeasurer reports the same width for every glyph.
type FixedMeasurer float64

// MeasureGlyph returns the fixed width.
func (m FixedMeasurer) MeasureGlyph(rune, float64) float64 {
	return float64(m)
}

// Metrics are the measured cell dimensions.
type Metrics struct {
	CharWidth  float64
	LineHeight float64
}

// CacheConfig configures a Cache.
type CacheConfig struct {
	FontSize         float64
	LineHeightFactor float64
}

// Cache holds font metrics and the last computed row list for one view.
// The owning view passes a content version that it bumps on every edit.
type Cache struct {
	mu sync.Mutex

	engine   *Engine
	measurer Measurer
	cfg      CacheConfig

	metrics  Metrics
	measured bool

	rows        []VisualRow
	rowsValid   bool
	lastWidth   float64
	lastVersion uint64

	maxWidth      float64
	maxWidthValid bool
	maxVersion    uint64

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache creates a cache. A zero LineHeightFactor means
// DefaultLineHeightFactor.
func NewCache(engine *Engine, measurer Measurer, cfg CacheConfig) *Cache {
	if engine == nil {
		engine = defaultEngine
	}
	if cfg.LineHeightFactor <= 0 {
		cfg.LineHeightFactor = DefaultLineHeightFactor
	}
	return &Cache{
		engine:   engine,
		measurer: measurer,
		cfg:      cfg,
	}
}

// Engine returns the layout engine used by this cache.
func (c *Cache) Engine() *Engine {
	return c.engine
}

// Metrics returns the cell dimensions, measuring them on first use. A
// measurement of zero width is not cached so it is retried.
func (c *Cache) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metricsLocked()
}

func (c *Cache) metricsLocked() Metrics {
	if c.measured {
		return c.metrics
	}
	var w float64
	if c.measurer != nil {
		w = c.measurer.MeasureGlyph(MetricsGlyph, c.cfg.FontSize)
	}
	c.metrics = Metrics{
		CharWidth:  w,
		LineHeight: c.cfg.FontSize * c.cfg.LineHeightFactor,
	}
	c.measured = w > 0
	return c.metrics
}

// Rows returns the visual rows for lines at contentWidth. The cached list is
// reused while version is unchanged and contentWidth is within WidthEpsilon
// of the width it was computed for. The returned slice must not be modified.
func (c *Cache) Rows(lines []string, contentWidth float64, version uint64) []VisualRow {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rowsValid && c.lastVersion == version && math.Abs(c.lastWidth-contentWidth) <= WidthEpsilon {
		c.hits.Add(1)
		return c.rows
	}
	c.misses.Add(1)

	m := c.metricsLocked()
	c.rows = c.engine.ComputeVisualRows(lines, contentWidth, m.CharWidth, m.LineHeight)
	// Rows laid out without a measured width are not wrapped; recompute them
	// once measuring succeeds.
	c.rowsValid = c.measured
	c.lastWidth = contentWidth
	c.lastVersion = version
	return c.rows
}

// MaxContentWidth returns the width of the widest line, recomputed only when
// version changes.
func (c *Cache) MaxContentWidth(lines []string, version uint64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxWidthValid && c.maxVersion == version {
		c.hits.Add(1)
		return c.maxWidth
	}
	c.misses.Add(1)

	m := c.metricsLocked()
	c.maxWidth = c.engine.MaxContentWidth(lines, m.CharWidth)
	c.maxWidthValid = c.measured
	c.maxVersion = version
	return c.maxWidth
}

// Invalidate drops the cached rows and width. Metrics are kept.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = nil
	c.rowsValid = false
	c.maxWidthValid = false
}

// InvalidateMetrics forces the next call to measure the glyph again, for
// example after a font size change.
func (c *Cache) InvalidateMetrics(fontSize float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.FontSize = fontSize
	c.measured = false
	c.rows = nil
	c.rowsValid = false
	c.maxWidthValid = false
}

// SetEngine replaces the layout engine and invalidates the cache.
func (c *Cache) SetEngine(engine *Engine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine = engine
	c.rows = nil
	c.rowsValid = false
	c.maxWidthValid = false
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	size := len(c.rows)
	c.mu.Unlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Rows:    size,
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}

// ResetStats resets the cache statistics counters.
func (c *Cache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Rows    int     // Number of cached rows
	Hits    uint64  // Number of cache hits
	Misses  uint64  // Number of cache misses
	HitRate float64 // Hit rate (0.0 - 1.0)
}
