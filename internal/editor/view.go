package editor

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/reqpad/internal/engine/history"
	"github.com/dshills/reqpad/internal/logging"
	"github.com/dshills/reqpad/internal/renderer/gutter"
	"github.com/dshills/reqpad/internal/renderer/highlight"
	"github.com/dshills/reqpad/internal/renderer/layout"
	"github.com/dshills/reqpad/internal/renderer/viewport"
)

// Defaults for the body editor.
const (
	DefaultDebounce      = 500 * time.Millisecond
	DefaultFontSize      = 14.0
	DefaultPadding       = 5.0
	DefaultMaxFormatSize = 1000 * 1024
)

// LayoutConfig holds the geometry settings of a view.
type LayoutConfig struct {
	FontSize         float64
	LineHeightFactor float64
	Padding          float64
	PaddingRight     float64
	WrapMode         layout.WrapMode
	WideCells        bool
}

// SearchConfig holds find settings.
type SearchConfig struct {
	CaseSensitive bool
}

// Config configures a View.
type Config struct {
	History   history.Config
	Highlight highlight.Config
	Layout    LayoutConfig
	Gutter    gutter.Config
	Search    SearchConfig

	// Language is the body language. Empty means detect from ContentType
	// and the initial text.
	Language    string
	ContentType string

	// MaxFormatSize is the largest body FormatJSON will touch, in bytes.
	MaxFormatSize int

	Logger *slog.Logger
}

// DefaultConfig returns the body editor configuration.
func DefaultConfig() Config {
	return Config{
		History: history.Config{
			Debounce:   DefaultDebounce,
			MaxEntries: history.DefaultMaxEntries,
		},
		Highlight: highlight.DefaultConfig(),
		Layout: LayoutConfig{
			FontSize:         DefaultFontSize,
			LineHeightFactor: layout.DefaultLineHeightFactor,
			Padding:          DefaultPadding,
			PaddingRight:     DefaultPadding,
			WrapMode:         layout.WrapGlyph,
		},
		Gutter:        gutter.DefaultConfig(),
		Search:        SearchConfig{CaseSensitive: true},
		MaxFormatSize: DefaultMaxFormatSize,
	}
}

// View is a multi-line editor view.
type View struct {
	id  uuid.UUID
	cfg Config
	log *slog.Logger

	buf     *buffer
	version uint64
	cursor  int

	hist   *history.Store[string]
	tok    *highlight.Tokenizer
	body   *highlight.BodyTokenizer
	cache  *layout.Cache
	gutter *gutter.Gutter
	vp     *viewport.Viewport

	segs        []highlight.Segment
	segsVersion uint64
	segsValid   bool
}

// New creates a view holding text. The text is the history baseline.
func New(cfg Config, measurer layout.Measurer, text string) *View {
	id := uuid.New()
	log := logging.OrDiscard(cfg.Logger).With("view", id.String())

	if cfg.History.Logger == nil {
		cfg.History.Logger = log
	}
	if cfg.Highlight.Logger == nil {
		cfg.Highlight.Logger = log
	}
	if cfg.MaxFormatSize <= 0 {
		cfg.MaxFormatSize = DefaultMaxFormatSize
	}
	if cfg.Layout.FontSize <= 0 {
		cfg.Layout.FontSize = DefaultFontSize
	}

	lang := cfg.Language
	if lang == "" {
		lang = highlight.DetectLanguage(cfg.ContentType, text)
	}

	v := &View{
		id:   id,
		cfg:  cfg,
		log:  log,
		buf:  newBuffer(text),
		hist: history.NewText(cfg.History),
		tok:  highlight.NewTokenizer(cfg.Highlight),
	}
	v.body = highlight.NewBodyTokenizer(lang, v.tok, log)
	v.cache = layout.NewCache(
		layout.NewEngine(cfg.Layout.WrapMode, cfg.Layout.WideCells),
		measurer,
		layout.CacheConfig{FontSize: cfg.Layout.FontSize, LineHeightFactor: cfg.Layout.LineHeightFactor},
	)
	v.gutter = gutter.New(cfg.Gutter, v.cache.Metrics().CharWidth)
	v.gutter.SetLineCount(len(v.buf.lines))
	v.vp = viewport.New(0, 0)
	v.hist.Reset(text)

	log.Debug("editor view created", "lang", lang, "lines", len(v.buf.lines))
	return v
}

// ID returns the view's unique id.
func (v *View) ID() uuid.UUID {
	return v.id
}

// Text returns the full text.
func (v *View) Text() string {
	return v.buf.text
}

// Lines returns the logical lines without their endings. The slice must not
// be modified.
func (v *View) Lines() []string {
	return v.buf.lines
}

// LineCount returns the number of logical lines. It is at least 1.
func (v *View) LineCount() int {
	return len(v.buf.lines)
}

// Version returns the content version. It changes exactly when the text
// changes.
func (v *View) Version() uint64 {
	return v.version
}

// Language returns the body language used for highlighting.
func (v *View) Language() string {
	return v.body.Language()
}

// History returns the undo store.
func (v *View) History() *history.Store[string] {
	return v.hist
}

// Cache returns the layout cache.
func (v *View) Cache() *layout.Cache {
	return v.cache
}

// Viewport returns the viewport.
func (v *View) Viewport() *viewport.Viewport {
	return v.vp
}

// replace swaps in text without touching history. It returns false if the
// text is unchanged.
func (v *View) replace(text string) bool {
	if text == v.buf.text {
		return false
	}
	v.buf = newBuffer(text)
	v.version++
	if v.cursor > v.buf.total {
		v.cursor = v.buf.total
	}
	if v.gutter.SetLineCount(len(v.buf.lines)) {
		v.log.Debug("gutter resized", "lines", len(v.buf.lines), "width", v.gutter.Width())
	}
	return true
}

// SetText is the edit path: it replaces the text and records it in history.
func (v *View) SetText(text string) {
	if v.replace(text) {
		v.hist.Push(text)
	}
}

// Load replaces the text and resets history to it, for example when a saved
// request or a new response is shown.
func (v *View) Load(text string) {
	v.replace(text)
	v.cursor = 0
	v.hist.Reset(text)
	v.vp.ScrollTo(0)
}

// Undo restores the previous checkpoint. It returns false if there was
// nothing to undo.
func (v *View) Undo() bool {
	text, err := v.hist.Undo()
	if err != nil {
		return false
	}
	v.replace(text)
	return true
}

// Redo re-applies the last undone checkpoint. It returns false if there was
// nothing to redo.
func (v *View) Redo() bool {
	text, err := v.hist.Redo()
	if err != nil {
		return false
	}
	v.replace(text)
	return true
}

// Cursor returns the cursor offset.
func (v *View) Cursor() int {
	return v.cursor
}

// SetCursor moves the cursor, clamped to the text, and marks its line as
// current in the gutter.
func (v *View) SetCursor(off int) {
	if off < 0 {
		off = 0
	}
	if off > v.buf.total {
		off = v.buf.total
	}
	v.cursor = off
	v.gutter.SetCurrentLine(v.buf.position(off).Line)
}

// Position converts a rune offset to a line and column.
func (v *View) Position(off int) Position {
	return v.buf.position(off)
}

// Offset converts a line and column to a rune offset.
func (v *View) Offset(p Position) int {
	return v.buf.offset(p)
}

// Segments returns the highlight segments for the whole text, recomputed
// only when the version changes.
func (v *View) Segments() []highlight.Segment {
	if v.segsValid && v.segsVersion == v.version {
		return v.segs
	}
	v.segs = v.body.Tokenize(v.buf.text)
	v.segsVersion = v.version
	v.segsValid = true
	return v.segs
}

// LineSegments returns the segments of each line with offsets relative to
// the start of the line. Line endings are dropped.
func (v *View) LineSegments() [][]highlight.Segment {
	out := make([][]highlight.Segment, len(v.buf.lines))
	line := 0
	lineStart := 0
	for _, seg := range v.Segments() {
		runes := []rune(seg.Text)
		pos := seg.Start
		for len(runes) > 0 && line < len(v.buf.lines) {
			lineEnd := lineStart + v.buf.lens[line]
			next := lineEnd + v.buf.endings[line]

			if pos < lineEnd {
				n := min(lineEnd-pos, len(runes))
				out[line] = append(out[line], highlight.Segment{
					Type:  seg.Type,
					Text:  string(runes[:n]),
					Start: pos - lineStart,
					End:   pos - lineStart + n,
				})
				runes = runes[n:]
				pos += n
				continue
			}

			// Skip the part of the segment inside the line ending.
			n := min(next-pos, len(runes))
			runes = runes[n:]
			pos += n
			if pos >= next {
				line++
				lineStart = next
			}
		}
	}
	return out
}
