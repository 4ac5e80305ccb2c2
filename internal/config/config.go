package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/reqpad/internal/editor"
	"github.com/dshills/reqpad/internal/engine/history"
	"github.com/dshills/reqpad/internal/engine/textinput"
	"github.com/dshills/reqpad/internal/logging"
	"github.com/dshills/reqpad/internal/renderer/gutter"
	"github.com/dshills/reqpad/internal/renderer/highlight"
	"github.com/dshills/reqpad/internal/renderer/layout"
)

// Duration is a time.Duration read from strings such as "500ms". A bare
// integer is taken as milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// HistoryConfig holds undo settings of the body editor.
type HistoryConfig struct {
	// Debounce is the minimum gap between two undo checkpoints.
	Debounce Duration `toml:"debounce" yaml:"debounce"`

	// MaxEntries bounds the undo stack.
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`

	// InputDebounce is the grouping threshold of the single-line input.
	InputDebounce Duration `toml:"input_debounce" yaml:"input_debounce"`

	// InputMaxEntries bounds the single-line input's undo stack.
	InputMaxEntries int `toml:"input_max_entries" yaml:"input_max_entries"`
}

// HighlightConfig holds variable highlighting settings.
type HighlightConfig struct {
	Enabled         bool     `toml:"enabled" yaml:"enabled"`
	VariablePattern string   `toml:"variable_pattern" yaml:"variable_pattern"`
	MatchTimeout    Duration `toml:"match_timeout" yaml:"match_timeout"`
}

// LayoutConfig holds editor geometry settings.
type LayoutConfig struct {
	FontSize         float64 `toml:"font_size" yaml:"font_size"`
	LineHeightFactor float64 `toml:"line_height_factor" yaml:"line_height_factor"`
	Padding          float64 `toml:"padding" yaml:"padding"`
	PaddingRight     float64 `toml:"padding_right" yaml:"padding_right"`

	// WrapMode is "glyph" (default) or "word".
	WrapMode string `toml:"wrap_mode" yaml:"wrap_mode"`

	// WideCells counts East Asian wide characters as two cells.
	WideCells bool `toml:"wide_cells" yaml:"wide_cells"`
}

// GutterConfig holds line number settings.
type GutterConfig struct {
	Padding float64 `toml:"padding" yaml:"padding"`

	// LineNumbers is "absolute", "relative" or "hybrid".
	LineNumbers string `toml:"line_numbers" yaml:"line_numbers"`
}

// SearchConfig holds find settings.
type SearchConfig struct {
	CaseSensitive bool `toml:"case_sensitive" yaml:"case_sensitive"`
}

// FormatConfig holds body formatting settings.
type FormatConfig struct {
	// MaxSize is the largest body, in bytes, that is pretty-printed.
	MaxSize int `toml:"max_size" yaml:"max_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level     string `toml:"level" yaml:"level"`
	File      string `toml:"file" yaml:"file"`
	AddSource bool   `toml:"add_source" yaml:"add_source"`
}

// Config is the complete reqpad configuration.
type Config struct {
	History   HistoryConfig   `toml:"history" yaml:"history"`
	Highlight HighlightConfig `toml:"highlight" yaml:"highlight"`
	Layout    LayoutConfig    `toml:"layout" yaml:"layout"`
	Gutter    GutterConfig    `toml:"gutter" yaml:"gutter"`
	Search    SearchConfig    `toml:"search" yaml:"search"`
	Format    FormatConfig    `toml:"format" yaml:"format"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			Debounce:        Duration(editor.DefaultDebounce),
			MaxEntries:      history.DefaultMaxEntries,
			InputDebounce:   Duration(textinput.DefaultGroupingThreshold),
			InputMaxEntries: textinput.DefaultMaxHistory,
		},
		Highlight: HighlightConfig{
			Enabled:         true,
			VariablePattern: highlight.DefaultVariablePattern,
			MatchTimeout:    Duration(highlight.DefaultMatchTimeout),
		},
		Layout: LayoutConfig{
			FontSize:         editor.DefaultFontSize,
			LineHeightFactor: layout.DefaultLineHeightFactor,
			Padding:          editor.DefaultPadding,
			PaddingRight:     editor.DefaultPadding,
			WrapMode:         layout.WrapGlyph.String(),
		},
		Gutter: GutterConfig{
			Padding:     gutter.DefaultPadding,
			LineNumbers: gutter.LineNumberAbsolute.String(),
		},
		Search: SearchConfig{CaseSensitive: true},
		Format: FormatConfig{MaxSize: editor.DefaultMaxFormatSize},
		Log:    LogConfig{Level: "info"},
	}
}

// Validate checks every setting and returns all failures joined. Each
// failure is a *ValidationError, so errors.Is(err, ErrValidationFailed)
// holds for any non-nil result.
func (c Config) Validate() error {
	var errs []error
	fail := func(path, msg string, value any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code})
	}

	if c.History.Debounce < 0 {
		fail("history.debounce", "must not be negative", c.History.Debounce.Std(), ErrCodeOutOfRange)
	}
	if c.History.MaxEntries < 1 {
		fail("history.max_entries", "must be at least 1", c.History.MaxEntries, ErrCodeOutOfRange)
	}
	if c.History.InputDebounce < 0 {
		fail("history.input_debounce", "must not be negative", c.History.InputDebounce.Std(), ErrCodeOutOfRange)
	}
	if c.History.InputMaxEntries < 1 {
		fail("history.input_max_entries", "must be at least 1", c.History.InputMaxEntries, ErrCodeOutOfRange)
	}

	if err := highlight.ValidatePattern(c.Highlight.VariablePattern); err != nil {
		fail("highlight.variable_pattern", err.Error(), c.Highlight.VariablePattern, ErrCodePatternInvalid)
	}
	if c.Highlight.MatchTimeout <= 0 {
		fail("highlight.match_timeout", "must be positive", c.Highlight.MatchTimeout.Std(), ErrCodeOutOfRange)
	}

	if c.Layout.FontSize <= 0 {
		fail("layout.font_size", "must be positive", c.Layout.FontSize, ErrCodeOutOfRange)
	}
	if c.Layout.LineHeightFactor <= 0 {
		fail("layout.line_height_factor", "must be positive", c.Layout.LineHeightFactor, ErrCodeOutOfRange)
	}
	if c.Layout.Padding < 0 {
		fail("layout.padding", "must not be negative", c.Layout.Padding, ErrCodeOutOfRange)
	}
	if c.Layout.PaddingRight < 0 {
		fail("layout.padding_right", "must not be negative", c.Layout.PaddingRight, ErrCodeOutOfRange)
	}
	if _, err := layout.ParseWrapMode(c.Layout.WrapMode); err != nil {
		fail("layout.wrap_mode", "must be word or glyph", c.Layout.WrapMode, ErrCodeInvalidEnum)
	}

	if c.Gutter.Padding < 0 {
		fail("gutter.padding", "must not be negative", c.Gutter.Padding, ErrCodeOutOfRange)
	}
	if _, err := gutter.ParseLineNumberMode(c.Gutter.LineNumbers); err != nil {
		fail("gutter.line_numbers", "must be absolute, relative or hybrid", c.Gutter.LineNumbers, ErrCodeInvalidEnum)
	}

	if c.Format.MaxSize < 1 {
		fail("format.max_size", "must be at least 1", c.Format.MaxSize, ErrCodeOutOfRange)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		fail("log.level", "must be debug, info, warn or error", c.Log.Level, ErrCodeInvalidEnum)
	}

	return errors.Join(errs...)
}
