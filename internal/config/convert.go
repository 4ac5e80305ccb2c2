package config

import (
	"log/slog"

	"github.com/dshills/reqpad/internal/editor"
	"github.com/dshills/reqpad/internal/engine/history"
	"github.com/dshills/reqpad/internal/engine/textinput"
	"github.com/dshills/reqpad/internal/renderer/gutter"
	"github.com/dshills/reqpad/internal/renderer/highlight"
	"github.com/dshills/reqpad/internal/renderer/layout"
)

// HighlightConfig returns the tokenizer settings.
func (c Config) HighlightConfig(logger *slog.Logger) highlight.Config {
	return highlight.Config{
		Enabled:      c.Highlight.Enabled,
		Pattern:      c.Highlight.VariablePattern,
		MatchTimeout: c.Highlight.MatchTimeout.Std(),
		Logger:       logger,
	}
}

// Editor returns the body editor settings. Call Validate first; invalid
// enum values fall back to their defaults here.
func (c Config) Editor(logger *slog.Logger) editor.Config {
	mode, _ := layout.ParseWrapMode(c.Layout.WrapMode)
	numbers, _ := gutter.ParseLineNumberMode(c.Gutter.LineNumbers)

	return editor.Config{
		History: history.Config{
			Debounce:   c.History.Debounce.Std(),
			MaxEntries: c.History.MaxEntries,
		},
		Highlight: c.HighlightConfig(logger),
		Layout: editor.LayoutConfig{
			FontSize:         c.Layout.FontSize,
			LineHeightFactor: c.Layout.LineHeightFactor,
			Padding:          c.Layout.Padding,
			PaddingRight:     c.Layout.PaddingRight,
			WrapMode:         mode,
			WideCells:        c.Layout.WideCells,
		},
		Gutter: gutter.Config{
			Padding: c.Gutter.Padding,
			Mode:    numbers,
		},
		Search:        editor.SearchConfig{CaseSensitive: c.Search.CaseSensitive},
		MaxFormatSize: c.Format.MaxSize,
		Logger:        logger,
	}
}

// Input returns the single-line input settings.
func (c Config) Input(logger *slog.Logger) textinput.Config {
	return textinput.Config{
		History: history.Config{
			Debounce:   c.History.InputDebounce.Std(),
			MaxEntries: c.History.InputMaxEntries,
		},
		Highlight: c.HighlightConfig(logger),
		Logger:    logger,
	}
}
