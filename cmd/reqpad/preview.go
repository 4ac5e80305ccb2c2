package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/reqpad/internal/config"
	"github.com/dshills/reqpad/internal/config/watcher"
	"github.com/dshills/reqpad/internal/editor"
	"github.com/dshills/reqpad/internal/renderer/layout"
	"github.com/dshills/reqpad/internal/renderer/preview"
)

// Flags for preview
var (
	prevFind        string
	prevContentType string
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Browse a body in the terminal",
	Long: `Show a body with line numbers, wrapping and highlighting.

Keys:
  Up/Down, PgUp/PgDn   move the cursor
  n / N                next / previous match of --find
  f                    format JSON
  u / Ctrl-R           undo / redo
  q, Esc               quit

The config file is watched and the view is rebuilt when it changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, name, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		if name == "" {
			name = "<stdin>"
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to create terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		defer screen.Fini()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		if path := configPath(); path != "" {
			go func() {
				err := watcher.Watch(ctx, path, func(watcher.Event) {
					_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
				}, watcher.WithLogger(logger))
				if err != nil {
					logger.Warn("config watch failed", "path", path, "err", err)
				}
			}()
		}

		s := &previewSession{
			screen: screen,
			name:   name,
			query:  prevFind,
		}
		s.rebuild(appConfig, text)
		return s.loop()
	},
}

func init() {
	pf := previewCmd.Flags()
	pf.StringVar(&prevFind, "find", "", "Search text for n / N")
	pf.StringVar(&prevContentType, "content-type", "", "Content-Type used to detect the language")
}

// configPath returns the config file to watch, if any.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	for _, name := range config.DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// terminalConfig maps the editor configuration onto terminal cells: one
// cell per glyph and one row per line, without pixel padding.
func terminalConfig(cfg config.Config) editor.Config {
	ec := cfg.Editor(logger)
	ec.ContentType = prevContentType
	ec.Layout.FontSize = 1
	ec.Layout.LineHeightFactor = 1
	ec.Layout.Padding = 0
	ec.Layout.PaddingRight = 0
	ec.Gutter.Padding = 0
	return ec
}

type previewSession struct {
	screen  tcell.Screen
	painter *preview.Painter
	view    *editor.View
	name    string

	query  string
	match  *editor.Match
	status string
	reveal bool
}

// rebuild creates the view from cfg, keeping text and cursor.
func (s *previewSession) rebuild(cfg config.Config, text string) {
	cursor := 0
	if s.view != nil {
		cursor = s.view.Cursor()
	}
	ec := terminalConfig(cfg)
	s.view = editor.New(ec, layout.FixedMeasurer(1), text)
	s.view.SetCursor(cursor)
	s.painter = preview.New(s.screen, preview.DefaultTheme(), ec.Layout.WideCells)
	s.reveal = true
}

func (s *previewSession) loop() error {
	for {
		s.draw()

		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventInterrupt:
			s.reload()
		case *tcell.EventKey:
			if s.handleKey(ev) {
				return nil
			}
		}
	}
}

func (s *previewSession) reload() {
	path := configPath()
	cfg, err := config.Load(path)
	if err != nil {
		s.status = "config: " + err.Error()
		logger.Warn("config reload failed", "path", path, "err", err)
		return
	}
	appConfig = cfg
	s.rebuild(cfg, s.view.Text())
	s.status = "config reloaded"
	logger.Info("config reloaded", "path", path)
}

// handleKey applies a key press. It returns true to quit.
func (s *previewSession) handleKey(ev *tcell.EventKey) bool {
	v := s.view
	_, h := s.screen.Size()
	page := max(h-2, 1)
	s.status = ""

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		s.moveLines(-1)
	case tcell.KeyDown:
		s.moveLines(1)
	case tcell.KeyPgUp:
		s.moveLines(-page)
	case tcell.KeyPgDn:
		s.moveLines(page)
	case tcell.KeyCtrlR:
		if !v.Redo() {
			s.status = "nothing to redo"
		}
		s.reveal = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'n':
			s.find(true)
		case 'N':
			s.find(false)
		case 'f':
			if err := v.FormatJSON(); err != nil {
				s.status = err.Error()
			}
			s.match = nil
		case 'u':
			if !v.Undo() {
				s.status = "nothing to undo"
			}
			s.match = nil
			s.reveal = true
		}
	}
	return false
}

func (s *previewSession) moveLines(n int) {
	p := s.view.Position(s.view.Cursor())
	p.Line = min(max(p.Line+n, 0), s.view.LineCount()-1)
	s.view.SetCursor(s.view.Offset(p))
	s.reveal = true
}

func (s *previewSession) find(forward bool) {
	if s.query == "" {
		s.status = "no --find query"
		return
	}
	from := s.view.Cursor()
	if s.match != nil && !forward {
		from = s.match.End
	}
	m, ok := s.view.Find(s.query, from, forward)
	if !ok {
		s.status = fmt.Sprintf("%q not found", s.query)
		s.match = nil
		return
	}
	s.match = &m
	s.view.SetCursor(m.Start)
	s.reveal = true
}

func (s *previewSession) draw() {
	w, h := s.screen.Size()
	if w <= 0 || h <= 1 {
		return
	}
	v := s.view
	f := v.Layout(float64(w), float64(h-1))
	if s.reveal {
		end := v.Cursor()
		if s.match != nil {
			end = s.match.End
		}
		if v.Reveal(f, v.Cursor(), end) {
			f = v.Layout(float64(w), float64(h-1))
		}
		s.reveal = false
	}

	var marks []editor.Rect
	if s.match != nil {
		marks = v.HighlightRects(f, s.match.Start, s.match.End)
	}
	s.painter.Paint(v, f, marks)
	s.drawStatus(w, h-1)
	s.screen.Show()
}

func (s *previewSession) drawStatus(w, y int) {
	v := s.view
	p := v.Position(v.Cursor())
	line := fmt.Sprintf(" %s  %d:%d  %s  undo %d", filepath.Base(s.name), p.Line+1, p.Column+1,
		v.Language(), v.History().UndoCount())
	if s.status != "" {
		line += "  " + s.status
	}

	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range line {
		if x >= w {
			break
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		s.screen.SetContent(x, y, ' ', nil, style)
	}
}
