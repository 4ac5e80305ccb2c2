// Package replay runs timed edit scripts through the undo history.
//
// A script is YAML:
//
//	debounce: 500ms
//	initial: ""
//	steps:
//	  - {at: 0s, text: "a"}
//	  - {at: 100ms, text: "ab"}
//	  - {at: 600ms, text: "abc"}
//	  - {at: 700ms, op: undo}
//
// Each step runs at its offset from the start of the script on a simulated
// clock, so debounce behavior is reproducible.
package replay

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/reqpad/internal/engine/history"
)

// Operations a step can perform.
const (
	OpPush   = "push"
	OpUndo   = "undo"
	OpRedo   = "redo"
	OpSeal   = "seal"
	OpBegin  = "begin"
	OpEnd    = "end"
	OpCancel = "cancel"
)

// ErrBadScript is wrapped by every script validation error.
var ErrBadScript = errors.New("invalid replay script")

// Step is one scripted action.
type Step struct {
	At   string `yaml:"at"`
	Op   string `yaml:"op"`
	Text string `yaml:"text"`
	Name string `yaml:"name"`

	at time.Duration
}

// Script is a parsed edit script.
type Script struct {
	Debounce   string `yaml:"debounce"`
	MaxEntries int    `yaml:"max_entries"`
	Initial    string `yaml:"initial"`
	Steps      []Step `yaml:"steps"`

	debounce time.Duration
}

// Result is the history state after one step.
type Result struct {
	At      time.Duration
	Op      string
	Value   string
	Undo    int
	Redo    int
	Changed bool
}

// Parse reads and validates a script.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty script", ErrBadScript)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadScript, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	s.debounce = history.DefaultDebounce
	if s.Debounce != "" {
		d, err := time.ParseDuration(s.Debounce)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: debounce %q", ErrBadScript, s.Debounce)
		}
		s.debounce = d
	}
	if s.MaxEntries < 0 {
		return fmt.Errorf("%w: max_entries %d", ErrBadScript, s.MaxEntries)
	}

	var last time.Duration
	for i := range s.Steps {
		st := &s.Steps[i]
		if st.Op == "" {
			st.Op = OpPush
		}
		switch st.Op {
		case OpPush, OpUndo, OpRedo, OpSeal, OpBegin, OpEnd, OpCancel:
		default:
			return fmt.Errorf("%w: step %d: unknown op %q", ErrBadScript, i+1, st.Op)
		}
		if st.At != "" {
			d, err := time.ParseDuration(st.At)
			if err != nil {
				return fmt.Errorf("%w: step %d: at %q", ErrBadScript, i+1, st.At)
			}
			st.at = d
		} else {
			st.at = last
		}
		if st.at < last {
			return fmt.Errorf("%w: step %d goes back in time", ErrBadScript, i+1)
		}
		last = st.at
	}
	return nil
}

// clock is the simulated time source.
type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

// Run executes the script against a fresh text history and returns the state
// after every step.
func (s *Script) Run(logger *slog.Logger) []Result {
	start := time.Unix(0, 0)
	c := &clock{now: start}
	h := history.NewText(history.Config{
		Debounce:   s.debounce,
		MaxEntries: s.MaxEntries,
		Now:        c.Now,
		Logger:     logger,
	})
	h.Reset(s.Initial)

	results := make([]Result, 0, len(s.Steps))
	for _, st := range s.Steps {
		c.now = start.Add(st.at)
		before, _ := h.Current()

		switch st.Op {
		case OpPush:
			h.Push(st.Text)
		case OpUndo:
			_, _ = h.Undo()
		case OpRedo:
			_, _ = h.Redo()
		case OpSeal:
			h.Seal()
		case OpBegin:
			h.BeginGroup(st.Name)
		case OpEnd:
			h.EndGroup()
		case OpCancel:
			h.CancelGroup()
		}

		cur, _ := h.Current()
		results = append(results, Result{
			At:      st.at,
			Op:      st.Op,
			Value:   cur,
			Undo:    h.UndoCount(),
			Redo:    h.RedoCount(),
			Changed: cur != before,
		})
	}
	return results
}
