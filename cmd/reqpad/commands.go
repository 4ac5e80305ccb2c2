package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/reqpad/internal/editor"
	"github.com/dshills/reqpad/internal/renderer/highlight"
	"github.com/dshills/reqpad/internal/renderer/layout"
	"github.com/dshills/reqpad/internal/replay"
)

// Flags for tokenize
var (
	tokLang        string
	tokContentType string
	tokPattern     string
	tokNoVars      bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Print the highlight segments of a body",
	Long: `Print one highlight segment per line as: start, end, type, text.

Offsets are rune offsets. Without --lang the body language is detected from
--content-type and the body itself.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		hc := appConfig.HighlightConfig(logger)
		if tokPattern != "" {
			if err := highlight.ValidatePattern(tokPattern); err != nil {
				return err
			}
			hc.Pattern = tokPattern
		}
		if tokNoVars {
			hc.Enabled = false
		}

		lang := tokLang
		if lang == "" {
			lang = highlight.DetectLanguage(tokContentType, text)
		}
		body := highlight.NewBodyTokenizer(lang, highlight.NewTokenizer(hc), logger)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', 0)
		for _, seg := range body.Tokenize(text) {
			fmt.Fprintf(w, "%d\t%d\t%s\t%q\n", seg.Start, seg.End, seg.Type, seg.Text)
		}
		return w.Flush()
	},
}

// Flags for layout
var (
	layWidth     float64
	layHeight    float64
	layCharWidth float64
	layWrap      string
)

var layoutCmd = &cobra.Command{
	Use:   "layout [file]",
	Short: "Print the visual rows of a text at a given width",
	Long: `Lay out a text as the body editor would and print the gutter width, the
content width and every visual row: line, start, end, y and whether the row is
the first of its line. Glyphs are measured with a fixed --char-width.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		ec := appConfig.Editor(logger)
		if layWrap != "" {
			mode, err := layout.ParseWrapMode(layWrap)
			if err != nil {
				return err
			}
			ec.Layout.WrapMode = mode
		}
		v := editor.New(ec, layout.FixedMeasurer(layCharWidth), text)
		f := v.Layout(layWidth, layHeight)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "char width:    %g\n", f.Metrics.CharWidth)
		fmt.Fprintf(out, "line height:   %g\n", f.Metrics.LineHeight)
		fmt.Fprintf(out, "gutter width:  %g\n", f.GutterWidth)
		fmt.Fprintf(out, "content width: %g\n", f.ContentWidth)
		fmt.Fprintf(out, "content height: %g\n\n", f.ContentHeight)

		w := tabwriter.NewWriter(out, 0, 4, 1, ' ', 0)
		fmt.Fprintln(w, "LINE\tSTART\tEND\tY\tFIRST")
		for _, r := range f.Rows {
			fmt.Fprintf(w, "%d\t%d\t%d\t%g\t%v\n", r.Line+1, r.Start, r.End, r.Y, r.First)
		}
		return w.Flush()
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a timed edit script through the undo history",
	Long: `Replay a YAML edit script on a simulated clock and print the history state
after each step. Steps push text or run undo, redo, seal, begin, end and cancel.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		script, err := replay.Parse(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', 0)
		fmt.Fprintln(w, "AT\tOP\tUNDO\tREDO\tVALUE")
		for _, r := range script.Run(logger) {
			fmt.Fprintf(w, "%v\t%s\t%d\t%d\t%q\n", r.At, r.Op, r.Undo, r.Redo, r.Value)
		}
		return w.Flush()
	},
}

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Pretty-print a JSON body",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		out, err := editor.PrettyJSON(text, appConfig.Format.MaxSize)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	tf := tokenizeCmd.Flags()
	tf.StringVarP(&tokLang, "lang", "l", "", "Body language: text, json, xml, html, yaml, graphql")
	tf.StringVar(&tokContentType, "content-type", "", "Content-Type used to detect the language")
	tf.StringVarP(&tokPattern, "pattern", "p", "", "Variable pattern (overrides config)")
	tf.BoolVar(&tokNoVars, "no-vars", false, "Disable variable highlighting")

	lf := layoutCmd.Flags()
	lf.Float64VarP(&layWidth, "width", "w", 800, "Widget width in pixels")
	lf.Float64Var(&layHeight, "height", 600, "Widget height in pixels")
	lf.Float64Var(&layCharWidth, "char-width", 8, "Width of one glyph in pixels")
	lf.StringVar(&layWrap, "wrap", "", "Wrap mode: glyph or word (overrides config)")
}
