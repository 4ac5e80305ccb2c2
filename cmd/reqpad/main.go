// Package main is the entry point for the reqpad command.
//
// reqpad exposes the editing core of the request editor on the command line:
// it tokenizes bodies, prints visual layouts, replays edit scripts through
// the undo history, formats JSON and previews a body in the terminal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/reqpad/internal/config"
	"github.com/dshills/reqpad/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global flags.
var (
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// Resolved by the root command before any subcommand runs.
var (
	appConfig config.Config
	logger    = logging.Discard()
	closeLog  = func() error { return nil }
)

func main() {
	os.Exit(run())
}

func run() int {
	defer func() { _ = closeLog() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:   "reqpad",
	Short: "Text editing core of a desktop HTTP client",
	Long: `reqpad drives the request editor's text core from the command line.

Examples:
  reqpad tokenize body.json            # Print highlight segments
  reqpad layout --width 400 body.json  # Print visual rows and gutter width
  reqpad replay edits.yaml             # Replay timed edits through undo history
  reqpad format response.json          # Pretty-print JSON
  reqpad preview body.json             # Browse a body in the terminal`,
	Version:           fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "Path to configuration file (reqpad.toml or reqpad.yaml)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(tokenizeCmd, layoutCmd, replayCmd, formatCmd, previewCmd)
}

// setup loads the configuration, applies flag overrides and opens the log.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	// The preview owns the terminal; only log there when a file is given.
	if cmd == previewCmd && cfg.Log.File == "" {
		return nil
	}
	l, closer, err := logging.Open(logging.Options{
		Level:     cfg.Log.Level,
		File:      cfg.Log.File,
		AddSource: cfg.Log.AddSource,
	})
	if err != nil {
		return err
	}
	logger, closeLog = l, closer
	logger.Debug("config loaded", "path", flagConfig)
	return nil
}

// readInput returns the contents of the named file, or stdin for "-" or no
// argument.
func readInput(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return string(data), args[0], nil
}
