// Package config loads reqpad settings.
//
// Settings are resolved from four sources, later ones overriding earlier:
//
//  1. Built-in defaults (Default)
//  2. A config file, reqpad.toml or reqpad.yaml
//  3. REQPAD_ environment variables
//  4. Command line flags, applied by the caller
//
// Sources are read into maps by the loader package, merged, and decoded into
// a Config. Validate checks the result before it is handed to the editing
// components.
//
// # Basic Usage
//
//	cfg, err := config.Load("reqpad.toml")
//	if err != nil {
//	    return err
//	}
//	view := editor.New(cfg.Editor(logger), measurer, text)
//
// # Live Reload
//
// The watcher sub-package calls back whenever the config file changes so the
// caller can Load it again.
package config
