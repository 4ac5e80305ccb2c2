package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/reqpad/internal/config/loader"
)

// DefaultFiles are the config files looked up, in order, when no path is
// given.
var DefaultFiles = []string{"reqpad.toml", "reqpad.yaml", "reqpad.yml"}

// Options controls Load.
type Options struct {
	// Path is the config file. Empty means the first existing entry of
	// DefaultFiles, or none.
	Path string

	// EnvPrefix is the environment variable prefix. Empty means
	// loader.DefaultEnvPrefix; "-" disables environment overrides.
	EnvPrefix string

	// FS reads the config file. Nil means the OS file system.
	FS loader.FileSystem
}

// Load resolves the configuration from defaults, the file at path (if any)
// and the environment, then validates it.
func Load(path string) (Config, error) {
	return LoadWith(Options{Path: path})
}

// LoadWith is Load with explicit options.
func LoadWith(opts Options) (Config, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = loader.DefaultFS()
	}

	merged := map[string]any{}

	path := opts.Path
	if path == "" {
		path = findDefault(fsys)
	} else if _, err := fsys.ReadFile(path); errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
		return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return Config{}, err
		}
		file, err := l.Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", path, err)
		}
		merged = loader.DeepMerge(merged, file)
	}

	if opts.EnvPrefix != "-" {
		prefix := opts.EnvPrefix
		if prefix == "" {
			prefix = loader.DefaultEnvPrefix
		}
		env, err := loader.NewEnvLoader(prefix).Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromMap decodes a merged settings map over the defaults. Keys missing
// from m keep their default values.
func FromMap(m map[string]any) (Config, error) {
	cfg := Default()
	if len(m) == 0 {
		return cfg, nil
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return Config{}, fmt.Errorf("encoding settings: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding settings: %w", err)
	}
	return cfg, nil
}

func findDefault(fsys loader.FileSystem) string {
	for _, name := range DefaultFiles {
		if _, err := fsys.ReadFile(name); err == nil {
			return name
		}
	}
	return ""
}
