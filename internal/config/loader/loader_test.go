package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

// memFS is an in-memory file system for testing.
type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"reqpad.toml", "*loader.TOMLLoader", false},
		{"reqpad.YAML", "*loader.YAMLLoader", false},
		{"reqpad.yml", "*loader.YAMLLoader", false},
		{"reqpad.json", "", true},
	}
	for _, tt := range tests {
		l, err := ForPath(memFS{}, tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		switch l.(type) {
		case *TOMLLoader:
			if tt.want != "*loader.TOMLLoader" {
				t.Errorf("ForPath(%q) = TOML loader, want %s", tt.path, tt.want)
			}
		case *YAMLLoader:
			if tt.want != "*loader.YAMLLoader" {
				t.Errorf("ForPath(%q) = YAML loader, want %s", tt.path, tt.want)
			}
		}
	}
}

func TestTOMLLoader_Load(t *testing.T) {
	files := memFS{"/reqpad.toml": `
[history]
debounce = "250ms"
max_entries = 200

[layout]
font_size = 16
wrap_mode = "glyph"
`}

	config, err := NewTOMLLoaderWithFS(files, "/reqpad.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	history, ok := config["history"].(map[string]any)
	if !ok {
		t.Fatalf("history section missing: %v", config)
	}
	if history["debounce"] != "250ms" {
		t.Errorf("history.debounce = %v, want 250ms", history["debounce"])
	}
	if history["max_entries"] != int64(200) {
		t.Errorf("history.max_entries = %v (%T), want 200", history["max_entries"], history["max_entries"])
	}

	layout := config["layout"].(map[string]any)
	if layout["wrap_mode"] != "glyph" {
		t.Errorf("layout.wrap_mode = %v, want glyph", layout["wrap_mode"])
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(memFS{}, "/nope.toml").Load()
	if err != nil {
		t.Errorf("Load() error = %v, want nil for a missing file", err)
	}
	if config != nil {
		t.Errorf("Load() = %v, want nil", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	files := memFS{"/bad.toml": "[history]\ndebounce = \n"}

	_, err := NewTOMLLoaderWithFS(files, "/bad.toml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("ParseError.Path = %q, want /bad.toml", pe.Path)
	}
	if pe.Line != 2 {
		t.Errorf("ParseError.Line = %d, want 2", pe.Line)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	files := memFS{"/reqpad.yaml": `
highlight:
  enabled: false
  variable_pattern: '\$\{[^}]+\}'
search:
  case_sensitive: false
`}

	config, err := NewYAMLLoaderWithFS(files, "/reqpad.yaml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	hl, ok := config["highlight"].(map[string]any)
	if !ok {
		t.Fatalf("highlight section missing: %v", config)
	}
	if hl["enabled"] != false {
		t.Errorf("highlight.enabled = %v, want false", hl["enabled"])
	}
	if hl["variable_pattern"] != `\$\{[^}]+\}` {
		t.Errorf("highlight.variable_pattern = %v", hl["variable_pattern"])
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	_, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("a: b\n  c: [\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("LoadFromReader() error = %v, want *ParseError", err)
	}
	if pe.Path != "<reader>" {
		t.Errorf("ParseError.Path = %q, want <reader>", pe.Path)
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a", Message: "bad"}, "parse error in a: bad"},
		{&ParseError{Path: "a", Line: 3, Message: "bad"}, "parse error in a at line 3: bad"},
		{&ParseError{Path: "a", Line: 3, Column: 4, Message: "bad"}, "parse error in a at line 3, column 4: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"history": map[string]any{"debounce": "500ms", "max_entries": 100},
		"log":     map[string]any{"level": "info"},
	}
	src := map[string]any{
		"history": map[string]any{"debounce": "1s"},
		"log":     "off",
	}

	got := DeepMerge(Clone(dst), src)

	history := got["history"].(map[string]any)
	if history["debounce"] != "1s" || history["max_entries"] != 100 {
		t.Errorf("history = %v, want debounce overridden and max_entries kept", history)
	}
	if got["log"] != "off" {
		t.Errorf("log = %v, want scalar to replace map", got["log"])
	}
	if dst["history"].(map[string]any)["debounce"] != "500ms" {
		t.Error("DeepMerge on a clone modified the original")
	}
}
