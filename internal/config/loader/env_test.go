package loader

import "testing"

func newTestEnvLoader(env ...string) *EnvLoader {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := newTestEnvLoader(
		"REQPAD_LAYOUT_FONT_SIZE=16",
		"REQPAD_HISTORY_DEBOUNCE=250ms",
		"REQPAD_HIGHLIGHT_ENABLED=false",
		"REQPAD_LAYOUT_LINE_HEIGHT_FACTOR=1.5",
		"REQPAD_LOG=debug",
		"REQPAD_NOSECTION=1",
		"HOME=/root",
	)

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	layout := config["layout"].(map[string]any)
	if layout["font_size"] != int64(16) {
		t.Errorf("layout.font_size = %v (%T), want 16", layout["font_size"], layout["font_size"])
	}
	if layout["line_height_factor"] != 1.5 {
		t.Errorf("layout.line_height_factor = %v, want 1.5", layout["line_height_factor"])
	}
	if got := config["history"].(map[string]any)["debounce"]; got != "250ms" {
		t.Errorf("history.debounce = %v, want 250ms", got)
	}
	if got := config["highlight"].(map[string]any)["enabled"]; got != false {
		t.Errorf("highlight.enabled = %v, want false", got)
	}
	if got := config["log"].(map[string]any)["level"]; got != "debug" {
		t.Errorf("log.level = %v, want debug", got)
	}
	if _, ok := config["nosection"]; ok {
		t.Error("variable without a key should be ignored")
	}
	if len(config) != 4 {
		t.Errorf("len(config) = %d, want 4 sections: %v", len(config), config)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := newTestEnvLoader("REQPAD_FONT=18")
	l.AddMapping("REQPAD_FONT", "layout.font_size")

	config, _ := l.Load()
	if got := config["layout"].(map[string]any)["font_size"]; got != int64(18) {
		t.Errorf("layout.font_size = %v, want 18", got)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"OFF", false},
		{"42", int64(42)},
		{"0", int64(0)},
		{"1.25", 1.25},
		{"500ms", "500ms"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}
