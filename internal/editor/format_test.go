package editor

import (
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/reqpad/internal/renderer/highlight"
)

func TestFormatJSON(t *testing.T) {
	const raw = `{"name":"reqpad","tags":["a","b"]}`
	v, _ := newTestView(t, raw)

	if err := v.FormatJSON(); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}
	got := v.Text()
	if !strings.HasPrefix(got, "{\n  \"name\": \"reqpad\",") {
		t.Errorf("FormatJSON() text = %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("formatted text should not end in a newline")
	}
	if !gjson.Valid(got) {
		t.Error("formatted text is not valid JSON")
	}

	if !v.Undo() {
		t.Fatal("Undo() = false, want true")
	}
	if v.Text() != raw {
		t.Errorf("Text() after undo = %q, want %q", v.Text(), raw)
	}
}

func TestFormatJSONErrors(t *testing.T) {
	v, _ := newTestView(t, `{"a":`)

	if err := v.FormatJSON(); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("FormatJSON() error = %v, want ErrInvalidJSON", err)
	}
	if v.Version() != 0 || v.History().CanUndo() {
		t.Error("failed format should leave the text and history alone")
	}

	v.cfg.MaxFormatSize = 4
	v.Load(`{"a":1}`)
	if err := v.FormatJSON(); !errors.Is(err, ErrTooLarge) {
		t.Errorf("FormatJSON() error = %v, want ErrTooLarge", err)
	}
}

func TestFormatBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		lang string
		want string
	}{
		{"json", `{"a":1}`, highlight.LangJSON, "{\n  \"a\": 1\n}"},
		{"invalid json", `{"a"`, highlight.LangJSON, `{"a"`},
		{"not json", `<a/>`, highlight.LangXML, `<a/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBody(tt.body, tt.lang, 0); got != tt.want {
				t.Errorf("FormatBody() = %q, want %q", got, tt.want)
			}
		})
	}
}
