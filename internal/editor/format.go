package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/dshills/reqpad/internal/renderer/highlight"
)

// Errors returned by FormatJSON.
var (
	ErrInvalidJSON = errors.New("body is not valid JSON")
	ErrTooLarge    = errors.New("body too large to format")
)

var prettyOptions = &pretty.Options{
	Width:  80,
	Prefix: "",
	Indent: "  ",
}

// PrettyJSON returns body pretty-printed with two-space indentation.
func PrettyJSON(body string, maxSize int) (string, error) {
	if maxSize > 0 && len(body) > maxSize {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, len(body))
	}
	if !gjson.Valid(body) {
		return "", ErrInvalidJSON
	}
	out := pretty.PrettyOptions([]byte(body), prettyOptions)
	return strings.TrimRight(string(out), "\n"), nil
}

// FormatBody formats a response body for display. JSON bodies up to maxSize
// are pretty-printed; anything else is returned unchanged.
func FormatBody(body, lang string, maxSize int) string {
	if lang != highlight.LangJSON {
		return body
	}
	out, err := PrettyJSON(body, maxSize)
	if err != nil {
		return body
	}
	return out
}

// FormatJSON pretty-prints the text as one undo step. The text is left
// untouched and an error returned if it is not valid JSON or is larger
// than the configured limit.
func (v *View) FormatJSON() error {
	out, err := PrettyJSON(v.buf.text, v.cfg.MaxFormatSize)
	if err != nil {
		v.log.Debug("format skipped", "err", err)
		return err
	}
	return v.hist.Transaction("format", func() error {
		v.SetText(out)
		return nil
	})
}
