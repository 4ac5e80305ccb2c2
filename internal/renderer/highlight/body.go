package highlight

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/tidwall/gjson"

	"github.com/dshills/reqpad/internal/logging"
)

// Body languages understood by BodyTokenizer.
const (
	LangText    = "text"
	LangJSON    = "json"
	LangXML     = "xml"
	LangHTML    = "html"
	LangYAML    = "yaml"
	LangGraphQL = "graphql"
)

// DetectLanguage picks a body language from a Content-Type header value,
// falling back to sniffing the body itself.
func DetectLanguage(contentType, body string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return LangJSON
	case strings.Contains(ct, "html"):
		return LangHTML
	case strings.Contains(ct, "xml"):
		return LangXML
	case strings.Contains(ct, "yaml"):
		return LangYAML
	case strings.Contains(ct, "graphql"):
		return LangGraphQL
	}

	trimmed := strings.TrimSpace(body)
	switch {
	case trimmed == "":
		return LangText
	case (trimmed[0] == '{' || trimmed[0] == '[') && gjson.Valid(trimmed):
		return LangJSON
	case strings.HasPrefix(trimmed, "<!DOCTYPE html") || strings.HasPrefix(trimmed, "<html"):
		return LangHTML
	case trimmed[0] == '<':
		return LangXML
	}
	return LangText
}

// BodyTokenizer classifies request and response bodies into String, Number
// and Keyword segments, then overlays Variable segments from a Tokenizer.
type BodyTokenizer struct {
	lang  string
	lexer chroma.Lexer
	vars  *Tokenizer
	log   *slog.Logger
}

// NewBodyTokenizer creates a body tokenizer for lang. An unknown language or
// LangText yields plain Normal output with variable overlay only. vars may be
// nil to skip variable highlighting.
func NewBodyTokenizer(lang string, vars *Tokenizer, logger *slog.Logger) *BodyTokenizer {
	b := &BodyTokenizer{
		lang: lang,
		vars: vars,
		log:  logging.OrDiscard(logger),
	}
	if lang != "" && lang != LangText {
		if l := lexers.Get(lang); l != nil {
			b.lexer = chroma.Coalesce(l)
		} else {
			b.log.Warn("no lexer for body language", "lang", lang)
		}
	}
	return b
}

// Language returns the body language.
func (b *BodyTokenizer) Language() string {
	return b.lang
}

// Tokenize classifies text. The result covers text exactly.
func (b *BodyTokenizer) Tokenize(text string) []Segment {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return whole("", 0)
	}

	classes := make([]SegmentType, n)
	if b.lexer != nil {
		b.classify(text, classes)
	}
	if b.vars != nil && b.vars.Enabled() {
		for _, seg := range b.vars.split(text) {
			if seg.Type != Variable {
				continue
			}
			for i := seg.Start; i < seg.End; i++ {
				classes[i] = Variable
			}
		}
	}
	return encode(text, classes)
}

// classify fills classes from the lexer's token stream. Lexer failures leave
// the affected runes Normal.
func (b *BodyTokenizer) classify(text string, classes []SegmentType) {
	it, err := b.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		b.log.Warn("body lexer failed", "lang", b.lang, "err", err)
		return
	}

	pos := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		class := classOf(tok.Type)
		for range tok.Value {
			if pos >= len(classes) {
				return
			}
			classes[pos] = class
			pos++
		}
	}
}

// classOf maps a chroma token type onto a segment type.
func classOf(t chroma.TokenType) SegmentType {
	switch {
	case t.InCategory(chroma.LiteralString):
		return String
	case t.InCategory(chroma.LiteralNumber):
		return Number
	case t.InCategory(chroma.Keyword):
		return Keyword
	case t == chroma.NameTag, t == chroma.NameAttribute:
		return Keyword
	}
	return Normal
}
