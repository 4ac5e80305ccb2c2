package highlight

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/dshills/reqpad/internal/logging"
)

// DefaultVariablePattern matches {{name}} placeholders.
const DefaultVariablePattern = `\{\{[^}]+\}\}`

// DefaultMatchTimeout bounds a single pattern evaluation.
const DefaultMatchTimeout = 100 * time.Millisecond

// Config configures a Tokenizer.
type Config struct {
	// Enabled turns variable highlighting on.
	Enabled bool

	// Pattern is the variable pattern. Empty means DefaultVariablePattern.
	Pattern string

	// MatchTimeout bounds one evaluation of the pattern. Zero means
	// DefaultMatchTimeout.
	MatchTimeout time.Duration

	// Logger receives warnings about unusable patterns. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns the default tokenizer configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		Pattern:      DefaultVariablePattern,
		MatchTimeout: DefaultMatchTimeout,
	}
}

// Tokenizer splits text into Normal and Variable segments using a compiled
// variable pattern. It is safe for concurrent use.
type Tokenizer struct {
	enabled bool
	pattern string
	re      *regexp2.Regexp
	err     error
	log     *slog.Logger
}

// NewTokenizer compiles cfg.Pattern. A pattern that fails to compile is not
// an error here: the tokenizer degrades to whole-text Normal output and Err
// reports the cause.
func NewTokenizer(cfg Config) *Tokenizer {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultVariablePattern
	}
	t := &Tokenizer{
		enabled: cfg.Enabled,
		pattern: cfg.Pattern,
		log:     logging.OrDiscard(cfg.Logger),
	}
	t.re, t.err = compile(cfg.Pattern, cfg.MatchTimeout)
	if t.err != nil {
		t.log.Warn("variable pattern disabled", "pattern", cfg.Pattern, "err", t.err)
	}
	return t
}

// Err returns the pattern compile error, if any.
func (t *Tokenizer) Err() error {
	return t.err
}

// Enabled reports whether highlighting is on.
func (t *Tokenizer) Enabled() bool {
	return t.enabled
}

// Pattern returns the source pattern.
func (t *Tokenizer) Pattern() string {
	return t.pattern
}

// Tokenize splits text into segments. Matches of the pattern become Variable
// segments and the gaps between them become Normal segments. When
// highlighting is disabled, the pattern is unusable, or matching times out,
// the whole text is returned as one Normal segment.
func (t *Tokenizer) Tokenize(text string) []Segment {
	if !t.enabled {
		return whole(text, len([]rune(text)))
	}
	return t.split(text)
}

// split tokenizes regardless of the enabled flag.
func (t *Tokenizer) split(text string) []Segment {
	runes := []rune(text)
	if t.re == nil {
		return whole(text, len(runes))
	}

	spans, err := t.matches(text)
	if err != nil {
		t.log.Warn("variable pattern failed", "pattern", t.pattern, "err", err)
		return whole(text, len(runes))
	}
	if len(spans) == 0 {
		return whole(text, len(runes))
	}

	offs := byteOffsets(text)
	segs := make([]Segment, 0, 2*len(spans)+1)
	pos := 0
	for _, sp := range spans {
		if sp.start > pos {
			segs = append(segs, Segment{Type: Normal, Text: text[offs[pos]:offs[sp.start]], Start: pos, End: sp.start})
		}
		segs = append(segs, Segment{Type: Variable, Text: text[offs[sp.start]:offs[sp.end]], Start: sp.start, End: sp.end})
		pos = sp.end
	}
	if pos < len(runes) {
		segs = append(segs, Segment{Type: Normal, Text: text[offs[pos]:], Start: pos, End: len(runes)})
	}
	return segs
}

type span struct {
	start, end int
}

// matches returns the non-empty, non-overlapping matches in rune offsets.
func (t *Tokenizer) matches(text string) ([]span, error) {
	var spans []span
	m, err := t.re.FindStringMatch(text)
	for m != nil && err == nil {
		if m.Length > 0 {
			spans = append(spans, span{start: m.Index, end: m.Index + m.Length})
		}
		m, err = t.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, err
	}
	return spans, nil
}

// Tokenize splits text with pattern. It is the stateless form of
// Tokenizer.Tokenize; compiled patterns are cached across calls.
func Tokenize(text, pattern string, enabled bool) []Segment {
	if !enabled {
		return whole(text, len([]rune(text)))
	}
	re, err := cachedCompile(pattern)
	t := &Tokenizer{enabled: true, pattern: pattern, re: re, err: err, log: logging.Discard()}
	return t.split(text)
}

// ValidatePattern reports whether pattern compiles.
func ValidatePattern(pattern string) error {
	_, err := compile(pattern, 0)
	return err
}

func compile(pattern string, timeout time.Duration) (*regexp2.Regexp, error) {
	if timeout <= 0 {
		timeout = DefaultMatchTimeout
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = timeout
	return re, nil
}

const patternCacheLimit = 64

type compiled struct {
	re  *regexp2.Regexp
	err error
}

var (
	patternCache   = make(map[string]compiled)
	patternCacheMu sync.Mutex
)

func cachedCompile(pattern string) (*regexp2.Regexp, error) {
	patternCacheMu.Lock()
	defer patternCacheMu.Unlock()

	if c, ok := patternCache[pattern]; ok {
		return c.re, c.err
	}
	re, err := compile(pattern, 0)
	if len(patternCache) >= patternCacheLimit {
		patternCache = make(map[string]compiled)
	}
	patternCache[pattern] = compiled{re: re, err: err}
	return re, err
}
