package highlight

import (
	"strings"
)

// VariableName returns the placeholder name carried by a Variable segment:
// the text inside the surrounding double braces, trimmed of spaces.
func VariableName(seg Segment) (string, bool) {
	if seg.Type != Variable {
		return "", false
	}
	name := seg.Text
	if strings.HasPrefix(name, "{{") && strings.HasSuffix(name, "}}") && len(name) >= 4 {
		name = name[2 : len(name)-2]
	}
	name = strings.TrimSpace(name)
	return name, name != ""
}

// Variables returns the unique placeholder names in text, in order of first
// appearance.
func (t *Tokenizer) Variables(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, seg := range t.split(text) {
		if name, ok := VariableName(seg); ok && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Resolve substitutes every placeholder whose name lookup knows. Unknown
// placeholders are left verbatim and their names returned, without
// duplicates. Resolution works even when highlighting is disabled.
func (t *Tokenizer) Resolve(text string, lookup func(name string) (string, bool)) (string, []string) {
	var (
		b          strings.Builder
		unresolved []string
	)
	seen := make(map[string]bool)
	b.Grow(len(text))

	for _, seg := range t.split(text) {
		name, ok := VariableName(seg)
		if !ok {
			b.WriteString(seg.Text)
			continue
		}
		if v, found := lookup(name); found {
			b.WriteString(v)
			continue
		}
		b.WriteString(seg.Text)
		if !seen[name] {
			seen[name] = true
			unresolved = append(unresolved, name)
		}
	}
	return b.String(), unresolved
}

// MapLookup adapts a map to a lookup function.
func MapLookup(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}
