package parser

import (
	"strings"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
)

// parsePropertyValue parses a property declaration's raw value.
//
// A bracket-delimited value becomes a multi-valued property split on
// top-level commas; commas inside nested (), [], {} do not split. Splitting
// is best effort: unmatched brackets are not an error, they simply extend
// the current value. A value that is exactly a wikilink becomes a link
// value; everything else stays text.
func parsePropertyValue(name, raw string, opts Options) *document.Property {
	trimmed := strings.TrimSpace(raw)

	if isExactWikilink(trimmed) {
		return &document.Property{
			Name:   name,
			Values: []document.PropValue{wikilinkValue(trimmed, opts)},
		}
	}

	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && len(trimmed) >= 2 {
		inner := trimmed[1 : len(trimmed)-1]
		parts := splitTopLevel(inner, ',')
		values := make([]document.PropValue, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if isExactWikilink(part) {
				values = append(values, wikilinkValue(part, opts))
			} else {
				values = append(values, &document.StringValue{Text: part})
			}
		}
		return &document.Property{Name: name, Multi: true, Values: values}
	}

	return &document.Property{
		Name:   name,
		Values: []document.PropValue{&document.StringValue{Text: trimmed}},
	}
}

// isExactWikilink reports whether s is a single [[...]] literal with no
// trailing text.
func isExactWikilink(s string) bool {
	if !strings.HasPrefix(s, "[[") || !strings.HasSuffix(s, "]]") || len(s) < 5 {
		return false
	}
	inner := s[2 : len(s)-2]
	return !strings.Contains(inner, "]]") && !strings.Contains(inner, "[[")
}

func wikilinkValue(literal string, opts Options) document.PropValue {
	inner := literal[2 : len(literal)-2]
	name, section, rename := splitLinkInner(inner)
	return &document.LinkValue{
		Target:  resolveMention(name, opts),
		Section: section,
		Rename:  rename,
	}
}

// splitTopLevel splits s on sep occurrences that are not nested inside
// (), [], or {} pairs. Depth never goes below zero, so stray closers are
// treated as plain text.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
