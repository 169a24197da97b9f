// Package serializer writes documents back out in any of the supported
// dialects. Serializing a document in the dialect it was parsed from
// reproduces the source text; serializing in another dialect performs the
// conversion.
package serializer

import (
	"fmt"
	"strings"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
)

// Options adjust dialect-specific output behavior.
type Options struct {
	// ImageDir, when set, makes the logseq serializer rewrite embeds of
	// resolved image files into Markdown image links pointing into this
	// directory. Paths are emitted relative to the document's directory.
	ImageDir string
}

// Serialize renders a document in the given dialect.
func Serialize(doc *document.Document, dialect document.Dialect, opts Options) (string, error) {
	if !dialect.Valid() {
		return "", fmt.Errorf("serialize: unknown dialect %q", dialect)
	}
	if dialect == document.Obsidian {
		s := &markdownSerializer{doc: doc, opts: opts}
		return s.serialize(), nil
	}
	s := &outlineSerializer{doc: doc, dialect: dialect, opts: opts}
	return s.serialize(), nil
}

// wikiName is the name written between wikilink brackets: the name the
// mention was parsed with, or the file name for mentions that only carry
// a path.
func wikiName(m document.MentionedFile) string {
	if m.Name() != "" {
		return m.Name()
	}
	return m.DisplayName()
}

// wikilinkInner renders the text between link delimiters.
func wikilinkInner(name, section, rename string) string {
	var b strings.Builder
	b.WriteString(name)
	if section != "" {
		b.WriteByte('#')
		b.WriteString(section)
	}
	if rename != "" {
		b.WriteByte('|')
		b.WriteString(rename)
	}
	return b.String()
}

func renderWikilink(el *document.FileLink) string {
	return "[[" + wikilinkInner(wikiName(el.Target), el.Section, el.Rename) + "]]"
}

func renderWikiEmbed(el *document.FileEmbed) string {
	return "![[" + wikilinkInner(wikiName(el.Target), el.Section, "") + "]]"
}

// renderPropValue renders one property value.
func renderPropValue(v document.PropValue) string {
	switch v := v.(type) {
	case *document.StringValue:
		return v.Text
	case *document.LinkValue:
		return "[[" + wikilinkInner(wikiName(v.Target), v.Section, v.Rename) + "]]"
	}
	return ""
}

// renderPropertyValue renders the right-hand side of a property line.
// Multi-valued properties render in bracket-list form.
func renderPropertyValue(p *document.Property) string {
	if p.Multi {
		parts := make([]string, 0, len(p.Values))
		for _, v := range p.Values {
			parts = append(parts, renderPropValue(v))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	if len(p.Values) == 0 {
		return ""
	}
	return renderPropValue(p.Values[0])
}

// renderProperty renders one property line, without a trailing newline.
// The logseq form is "name:: value", the zk form "name ::= value".
func renderProperty(p *document.Property, dialect document.Dialect) string {
	value := renderPropertyValue(p)
	delim := "::"
	if dialect == document.ZK {
		delim = " ::="
	}
	if value == "" {
		return p.Name + delim
	}
	return p.Name + delim + " " + value
}

// renderHeading renders a heading line, without a trailing newline.
func renderHeading(el *document.Heading) string {
	hashes := strings.Repeat("#", el.Level)
	if el.Text == "" {
		return hashes
	}
	return hashes + " " + el.Text
}

// renderCodeBlock renders a fenced code block, the closing fence without a
// trailing newline.
func renderCodeBlock(el *document.CodeBlock) string {
	var b strings.Builder
	b.WriteString("```")
	b.WriteString(el.Language)
	b.WriteByte('\n')
	if el.Body != "" {
		b.WriteString(el.Body)
		b.WriteByte('\n')
	}
	b.WriteString("```")
	return b.String()
}

// ensureTrailingNewline normalizes the end of a rendered file. Property
// parsing consumes line endings, so a file ending in a property block
// needs its final newline put back.
func ensureTrailingNewline(s string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}
