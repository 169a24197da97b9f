package serializer

import (
	"path/filepath"
	"strings"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
)

// markdownSerializer renders the conventional Markdown dialect. Text runs
// carry their own newlines, so a parsed document concatenates back to its
// source; a single newline is glued in only between structural chunks that
// do not bring one, which happens in converted documents.
type markdownSerializer struct {
	doc  *document.Document
	opts Options
}

func (s *markdownSerializer) serialize() string {
	comps := s.doc.Components

	front := ""
	if len(comps) > 0 {
		if fm, ok := comps[0].Element.(*document.Frontmatter); ok {
			front = renderFrontmatterYAML(fm)
			comps = comps[1:]
		}
	}

	return front + ensureTrailingNewline(s.renderComponents(comps))
}

func (s *markdownSerializer) renderComponents(comps []*document.Component) string {
	var b strings.Builder
	var last byte
	prevStructural := false

	// Text runs carry their own separators, so inline chunks concatenate
	// as is. A newline is glued in only next to a structural chunk that
	// arrives without one, which happens in converted documents.
	write := func(chunk string, structural bool) {
		if chunk == "" {
			return
		}
		if b.Len() > 0 && last != '\n' && chunk[0] != '\n' && (structural || prevStructural) {
			b.WriteByte('\n')
		}
		b.WriteString(chunk)
		last = chunk[len(chunk)-1]
		prevStructural = structural
	}

	for _, c := range comps {
		switch el := c.Element.(type) {
		case *document.ListItem:
			write(strings.Join(s.renderItemBlocks(c, 0), "\n"), true)
		case *document.List:
			write(strings.Join(s.renderListItems(el.Items, 0), "\n"), true)
		case *document.Text, *document.FileLink, *document.FileEmbed:
			write(s.renderElement(c.Element), false)
		default:
			write(s.renderElement(c.Element), true)
			if len(c.Children) > 0 {
				write(s.renderComponents(c.Children), true)
			}
		}
	}
	return b.String()
}

// renderItemBlocks renders a converted outline item and its descendants as
// Markdown list bullets. Item properties, which have no native form here,
// come out as "name:: value" continuation lines.
func (s *markdownSerializer) renderItemBlocks(c *document.Component, depth int) []string {
	item := c.Element.(*document.ListItem)
	content := s.renderBody(item.Body)
	for _, p := range item.Props {
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += renderProperty(p, document.Logseq)
	}

	blocks := []string{emitBlock(content, depth)}
	for _, child := range c.Children {
		if _, ok := child.Element.(*document.ListItem); ok {
			blocks = append(blocks, s.renderItemBlocks(child, depth+1)...)
			continue
		}
		blocks = append(blocks, emitBlock(s.renderElement(child.Element), depth+1))
	}
	return blocks
}

func (s *markdownSerializer) renderListItems(items []*document.ListElem, depth int) []string {
	var blocks []string
	for _, it := range items {
		content := ""
		if it.Contents != nil {
			content = s.renderBody(it.Contents)
		}
		blocks = append(blocks, emitBlock(content, depth))
		blocks = append(blocks, s.renderListItems(it.Children, depth+1)...)
	}
	return blocks
}

func (s *markdownSerializer) renderBody(body *document.Document) string {
	var b strings.Builder
	for _, c := range body.Components {
		b.WriteString(s.renderElement(c.Element))
	}
	return b.String()
}

func (s *markdownSerializer) renderElement(el document.Element) string {
	switch el := el.(type) {
	case *document.Text:
		return el.Raw
	case *document.Heading:
		return renderHeading(el)
	case *document.FileLink:
		return s.renderLink(el)
	case *document.FileEmbed:
		return renderWikiEmbed(el)
	case *document.CodeBlock:
		return renderCodeBlock(el)
	case *document.Admonition:
		return s.renderAdmonition(el)
	case *document.Properties:
		return renderPropBlock(el.Props)
	case *document.Frontmatter:
		return renderPropBlock(el.Props)
	}
	return ""
}

// renderLink renders a conventional "[display](target.md)" link. Resolved
// targets are written relative to the document's directory when it is
// anchored.
func (s *markdownSerializer) renderLink(el *document.FileLink) string {
	var target string
	if path, ok := el.Target.Path(); ok {
		target = path
		if s.doc.Anchored() {
			if rel, err := filepath.Rel(s.doc.Dir(), path); err == nil {
				target = rel
			}
		}
		target = filepath.ToSlash(target)
	} else {
		target = el.Target.Name() + ".md"
	}
	if el.Section != "" {
		target += "#" + el.Section
	}

	display := el.Rename
	if display == "" {
		display = el.Target.DisplayName()
	}
	return "[" + display + "](" + target + ")"
}

// renderAdmonition renders a quote block in the fenced admonition form.
func (s *markdownSerializer) renderAdmonition(el *document.Admonition) string {
	var b strings.Builder
	b.WriteString("```ad-note\n")
	if t, ok := el.Props["title"]; ok {
		b.WriteString("title: " + t + "\n")
	}
	if c, ok := el.Props["color"]; ok {
		b.WriteString("color: " + c + "\n")
	}
	body := s.renderComponents(el.Body)
	if body != "" {
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteByte('\n')
		}
	}
	b.WriteString("```")
	return b.String()
}

func renderPropBlock(props []*document.Property) string {
	var b strings.Builder
	for _, p := range props {
		b.WriteString(renderProperty(p, document.Logseq))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderFrontmatterYAML renders properties as a YAML frontmatter block,
// keys in their original order.
func renderFrontmatterYAML(fm *document.Frontmatter) string {
	var b strings.Builder
	b.WriteString("---\n")
	for _, p := range fm.Props {
		b.WriteString(p.Name)
		b.WriteByte(':')
		switch {
		case p.Multi:
			parts := make([]string, 0, len(p.Values))
			for _, v := range p.Values {
				parts = append(parts, yamlScalar(renderPropValue(v)))
			}
			b.WriteString(" [" + strings.Join(parts, ", ") + "]")
		case len(p.Values) > 0:
			if v := renderPropValue(p.Values[0]); v != "" {
				b.WriteString(" " + yamlScalar(v))
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("---\n")
	return b.String()
}

// yamlScalar quotes a scalar when writing it bare would change how YAML
// reads it back, wikilink values being the common case.
func yamlScalar(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, `[]{}"'#&*!|>%@`+"`") ||
		strings.Contains(s, ": ") ||
		strings.HasSuffix(s, ":") ||
		s != strings.TrimSpace(s) {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}
