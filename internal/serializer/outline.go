package serializer

import (
	"path/filepath"
	"strings"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
)

// outlineSerializer renders the logseq and zk dialects. Documents come out
// as dash blocks separated by single newlines, nested by one tab per
// level, with continuation lines indented two further spaces.
type outlineSerializer struct {
	doc     *document.Document
	dialect document.Dialect
	opts    Options
}

func (s *outlineSerializer) serialize() string {
	comps := s.doc.Components

	front := ""
	if s.dialect == document.ZK && len(comps) > 0 {
		if fm, ok := comps[0].Element.(*document.Frontmatter); ok {
			front = renderFrontmatterYAML(fm)
			comps = comps[1:]
		}
	}

	blocks := s.renderComponents(comps, 0, true)
	return front + ensureTrailingNewline(strings.Join(blocks, "\n"))
}

// renderComponents turns a component sequence into block strings. List
// items become dash blocks; a run of other elements becomes one bare
// chunk, which only occurs before the first item of a document or an
// admonition body. With promote set, bare chunks get the implicit list
// marker so that every line of output content belongs to a dash block;
// admonition bodies stay unpromoted so their text survives verbatim.
func (s *outlineSerializer) renderComponents(comps []*document.Component, depth int, promote bool) []string {
	var blocks []string
	var bare strings.Builder
	flush := func(asBlock bool) {
		if bare.Len() == 0 {
			return
		}
		chunk := bare.String()
		bare.Reset()
		// A text chunk after a block brings its own separator newline
		// from the source dialect; joining supplies one already.
		if len(blocks) > 0 {
			chunk = strings.TrimPrefix(chunk, "\n")
		}
		if chunk == "" {
			return
		}
		if asBlock {
			blocks = append(blocks, promoteChunk(chunk, depth)...)
			return
		}
		blocks = append(blocks, chunk)
	}

	for _, c := range comps {
		switch el := c.Element.(type) {
		case *document.ListItem:
			flush(promote)
			blocks = append(blocks, s.renderBlock(el, depth))
			blocks = append(blocks, s.renderComponents(c.Children, depth+1, promote)...)
			continue
		case *document.List:
			flush(promote)
			blocks = append(blocks, s.renderListItems(el.Items, depth)...)
			continue
		case *document.Frontmatter:
			// No native frontmatter here: the keys become an ordinary
			// property block.
			flush(promote)
			blocks = append(blocks, s.renderBlock(&document.ListItem{
				Body:  document.New(),
				Props: el.Props,
			}, depth))
			continue
		case *document.Heading:
			// The zk dialect writes headings bare, without a dash.
			if s.dialect == document.ZK && promote {
				flush(true)
				bare.WriteString(renderHeading(el))
				flush(false)
			} else {
				bare.WriteString(renderHeading(el))
			}
		default:
			bare.WriteString(s.renderElement(c.Element))
		}
		if len(c.Children) > 0 {
			flush(promote)
			blocks = append(blocks, s.renderComponents(c.Children, depth+1, promote)...)
		}
	}
	flush(promote)
	return blocks
}

// promoteChunk renders a bare text chunk as implicit dash blocks. Content
// after a multi-line blank run starts a block of its own; a single blank
// line stays a continuation line of the current block.
func promoteChunk(chunk string, depth int) []string {
	var out []string
	chunk = strings.TrimLeft(chunk, "\n")
	for chunk != "" {
		cut, next := len(chunk), 0
		for i := 0; i < len(chunk); i++ {
			if chunk[i] != '\n' {
				continue
			}
			j := i
			for j < len(chunk) && chunk[j] == '\n' {
				j++
			}
			if j-i >= 3 && j < len(chunk) {
				// One separator newline comes back when blocks are joined.
				cut, next = j-1, j
				break
			}
			i = j - 1
		}
		out = append(out, emitBlock(chunk[:cut], depth))
		if next == 0 {
			break
		}
		chunk = chunk[next:]
	}
	return out
}

// renderBlock renders one list item as a dash block at the given depth.
func (s *outlineSerializer) renderBlock(item *document.ListItem, depth int) string {
	content := s.renderBody(item.Body)
	for _, p := range item.Props {
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += renderProperty(p, s.dialect)
	}
	return emitBlock(content, depth)
}

// renderListItems renders a converted Markdown list as dash blocks.
func (s *outlineSerializer) renderListItems(items []*document.ListElem, depth int) []string {
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

func (s *outlineSerializer) renderBody(body *document.Document) string {
	var b strings.Builder
	for _, c := range body.Components {
		b.WriteString(s.renderElement(c.Element))
		if len(c.Children) > 0 {
			for _, blk := range s.renderComponents(c.Children, 0, true) {
				b.WriteByte('\n')
				b.WriteString(blk)
			}
		}
	}
	return b.String()
}

func (s *outlineSerializer) renderElement(el document.Element) string {
	switch el := el.(type) {
	case *document.Text:
		return el.Raw
	case *document.Heading:
		return renderHeading(el)
	case *document.FileLink:
		return renderWikilink(el)
	case *document.FileEmbed:
		return s.renderEmbed(el)
	case *document.CodeBlock:
		return renderCodeBlock(el)
	case *document.Admonition:
		return s.renderAdmonition(el)
	case *document.Properties:
		return s.renderPropLines(el.Props)
	case *document.Frontmatter:
		return s.renderPropLines(el.Props)
	case *document.ListItem:
		return s.renderBlock(el, 0)
	case *document.List:
		return strings.Join(s.renderListItems(el.Items, 0), "\n")
	}
	return ""
}

func (s *outlineSerializer) renderPropLines(props []*document.Property) string {
	var b strings.Builder
	for _, p := range props {
		b.WriteString(renderProperty(p, s.dialect))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderEmbed renders a file embed. The logseq form is the embed macro,
// the zk form the embed wikilink. Resolved image embeds are rewritten as
// Markdown image links when an image directory is configured.
func (s *outlineSerializer) renderEmbed(el *document.FileEmbed) string {
	if s.dialect == document.Logseq {
		if img, ok := s.imageLink(el); ok {
			return img
		}
		return "{{embed [[" + wikilinkInner(wikiName(el.Target), el.Section, "") + "]]}}"
	}
	return renderWikiEmbed(el)
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

func (s *outlineSerializer) imageLink(el *document.FileEmbed) (string, bool) {
	if s.opts.ImageDir == "" || !s.doc.Anchored() {
		return "", false
	}
	path, ok := el.Target.Path()
	if !ok || !imageExts[strings.ToLower(filepath.Ext(path))] {
		return "", false
	}
	rel, err := filepath.Rel(s.doc.Dir(), s.opts.ImageDir)
	if err != nil {
		return "", false
	}
	target := filepath.ToSlash(filepath.Join(rel, filepath.Base(path)))
	return "![" + el.Target.DisplayName() + "](" + target + ")", true
}

// renderAdmonition renders a quote block. The title comes back as a bold
// first line so the block parses to the same tree again.
func (s *outlineSerializer) renderAdmonition(el *document.Admonition) string {
	var b strings.Builder
	b.WriteString("#+BEGIN_QUOTE\n")
	if t, ok := el.Props["title"]; ok {
		b.WriteString("**" + t + "**\n")
	}
	if c, ok := el.Props["color"]; ok {
		b.WriteString("color: " + c + "\n")
	}
	body := strings.Join(s.renderComponents(el.Body, 0, false), "\n")
	if body != "" {
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteByte('\n')
		}
	}
	b.WriteString("#+END_QUOTE")
	return b.String()
}

// emitBlock prefixes a block's content lines for the given depth: tabs and
// a dash marker on the first line, tabs and two spaces on continuation
// lines. Empty continuation lines stay empty, and non-empty lines keep any
// trailing whitespace they carry.
func emitBlock(content string, depth int) string {
	prefix := strings.Repeat("\t", depth)
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		switch {
		case i == 0:
			out = append(out, prefix+"- "+line)
		case line == "":
			out = append(out, "")
		default:
			out = append(out, prefix+"  "+line)
		}
	}
	return strings.Join(out, "\n")
}
