package parser

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
)

// parseMarkdown parses the conventional dialect.
//
// Goldmark serves as the block pre-pass: it locates top-level headings and
// lists, whose raw line ranges are then re-parsed here. Every byte outside
// those ranges (paragraphs, fences, admonitions, blank runs) goes through
// the shared inline parser, which keeps the source text reproducible.
func parseMarkdown(src string, opts Options) (*document.Document, error) {
	fm, rest, err := cutFrontmatter(src, opts)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(gtext.NewReader([]byte(rest)))
	lineStarts := computeLineStarts(rest)

	type span struct {
		start, end int
		node       ast.Node
	}
	var spans []span
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Heading, *ast.List:
			start, end, ok := nodeLineSpan(child, rest, lineStarts)
			if ok {
				spans = append(spans, span{start: start, end: end, node: child})
			}
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var comps []*document.Component
	appendGap := func(gap string) error {
		gapComps, props, err := parseBlockContent(gap, document.Obsidian, opts)
		if err != nil {
			return err
		}
		comps = append(comps, gapComps...)
		// "name:: value" lines in paragraph text become a property run.
		if len(props) > 0 {
			comps = append(comps, document.NewComponent(&document.Properties{Props: props}))
		}
		return nil
	}

	cursor := 0
	for _, sp := range spans {
		if sp.start < cursor {
			continue
		}
		if sp.start > cursor {
			if err := appendGap(rest[cursor:sp.start]); err != nil {
				return nil, err
			}
		}

		raw := rest[sp.start:sp.end]
		switch n := sp.node.(type) {
		case *ast.Heading:
			comps = append(comps, document.NewComponent(headingFromLine(raw, n.Level)))
		case *ast.List:
			list := parseMarkdownList(raw, opts)
			list.TrailingBlank = strings.HasPrefix(rest[sp.end:], "\n\n")
			comps = append(comps, document.NewComponent(list))
		}
		cursor = sp.end
	}
	if cursor < len(rest) {
		if err := appendGap(rest[cursor:]); err != nil {
			return nil, err
		}
	}

	if fm != nil {
		comps = append([]*document.Component{document.NewComponent(fm)}, comps...)
	}

	if opts.Dir != "" {
		return document.NewAnchored(opts.Dir, comps...), nil
	}
	return document.New(comps...), nil
}

// nodeLineSpan computes the full-line byte range covered by a node's
// segments, end exclusive of the trailing newline. ok is false for nodes
// with no mappable segment (goldmark containers without direct lines).
func nodeLineSpan(node ast.Node, src string, lineStarts []int) (int, int, bool) {
	minStart, maxStop := -1, -1

	var visit func(ast.Node)
	visit = func(n ast.Node) {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			first := lines.At(0).Start
			last := lines.At(lines.Len() - 1).Stop
			if minStart == -1 || first < minStart {
				minStart = first
			}
			if last > maxStop {
				maxStop = last
			}
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(node)

	if minStart == -1 {
		return 0, 0, false
	}

	start := lineStarts[offsetToLine(lineStarts, minStart)]
	end := maxStop
	for end < len(src) && src[end] != '\n' {
		end++
	}
	for end > start && src[end-1] == '\n' {
		end--
	}
	return start, end, true
}

// headingFromLine rebuilds a heading element from its raw source line.
func headingFromLine(raw string, level int) *document.Heading {
	text := strings.TrimLeft(raw, " \t")
	text = strings.TrimLeft(text, "#")
	return &document.Heading{Level: level, Text: strings.TrimSpace(text)}
}

// parseMarkdownList parses a raw list range into a ListElem tree. Nesting
// follows the indentation columns of the dash markers (tab counts as one
// indent unit); continuation lines attach to the previous item.
func parseMarkdownList(raw string, opts Options) *document.List {
	type openItem struct {
		cols int
		elem *document.ListElem
		text []string
	}

	list := &document.List{}
	var stack []openItem

	finish := func(n int) {
		// Items are parsed once their continuation lines are complete.
		for len(stack) > n {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top.elem.Contents = inlineFragment(strings.Join(top.text, "\n"), opts)
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		cols, rest := measureIndent(line)
		marked := strings.HasPrefix(rest, "- ") || rest == "-"

		if !marked {
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				top.text = append(top.text, stripColumns(line, top.cols+2))
			}
			continue
		}

		content := strings.TrimPrefix(strings.TrimPrefix(rest, "-"), " ")
		elem := &document.ListElem{}

		for len(stack) > 0 && stack[len(stack)-1].cols >= cols {
			finish(len(stack) - 1)
		}
		if len(stack) == 0 {
			list.Items = append(list.Items, elem)
		} else {
			parent := stack[len(stack)-1].elem
			parent.Children = append(parent.Children, elem)
		}
		stack = append(stack, openItem{cols: cols, elem: elem, text: []string{content}})
	}
	finish(0)

	return list
}

// inlineFragment parses a list item's text through the inline parser.
// Property declarations on continuation lines stay with the item. Fragments
// never fail: a dangling construct degrades to plain text.
func inlineFragment(text string, opts Options) *document.Document {
	comps, props, err := parseBlockContent(text, document.Obsidian, opts)
	if err != nil {
		comps = []*document.Component{document.NewComponent(&document.Text{Raw: text})}
		props = nil
	}
	if len(props) > 0 {
		comps = append(comps, document.NewComponent(&document.Properties{Props: props}))
	}
	doc := document.New(comps...)
	doc.Normalize()
	return doc
}

func measureIndent(line string) (int, string) {
	cols := 0
	i := 0
	for i < len(line) {
		switch line[i] {
		case ' ':
			cols++
		case '\t':
			cols += indentUnit
		default:
			return cols, line[i:]
		}
		i++
	}
	return cols, ""
}

// computeLineStarts returns the byte offset of every line start.
func computeLineStarts(s string) []int {
	starts := []int{0}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine returns the 0-based line index containing offset.
func offsetToLine(lineStarts []int, offset int) int {
	lo, hi := 0, len(lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
