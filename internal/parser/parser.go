// Package parser turns dialect text into the shared document tree.
//
// The pipeline for the outline dialects is: block splitter, indentation
// tree assembler, inline parser, normalizer. The conventional dialect goes
// through a goldmark pre-pass for block structure instead of the splitter.
// Parsing either succeeds completely or fails with an error; there is no
// partial result.
package parser

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/resolver"
)

// Options carries the file context of a parse call.
type Options struct {
	// Dir is the originating file's directory. Empty for detached parses;
	// link targets are then never resolved.
	Dir string

	// Resolver resolves link target names to canonical paths. Nil disables
	// resolution.
	Resolver resolver.Resolver
}

// Parse parses text in the given dialect. With a zero Options the document
// is detached and every mention stays unresolved.
func Parse(text string, dialect document.Dialect, opts Options) (*document.Document, error) {
	if !dialect.Valid() {
		return nil, &ParseError{Dialect: string(dialect), Err: fmt.Errorf("unknown dialect")}
	}

	var doc *document.Document
	var err error
	switch dialect {
	case document.Obsidian:
		doc, err = parseMarkdown(text, opts)
	default:
		doc, err = parseOutlineDocument(text, dialect, opts)
	}
	if err != nil {
		return nil, &ParseError{Dialect: string(dialect), Err: err}
	}

	doc.Normalize()
	return doc, nil
}

// ParseFile reads and parses a file, anchoring the document to the file's
// directory and resolving links against the real filesystem.
func ParseFile(path string, dialect document.Dialect) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	return Parse(string(data), dialect, Options{Dir: dir, Resolver: resolver.OS{}})
}

// parseOutlineDocument parses a whole outline-dialect file, including the
// zk dialect's optional leading frontmatter.
func parseOutlineDocument(text string, dialect document.Dialect, opts Options) (*document.Document, error) {
	var front *document.Component
	if dialect == document.ZK {
		fm, rest, err := cutFrontmatter(text, opts)
		if err != nil {
			return nil, err
		}
		if fm != nil {
			front = document.NewComponent(fm)
			text = rest
		}
	}

	doc, err := parseOutline(text, dialect, opts)
	if err != nil {
		return nil, err
	}
	if front != nil {
		doc.InsertComponent(0, front)
	}
	if opts.Dir != "" {
		return document.NewAnchored(opts.Dir, doc.IntoComponents()...), nil
	}
	return doc, nil
}

// parseOutline runs splitter, assembler, and inline parser over outline
// text. It is also the recursion entry for admonition bodies.
func parseOutline(text string, dialect document.Dialect, opts Options) (*document.Document, error) {
	blocks := splitBlocks(text)
	nodes := assemble(blocks)

	comps, err := buildComponents(nodes, dialect, opts)
	if err != nil {
		return nil, err
	}
	return document.New(comps...), nil
}

// buildComponents inline-parses every assembled block. Dash blocks become
// list items carrying their content as a detached sub-document; a bare
// block (text before the first dash) splices its components directly into
// the parent sequence so plain prose stays a plain text run.
func buildComponents(nodes []*blockNode, dialect document.Dialect, opts Options) ([]*document.Component, error) {
	var out []*document.Component
	for _, node := range nodes {
		comps, props, err := parseBlockContent(node.block.content, dialect, opts)
		if err != nil {
			return nil, err
		}

		children, err := buildComponents(node.children, dialect, opts)
		if err != nil {
			return nil, err
		}

		if node.block.bare && len(children) == 0 && len(props) == 0 {
			out = append(out, comps...)
			continue
		}

		item := &document.ListItem{Body: document.New(comps...), Props: props}
		out = append(out, &document.Component{Element: item, Children: children})
	}
	return out, nil
}
