package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
)

// cutFrontmatter detects a leading '---'-delimited YAML block and parses
// it into ordered properties. It returns nil and the input unchanged when
// the first line is not '---'. An unclosed block is not frontmatter; the
// whole text is handed to the outline parser as is.
func cutFrontmatter(text string, opts Options) (*document.Frontmatter, string, error) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, text, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, text, nil
	}

	body := strings.Join(lines[1:end], "\n")
	props, err := parseFrontmatterProps(body, opts)
	if err != nil {
		return nil, "", err
	}

	rest := ""
	if end+1 < len(lines) {
		rest = strings.Join(lines[end+1:], "\n")
	}
	return &document.Frontmatter{Props: props}, rest, nil
}

// parseFrontmatterProps parses YAML mapping content into properties,
// preserving the key order the author wrote. Sequences become multi-valued
// properties; scalar values that are exactly a wikilink become link values.
func parseFrontmatterProps(body string, opts Options) ([]*document.Property, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(body), &root); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, nil
	}

	var props []*document.Property
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		value := mapping.Content[i+1]

		switch value.Kind {
		case yaml.SequenceNode:
			values := make([]document.PropValue, 0, len(value.Content))
			for _, item := range value.Content {
				values = append(values, frontmatterValue(item, opts))
			}
			props = append(props, &document.Property{Name: key.Value, Multi: true, Values: values})
		default:
			props = append(props, &document.Property{
				Name:   key.Value,
				Values: []document.PropValue{frontmatterValue(value, opts)},
			})
		}
	}
	return props, nil
}

func frontmatterValue(node *yaml.Node, opts Options) document.PropValue {
	if node.Kind == yaml.ScalarNode {
		if isExactWikilink(node.Value) {
			return wikilinkValue(node.Value, opts)
		}
		return &document.StringValue{Text: node.Value}
	}

	// Nested structures are rare in note frontmatter; keep them as their
	// re-encoded YAML text rather than dropping them.
	encoded, err := yaml.Marshal(node)
	if err != nil {
		return &document.StringValue{Text: ""}
	}
	return &document.StringValue{Text: strings.TrimRight(string(encoded), "\n")}
}
