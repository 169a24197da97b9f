package document

// MentionedFiles collects the display names of every file the document
// references through links, embeds, and link-valued properties, including
// inside admonition bodies and nested blocks. Names are deduplicated in
// first-seen document order. The tree is never mutated.
func (d *Document) MentionedFiles() []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(m MentionedFile) {
		name := m.DisplayName()
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	var walkProps func(props []*Property)
	walkProps = func(props []*Property) {
		for _, p := range props {
			for _, v := range p.Values {
				if link, ok := v.(*LinkValue); ok {
					add(link.Target)
				}
			}
		}
	}

	var walkComps func(comps []*Component)
	var walkItems func(items []*ListElem)

	walkComps = func(comps []*Component) {
		for _, c := range comps {
			switch el := c.Element.(type) {
			case *FileLink:
				add(el.Target)
			case *FileEmbed:
				add(el.Target)
			case *ListItem:
				if el.Body != nil {
					walkComps(el.Body.Components)
				}
				walkProps(el.Props)
			case *Admonition:
				walkComps(el.Body)
			case *List:
				walkItems(el.Items)
			case *Properties:
				walkProps(el.Props)
			case *Frontmatter:
				walkProps(el.Props)
			}
			walkComps(c.Children)
		}
	}

	walkItems = func(items []*ListElem) {
		for _, it := range items {
			if it.Contents != nil {
				walkComps(it.Contents.Components)
			}
			walkItems(it.Children)
		}
	}

	walkComps(d.Components)
	return out
}
