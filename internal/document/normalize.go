package document

import "strings"

// Normalize applies the two tree-wide cleanup rules:
//
//   - adjacent childless text runs in a sibling list merge into one run
//   - runs of three or more blank lines inside a text run collapse to
//     exactly two newlines (one or two blank lines keep their count)
//
// It recurses into children, list-item bodies, admonition bodies, and
// conventional list items. Component order is preserved.
func (d *Document) Normalize() {
	d.Components = normalizeComponents(d.Components)
}

func normalizeComponents(comps []*Component) []*Component {
	out := make([]*Component, 0, len(comps))
	for _, c := range comps {
		c.Children = normalizeComponents(c.Children)

		switch el := c.Element.(type) {
		case *Text:
			el.Raw = CollapseBlankRuns(el.Raw)
			if prev := lastTextRun(out); prev != nil && len(c.Children) == 0 {
				prev.Raw = CollapseBlankRuns(prev.Raw + el.Raw)
				continue
			}
		case *ListItem:
			if el.Body != nil {
				el.Body.Normalize()
			}
		case *Admonition:
			el.Body = normalizeComponents(el.Body)
		case *List:
			normalizeListElems(el.Items)
		}

		out = append(out, c)
	}
	return out
}

func normalizeListElems(items []*ListElem) {
	for _, it := range items {
		if it.Contents != nil {
			it.Contents.Normalize()
		}
		normalizeListElems(it.Children)
	}
}

// lastTextRun returns the trailing component's Text element if it is a
// childless text run, else nil.
func lastTextRun(comps []*Component) *Text {
	if len(comps) == 0 {
		return nil
	}
	last := comps[len(comps)-1]
	if len(last.Children) != 0 {
		return nil
	}
	t, ok := last.Element.(*Text)
	if !ok {
		return nil
	}
	return t
}

// CollapseBlankRuns collapses every run of four or more consecutive
// newlines (three or more blank lines) to exactly two newlines. Shorter
// runs are kept as written.
func CollapseBlankRuns(s string) string {
	if !strings.Contains(s, "\n\n\n\n") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	run := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			run++
			continue
		}
		b.WriteString(newlines(run))
		run = 0
		b.WriteByte(s[i])
	}
	b.WriteString(newlines(run))
	return b.String()
}

func newlines(run int) string {
	if run >= 4 {
		return "\n\n"
	}
	return strings.Repeat("\n", run)
}
