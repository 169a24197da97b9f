package document

// Dialect selects one of the supported note markups.
type Dialect string

const (
	// Logseq is the outline dialect where every content line is a
	// dash-prefixed block and nesting is pure indentation.
	Logseq Dialect = "logseq"

	// ZK is the outline dialect with inline "name::= value" properties and
	// optional YAML frontmatter.
	ZK Dialect = "zk"

	// Obsidian is conventional Markdown with wiki links; only list items
	// nest.
	Obsidian Dialect = "obsidian"
)

// Valid reports whether d names a supported dialect.
func (d Dialect) Valid() bool {
	switch d {
	case Logseq, ZK, Obsidian:
		return true
	}
	return false
}

// Document is a parsed note: an ordered top-level component sequence,
// optionally anchored to the directory of the file it was read from.
//
// A document and all its nodes are exclusively owned by the parse call that
// produced them; callers may mutate the tree in place before re-serializing.
type Document struct {
	dir        string // originating file's directory, "" when detached
	Components []*Component
}

// New creates a detached document.
func New(components ...*Component) *Document {
	return &Document{Components: components}
}

// NewAnchored creates a document anchored to the directory of the file it
// was parsed from. The directory is used to resolve relative links and to
// compute image-embed output paths.
func NewAnchored(dir string, components ...*Component) *Document {
	return &Document{dir: dir, Components: components}
}

// Dir returns the originating file's directory, or "" for a detached
// document.
func (d *Document) Dir() string {
	return d.dir
}

// Anchored reports whether the document carries a file context.
func (d *Document) Anchored() bool {
	return d.dir != ""
}

// AddComponent appends a component to the top level.
func (d *Document) AddComponent(c *Component) {
	d.Components = append(d.Components, c)
}

// InsertComponent inserts a component at index i, clamped to the valid
// range.
func (d *Document) InsertComponent(i int, c *Component) {
	if i < 0 {
		i = 0
	}
	if i > len(d.Components) {
		i = len(d.Components)
	}
	d.Components = append(d.Components, nil)
	copy(d.Components[i+1:], d.Components[i:])
	d.Components[i] = c
}

// RemoveComponent removes and returns the component at index i, or nil if i
// is out of range.
func (d *Document) RemoveComponent(i int) *Component {
	if i < 0 || i >= len(d.Components) {
		return nil
	}
	c := d.Components[i]
	d.Components = append(d.Components[:i], d.Components[i+1:]...)
	return c
}

// FindComponent returns the first component (document order, depth first)
// matching pred, descending into children, list-item bodies, admonition
// bodies, and conventional list items. Returns nil if no component matches.
func (d *Document) FindComponent(pred func(*Component) bool) *Component {
	return findIn(d.Components, pred)
}

func findIn(comps []*Component, pred func(*Component) bool) *Component {
	for _, c := range comps {
		if pred(c) {
			return c
		}
		switch el := c.Element.(type) {
		case *ListItem:
			if el.Body != nil {
				if found := el.Body.FindComponent(pred); found != nil {
					return found
				}
			}
		case *Admonition:
			if found := findIn(el.Body, pred); found != nil {
				return found
			}
		case *List:
			if found := findInListElems(el.Items, pred); found != nil {
				return found
			}
		}
		if found := findIn(c.Children, pred); found != nil {
			return found
		}
	}
	return nil
}

func findInListElems(items []*ListElem, pred func(*Component) bool) *Component {
	for _, it := range items {
		if it.Contents != nil {
			if found := it.Contents.FindComponent(pred); found != nil {
				return found
			}
		}
		if found := findInListElems(it.Children, pred); found != nil {
			return found
		}
	}
	return nil
}

// IntoComponents transfers ownership of the top-level components to the
// caller, leaving the document empty.
func (d *Document) IntoComponents() []*Component {
	comps := d.Components
	d.Components = nil
	return comps
}
