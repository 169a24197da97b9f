// Package document defines the dialect-independent note tree shared by all
// parsers and serializers.
//
// A parsed note is a Document holding an ordered sequence of Components. A
// Component pairs one Element with its indentation children; outline dialects
// nest any element, the conventional dialect nests only list items (ListElem).
package document

// Element is one node payload in the tree.
//
// It is a closed union: Heading, FileLink, FileEmbed, Text, Admonition,
// CodeBlock, ListItem, List, Properties and Frontmatter.
type Element interface {
	element()
}

// Heading is a section heading. Level counts leading '#' markers.
type Heading struct {
	Level int
	Text  string
}

// FileLink is a cross-reference to another note. Section and Rename are
// empty when absent.
type FileLink struct {
	Target  MentionedFile
	Section string
	Rename  string
}

// FileEmbed requests the referenced file's content inline. Embeds never
// carry a rename.
type FileEmbed struct {
	Target  MentionedFile
	Section string
}

// Text is a run of ordinary prose, newlines included.
type Text struct {
	Raw string
}

// Admonition is a callout/quote block. Recognized properties are "title"
// and "color"; the body is a nested component sequence parsed in the same
// dialect as the surrounding document.
type Admonition struct {
	Body  []*Component
	Props map[string]string
}

// CodeBlock is a fenced code block. Language is empty when the fence had no
// language tag.
type CodeBlock struct {
	Body     string
	Language string
}

// ListItem is the outline dialects' unit of nesting: one dash block. It
// carries the block's own content as a detached sub-document plus the
// properties declared on the block.
type ListItem struct {
	Body  *Document
	Props []*Property
}

// List is the conventional dialect's list construct; only its items nest.
// TrailingBlank records whether the list was followed by a blank line.
type List struct {
	Items         []*ListElem
	TrailingBlank bool
}

// Properties is a standalone run of property declarations (conventional
// dialect only).
type Properties struct {
	Props []*Property
}

// Frontmatter is a leading '---'-delimited metadata block parsed into
// properties.
type Frontmatter struct {
	Props []*Property
}

func (*Heading) element()     {}
func (*FileLink) element()    {}
func (*FileEmbed) element()   {}
func (*Text) element()        {}
func (*Admonition) element()  {}
func (*CodeBlock) element()   {}
func (*ListItem) element()    {}
func (*List) element()        {}
func (*Properties) element()  {}
func (*Frontmatter) element() {}

// Component is an element plus its indentation children. Order of children
// is document order and is never reordered by any operation.
type Component struct {
	Element  Element
	Children []*Component
}

// NewComponent creates a childless component for an element.
func NewComponent(el Element) *Component {
	return &Component{Element: el}
}

// ListElem is a conventional-dialect list item: its own contents plus
// nested items.
type ListElem struct {
	Contents *Document
	Children []*ListElem
}
