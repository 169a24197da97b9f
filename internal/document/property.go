package document

// Property is a named attribute attached to a list item, a properties run,
// or a frontmatter block.
//
// Single-valued properties hold exactly one value and are written bare;
// multi-valued properties are written as a bracketed, comma-separated list
// even when they hold a single value.
type Property struct {
	Name   string
	Multi  bool
	Values []PropValue
}

// NewProperty creates a single-valued property.
func NewProperty(name string, value PropValue) *Property {
	return &Property{Name: name, Values: []PropValue{value}}
}

// NewMultiProperty creates a multi-valued property.
func NewMultiProperty(name string, values ...PropValue) *Property {
	return &Property{Name: name, Multi: true, Values: values}
}

// SetValues replaces the property's values in place.
func (p *Property) SetValues(values []PropValue) {
	p.Values = values
}

// FirstString returns the first value as plain text, or "" if the property
// is empty or its first value is a link.
func (p *Property) FirstString() string {
	if len(p.Values) == 0 {
		return ""
	}
	if s, ok := p.Values[0].(*StringValue); ok {
		return s.Text
	}
	return ""
}

// PropValue is one property value: plain text or a file link.
type PropValue interface {
	propValue()
}

// StringValue is a plain-text property value.
type StringValue struct {
	Text string
}

// LinkValue is a file-link property value.
type LinkValue struct {
	Target  MentionedFile
	Section string
	Rename  string
}

func (*StringValue) propValue() {}
func (*LinkValue) propValue()   {}
