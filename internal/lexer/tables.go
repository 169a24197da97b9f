package lexer

// LogseqTable is the syntax table for the Logseq outline dialect.
//
// Longer markers precede their prefixes so the first match is the longest
// one ("![[" before "[[", "#+BEGIN_QUOTE" before "#").
var LogseqTable = Table{Rules: []Rule{
	{"#+BEGIN_QUOTE", QuoteBegin},
	{"#+END_QUOTE", QuoteEnd},
	{"{{embed", MacroOpen},
	{"}}", MacroClose},
	{"![[", EmbedOpen},
	{"[[", LinkOpen},
	{"]]", LinkClose},
	{"```", Fence},
	{"::", PropertyMark},
	{"#", HeadingMark},
	{"-", Dash},
	{"|", Pipe},
}}

// ZKTable is the syntax table for the zk outline dialect. It adds the "::="
// property delimiter on top of the Logseq markers.
var ZKTable = Table{Rules: []Rule{
	{"#+BEGIN_QUOTE", QuoteBegin},
	{"#+END_QUOTE", QuoteEnd},
	{"![[", EmbedOpen},
	{"[[", LinkOpen},
	{"]]", LinkClose},
	{"```", Fence},
	{"::=", PropertyMark},
	{"::", PropertyMark},
	{"#", HeadingMark},
	{"-", Dash},
	{"|", Pipe},
}}

// ObsidianTable is the syntax table for the conventional Markdown dialect.
// Block structure there comes from the goldmark pre-pass; this table backs
// the inline pass over text and list-item content.
var ObsidianTable = Table{Rules: []Rule{
	{"#+BEGIN_QUOTE", QuoteBegin},
	{"#+END_QUOTE", QuoteEnd},
	{"![[", EmbedOpen},
	{"[[", LinkOpen},
	{"]]", LinkClose},
	{"](", LinkMid},
	{"[", BracketOpen},
	{")", ParenClose},
	{"```", Fence},
	{"::", PropertyMark},
	{"#", HeadingMark},
	{"-", Dash},
	{"|", Pipe},
}}

// TableFor returns the syntax table for a dialect name. The bool is false
// for unknown names.
func TableFor(dialect string) (Table, bool) {
	switch dialect {
	case "logseq":
		return LogseqTable, true
	case "zk":
		return ZKTable, true
	case "obsidian":
		return ObsidianTable, true
	}
	return Table{}, false
}
