// Package lexer provides the shared finite-state tokenizer used by every
// dialect parser.
//
// All dialects share one token-category set; what differs per dialect is the
// syntax table mapping literal markers to categories. The lexer itself is
// context-free: start-of-line rules (a '#' only opening a heading at the
// start of a block, fence markers only counting at line starts) are applied
// by the parsers on top of the token stream.
package lexer

import "fmt"

// Category classifies a token. The categories are shared across dialects.
type Category int

const (
	// Text is a run of ordinary characters.
	Text Category = iota
	// Whitespace is a run of spaces and tabs.
	Whitespace
	// Newline is a single '\n'.
	Newline
	// Escape is a backslash plus the escaped character.
	Escape
	// Dash is a list-item marker.
	Dash
	// HeadingMark is one '#'.
	HeadingMark
	// LinkOpen is the "[[" marker.
	LinkOpen
	// EmbedOpen is the "![[" marker.
	EmbedOpen
	// LinkClose is the "]]" marker.
	LinkClose
	// Pipe separates a link target from its rename.
	Pipe
	// Fence is a "```" code-fence delimiter.
	Fence
	// QuoteBegin opens an admonition quote block.
	QuoteBegin
	// QuoteEnd closes an admonition quote block.
	QuoteEnd
	// MacroOpen is the "{{embed" marker.
	MacroOpen
	// MacroClose is the "}}" marker.
	MacroClose
	// PropertyMark is the "::" / "::=" property delimiter.
	PropertyMark
	// BracketOpen is a single '[' (conventional dialect links).
	BracketOpen
	// LinkMid is the "](" between a Markdown link's text and target.
	LinkMid
	// ParenClose is a single ')'.
	ParenClose
)

// Token is one lexed unit with its byte span in the input.
type Token struct {
	Cat    Category
	Lexeme string
	Offset int
	Line   int // 1-based
}

// Error reports a byte sequence that matches no token rule.
type Error struct {
	Offset int
	Line   int // 1-based
}

func (e *Error) Error() string {
	return fmt.Sprintf("no token rule matches input at offset %d (line %d)", e.Offset, e.Line)
}

// Rule maps a literal marker to its category. Tables are tried in order, so
// longer markers must precede their prefixes ("::=" before "::").
type Rule struct {
	Lexeme string
	Cat    Category
}

// Table is one dialect's syntax table.
type Table struct {
	Rules []Rule
}

// Lex tokenizes input against the table. Characters that start no rule are
// accumulated into text runs; control bytes other than tab, newline, and
// carriage return match no rule and yield an *Error.
func Lex(input string, table Table) ([]Token, error) {
	var toks []Token
	line := 1
	i := 0

	flushTextFrom := -1
	flushText := func(end int) {
		if flushTextFrom < 0 {
			return
		}
		toks = append(toks, Token{Cat: Text, Lexeme: input[flushTextFrom:end], Offset: flushTextFrom, Line: line})
		flushTextFrom = -1
	}

	for i < len(input) {
		ch := input[i]

		if ch == '\n' {
			flushText(i)
			toks = append(toks, Token{Cat: Newline, Lexeme: "\n", Offset: i, Line: line})
			line++
			i++
			continue
		}

		if ch == ' ' || ch == '\t' {
			flushText(i)
			start := i
			for i < len(input) && (input[i] == ' ' || input[i] == '\t') {
				i++
			}
			toks = append(toks, Token{Cat: Whitespace, Lexeme: input[start:i], Offset: start, Line: line})
			continue
		}

		if ch == '\\' && i+1 < len(input) {
			flushText(i)
			toks = append(toks, Token{Cat: Escape, Lexeme: input[i : i+2], Offset: i, Line: line})
			i += 2
			continue
		}

		if ch < 0x20 && ch != '\r' {
			return nil, &Error{Offset: i, Line: line}
		}

		if rule, ok := match(input, i, table); ok {
			flushText(i)
			toks = append(toks, Token{Cat: rule.Cat, Lexeme: rule.Lexeme, Offset: i, Line: line})
			i += len(rule.Lexeme)
			continue
		}

		if flushTextFrom < 0 {
			flushTextFrom = i
		}
		i++
	}
	flushText(len(input))

	return toks, nil
}

func match(input string, pos int, table Table) (Rule, bool) {
	rest := input[pos:]
	for _, r := range table.Rules {
		if len(r.Lexeme) <= len(rest) && rest[:len(r.Lexeme)] == r.Lexeme {
			return r, true
		}
	}
	return Rule{}, false
}

// Raw reconstructs the source text covered by a token slice.
func Raw(toks []Token) string {
	n := 0
	for _, t := range toks {
		n += len(t.Lexeme)
	}
	buf := make([]byte, 0, n)
	for _, t := range toks {
		buf = append(buf, t.Lexeme...)
	}
	return string(buf)
}
