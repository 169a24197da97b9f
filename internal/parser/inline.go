package parser

import (
	"strings"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/lexer"
	"github.com/TobiasForner/pkmt-sub000/internal/resolver"
)

// inlineParser re-tokenizes one block's content and extracts the inline
// constructs: headings, links, embeds, admonitions, code fences, and
// property declarations. Ordinary prose stays as text runs with their
// newlines intact, so serializing a block is plain concatenation of its
// element renders.
type inlineParser struct {
	dialect document.Dialect
	opts    Options
	toks    []lexer.Token
	i       int

	comps []*document.Component
	props []*document.Property
	text  strings.Builder
}

// parseBlockContent parses the dedented content of one outline block.
func parseBlockContent(content string, dialect document.Dialect, opts Options) ([]*document.Component, []*document.Property, error) {
	table, _ := lexer.TableFor(string(dialect))
	toks, err := lexer.Lex(content, table)
	if err != nil {
		return nil, nil, err
	}

	p := &inlineParser{dialect: dialect, opts: opts, toks: toks}
	if err := p.run(); err != nil {
		return nil, nil, err
	}
	return p.comps, p.props, nil
}

func (p *inlineParser) run() error {
	p.parseLeadingHeading()

	startOfLine := p.i == 0
	for !p.atEnd() {
		tok := p.peek()

		if startOfLine {
			switch tok.Cat {
			case lexer.QuoteBegin:
				if err := p.parseAdmonition(); err != nil {
					return err
				}
				continue
			case lexer.Fence:
				if err := p.parseCodeBlock(); err != nil {
					return err
				}
				continue
			case lexer.Text:
				if p.tryParseProperty() {
					continue
				}
			}
		}

		switch tok.Cat {
		case lexer.Newline:
			p.text.WriteByte('\n')
			p.i++
			startOfLine = true
			continue
		case lexer.LinkOpen:
			if err := p.parseLink(false); err != nil {
				return err
			}
		case lexer.EmbedOpen:
			if err := p.parseLink(true); err != nil {
				return err
			}
		case lexer.MacroOpen:
			if err := p.parseMacroEmbed(); err != nil {
				return err
			}
		case lexer.BracketOpen:
			if !p.tryMdLink() {
				p.text.WriteString(tok.Lexeme)
				p.i++
			}
		default:
			p.text.WriteString(tok.Lexeme)
			p.i++
		}
		startOfLine = false
	}

	p.flushText()
	return nil
}

// parseLeadingHeading consumes '#' markers at the very start of the block.
// The markers must be followed by whitespace or the end of the line so that
// inline tags are not mistaken for headings.
func (p *inlineParser) parseLeadingHeading() {
	if p.i != 0 {
		return
	}
	level := 0
	j := p.i
	for j < len(p.toks) && p.toks[j].Cat == lexer.HeadingMark {
		level++
		j++
	}
	if level == 0 {
		return
	}
	if j < len(p.toks) {
		switch p.toks[j].Cat {
		case lexer.Whitespace, lexer.Newline:
		default:
			return
		}
	}

	p.i = j
	title := strings.TrimSpace(p.rawUntilNewline())
	p.emit(&document.Heading{Level: level, Text: title})
}

// parseLink consumes "[[" or "![[" through "]]" on the same line.
func (p *inlineParser) parseLink(embed bool) error {
	open := p.peek()
	p.i++

	var inner strings.Builder
	for {
		if p.atEnd() || p.peek().Cat == lexer.Newline {
			return &MissingTokenError{Expected: "]]", Offset: p.offset()}
		}
		tok := p.peek()
		p.i++
		if tok.Cat == lexer.LinkClose {
			break
		}
		inner.WriteString(tok.Lexeme)
	}

	name, section, rename := splitLinkInner(inner.String())
	target := p.resolve(name)
	if embed || open.Cat == lexer.EmbedOpen {
		p.emit(&document.FileEmbed{Target: target, Section: section})
	} else {
		p.emit(&document.FileLink{Target: target, Section: section, Rename: rename})
	}
	return nil
}

// parseMacroEmbed consumes a "{{embed [[target]]}}" macro.
func (p *inlineParser) parseMacroEmbed() error {
	p.i++ // {{embed
	p.skipSpaces()
	if p.atEnd() || p.peek().Cat != lexer.LinkOpen {
		return &MissingTokenError{Expected: "[[", Offset: p.offset()}
	}

	p.i++
	var inner strings.Builder
	for {
		if p.atEnd() || p.peek().Cat == lexer.Newline {
			return &MissingTokenError{Expected: "]]", Offset: p.offset()}
		}
		tok := p.peek()
		p.i++
		if tok.Cat == lexer.LinkClose {
			break
		}
		inner.WriteString(tok.Lexeme)
	}

	p.skipSpaces()
	if p.atEnd() || p.peek().Cat != lexer.MacroClose {
		return &MissingTokenError{Expected: "}}", Offset: p.offset()}
	}
	p.i++

	name, section, _ := splitLinkInner(inner.String())
	p.emit(&document.FileEmbed{Target: p.resolve(name), Section: section})
	return nil
}

// parseCodeBlock consumes a fenced code block. The text on the opening
// fence line, if any, becomes the language tag.
func (p *inlineParser) parseCodeBlock() error {
	p.i++ // opening fence
	language := strings.TrimSpace(p.rawUntilNewline())
	p.consumeNewline()

	var lines []string
	for {
		if p.atEnd() {
			return &MissingTokenError{Expected: "```", Offset: p.offset()}
		}
		if p.peek().Cat == lexer.Fence {
			p.i++
			break
		}
		lines = append(lines, p.rawUntilNewline())
		p.consumeNewline()
	}

	// The Obsidian admonition plugin overloads the fence syntax.
	if strings.HasPrefix(language, "ad-") {
		ad, err := buildAdmonition(lines, p.dialect, p.opts)
		if err != nil {
			return err
		}
		p.emit(ad)
		return nil
	}

	p.emit(&document.CodeBlock{Body: strings.Join(lines, "\n"), Language: language})
	return nil
}

// parseAdmonition consumes a "#+BEGIN_QUOTE" ... "#+END_QUOTE" block. A
// leading bold line or a "title: " line becomes the title property, a
// "color: " line the color property; other property-looking lines are
// dropped. The remaining body is parsed as a nested document in the same
// dialect.
func (p *inlineParser) parseAdmonition() error {
	p.i++ // #+BEGIN_QUOTE
	p.rawUntilNewline()
	p.consumeNewline()

	var lines []string
	closed := false
	for !p.atEnd() {
		if p.peek().Cat == lexer.QuoteEnd {
			p.i++
			closed = true
			break
		}
		lines = append(lines, p.rawUntilNewline())
		p.consumeNewline()
	}
	if !closed {
		return &MissingTokenError{Expected: "#+END_QUOTE", Offset: p.offset()}
	}

	ad, err := buildAdmonition(lines, p.dialect, p.opts)
	if err != nil {
		return err
	}
	p.emit(ad)
	return nil
}

// buildAdmonition extracts the title/color properties from admonition body
// lines and recursively parses the rest as a nested document in the same
// dialect. A leading "**bold**" line counts as the title so a serialized
// admonition parses back to the same tree. Properties other than title and
// color are dropped.
func buildAdmonition(lines []string, dialect document.Dialect, opts Options) (*document.Admonition, error) {
	props := make(map[string]string)
	var body []string
	for idx, line := range lines {
		if idx == 0 {
			if title, ok := boldTitle(line); ok {
				props["title"] = title
				continue
			}
		}
		if v, ok := strings.CutPrefix(line, "title: "); ok {
			props["title"] = v
			continue
		}
		if v, ok := strings.CutPrefix(line, "color: "); ok {
			props["color"] = v
			continue
		}
		body = append(body, line)
	}

	var sub *document.Document
	var err error
	if dialect == document.Obsidian {
		sub, err = parseMarkdown(strings.Join(body, "\n"), opts)
	} else {
		sub, err = parseOutline(strings.Join(body, "\n"), dialect, opts)
	}
	if err != nil {
		return nil, err
	}
	return &document.Admonition{Body: sub.IntoComponents(), Props: props}, nil
}

// tryMdLink parses a Markdown "[text](target)" link at a '[' token. A '['
// that does not complete the pattern on the same line is not an error; it
// stays ordinary text and the cursor is left untouched.
func (p *inlineParser) tryMdLink() bool {
	save := p.i
	p.i++ // [

	var display strings.Builder
	mid := false
	for !p.atEnd() && p.peek().Cat != lexer.Newline {
		tok := p.peek()
		if tok.Cat == lexer.LinkMid {
			p.i++
			mid = true
			break
		}
		if tok.Cat == lexer.BracketOpen || tok.Cat == lexer.LinkOpen || tok.Cat == lexer.EmbedOpen {
			break
		}
		display.WriteString(tok.Lexeme)
		p.i++
	}
	if !mid {
		p.i = save
		return false
	}

	var targetRaw strings.Builder
	closed := false
	for !p.atEnd() && p.peek().Cat != lexer.Newline {
		tok := p.peek()
		p.i++
		if tok.Cat == lexer.ParenClose {
			closed = true
			break
		}
		targetRaw.WriteString(tok.Lexeme)
	}
	if !closed {
		p.i = save
		return false
	}

	name := targetRaw.String()
	section := ""
	if idx := strings.IndexByte(name, '#'); idx >= 0 {
		section = name[idx+1:]
		name = name[:idx]
	}
	name = strings.TrimSuffix(name, ".md")

	target := p.resolve(name)
	rename := display.String()
	if rename == target.DisplayName() {
		rename = ""
	}
	p.emit(&document.FileLink{Target: target, Section: section, Rename: rename})
	return true
}

// tryParseProperty recognizes "name:: value" / "name::= value" at the
// start of a line and consumes the whole line including its trailing
// newline. Returns false when the line is not a property declaration.
func (p *inlineParser) tryParseProperty() bool {
	j := p.i
	name := p.toks[j].Lexeme
	if !validPropertyName(name) {
		return false
	}
	j++
	// A single space before the delimiter is tolerated; it is what the zk
	// serializer emits.
	if j < len(p.toks) && p.toks[j].Cat == lexer.Whitespace && p.toks[j].Lexeme == " " {
		j++
	}
	if j >= len(p.toks) || p.toks[j].Cat != lexer.PropertyMark {
		return false
	}
	j++

	p.i = j
	raw := p.rawUntilNewline()
	p.consumeNewline()
	raw = strings.TrimPrefix(raw, " ")

	prop := parsePropertyValue(name, raw, p.opts)
	p.props = append(p.props, prop)
	return true
}

func validPropertyName(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.':
		default:
			return false
		}
	}
	return true
}

// boldTitle matches a "**title**" line.
func boldTitle(line string) (string, bool) {
	if len(line) < 5 || !strings.HasPrefix(line, "**") || !strings.HasSuffix(line, "**") {
		return "", false
	}
	inner := line[2 : len(line)-2]
	if inner == "" || strings.Contains(inner, "\n") {
		return "", false
	}
	return inner, true
}

// splitLinkInner splits the text between link delimiters into target name,
// optional "#section", and optional "|rename".
func splitLinkInner(inner string) (name, section, rename string) {
	left := inner
	if idx := strings.IndexByte(inner, '|'); idx >= 0 {
		left = inner[:idx]
		rename = inner[idx+1:]
	}
	name = left
	if idx := strings.IndexByte(left, '#'); idx >= 0 {
		name = left[:idx]
		section = left[idx+1:]
	}
	return name, section, rename
}

func (p *inlineParser) resolve(name string) document.MentionedFile {
	return resolveMention(name, p.opts)
}

// resolveMention resolves a target name against the parse options' file
// context. Detached parses fall back to resolver.None. Unresolvable
// references are not an error: the mention stays in its name form.
func resolveMention(name string, opts Options) document.MentionedFile {
	res := opts.Resolver
	if res == nil {
		res = resolver.None{}
	}
	if path, ok := res.Resolve(opts.Dir, name); ok {
		return document.FileByPath(path)
	}
	return document.FileByName(name)
}

func (p *inlineParser) atEnd() bool {
	return p.i >= len(p.toks)
}

func (p *inlineParser) peek() lexer.Token {
	return p.toks[p.i]
}

func (p *inlineParser) offset() int {
	if p.atEnd() {
		if len(p.toks) == 0 {
			return 0
		}
		last := p.toks[len(p.toks)-1]
		return last.Offset + len(last.Lexeme)
	}
	return p.toks[p.i].Offset
}

// rawUntilNewline reconstructs the raw text from the cursor to the end of
// the current line; the newline itself is not consumed.
func (p *inlineParser) rawUntilNewline() string {
	var b strings.Builder
	for !p.atEnd() && p.peek().Cat != lexer.Newline {
		b.WriteString(p.peek().Lexeme)
		p.i++
	}
	return b.String()
}

func (p *inlineParser) consumeNewline() {
	if !p.atEnd() && p.peek().Cat == lexer.Newline {
		p.i++
	}
}

func (p *inlineParser) skipSpaces() {
	for !p.atEnd() && p.peek().Cat == lexer.Whitespace {
		p.i++
	}
}

func (p *inlineParser) flushText() {
	if p.text.Len() == 0 {
		return
	}
	p.comps = append(p.comps, document.NewComponent(&document.Text{Raw: p.text.String()}))
	p.text.Reset()
}

func (p *inlineParser) emit(el document.Element) {
	p.flushText()
	p.comps = append(p.comps, document.NewComponent(el))
}
