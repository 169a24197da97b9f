package parser

import "strings"

// rawBlock is one dash-anchored range of an outline document, dedented to
// its own content with the indentation depth recorded separately.
type rawBlock struct {
	content string
	depth   int
	bare    bool // text before the first dash boundary; no marker was stripped
}

// indentUnit is the number of space-equivalent columns per nesting level.
// Tabs normalize to one full unit.
const indentUnit = 4

// splitBlocks partitions outline text into dash-anchored blocks.
//
// A boundary is every "(start-of-text | newline) + optional indent + dash"
// where the dash is followed by whitespace, a newline, or end-of-text. The
// ranges between consecutive boundaries become blocks; leading blank lines
// of a range are stripped, the indentation depth is the count of complete
// 4-space units before the dash, and the content starts after the dash and
// one following space.
//
// Text before the first boundary (after frontmatter handling) becomes a
// single bare block at the depth of its own indentation.
func splitBlocks(text string) []rawBlock {
	boundaries := blockBoundaries(text)

	var blocks []rawBlock
	if len(boundaries) == 0 || boundaries[0] > 0 {
		end := len(text)
		last := true
		if len(boundaries) > 0 {
			end = boundaries[0]
			last = false
		}
		if b, ok := bareBlock(text[:end], last); ok {
			blocks = append(blocks, b)
		}
	}

	for i, start := range boundaries {
		end := len(text)
		raw := text[start:end]
		if i+1 < len(boundaries) {
			end = boundaries[i+1]
			// The newline before the next boundary separates the blocks; it
			// is not part of this block's content.
			raw = strings.TrimSuffix(text[start:end], "\n")
		}
		blocks = append(blocks, dashBlock(raw))
	}
	return blocks
}

// blockBoundaries returns the byte offsets where dash blocks begin.
func blockBoundaries(text string) []int {
	var out []int
	atLineStart := true
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if atLineStart {
			j := i
			for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
			if j < len(text) && text[j] == '-' && isBlockMarker(text, j) {
				out = append(out, i)
				i = j
				atLineStart = false
				continue
			}
		}
		atLineStart = ch == '\n'
	}
	return out
}

// isBlockMarker reports whether the dash at position i opens a block: it
// must be followed by whitespace, a newline, or end-of-text.
func isBlockMarker(text string, i int) bool {
	if i+1 >= len(text) {
		return true
	}
	next := text[i+1]
	return next == ' ' || next == '\t' || next == '\n'
}

// dashBlock dedents one dash-anchored range into a rawBlock.
func dashBlock(raw string) rawBlock {
	raw = stripLeadingBlankLines(raw)

	// Indentation depth before the dash.
	i := 0
	cols := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
		if raw[i] == '\t' {
			cols += indentUnit
		} else {
			cols++
		}
		i++
	}
	depth := cols / indentUnit

	// Skip the dash and exactly one following space.
	if i < len(raw) && raw[i] == '-' {
		i++
		if i < len(raw) && raw[i] == ' ' {
			i++
		}
	}

	lines := strings.Split(raw[i:], "\n")
	for k := 1; k < len(lines); k++ {
		lines[k] = stripColumns(lines[k], cols+2)
	}
	content := strings.Join(lines, "\n")

	return rawBlock{content: content, depth: depth}
}

// bareBlock builds the block for text preceding the first dash boundary.
// Returns ok=false when the range is blank.
func bareBlock(raw string, last bool) (rawBlock, bool) {
	raw = stripLeadingBlankLines(raw)
	if strings.TrimSpace(raw) == "" {
		return rawBlock{}, false
	}
	if !last {
		raw = strings.TrimSuffix(raw, "\n")
	}
	return rawBlock{content: raw, depth: 0, bare: true}, true
}

func stripLeadingBlankLines(s string) string {
	for {
		nl := strings.IndexByte(s, '\n')
		if nl < 0 {
			return s
		}
		if strings.TrimSpace(s[:nl]) != "" {
			return s
		}
		s = s[nl+1:]
	}
}

// stripColumns removes up to cols columns of leading whitespace from a
// continuation line. A tab counts as a full indent unit; a tab that
// overshoots the remaining columns is still consumed.
func stripColumns(line string, cols int) string {
	i := 0
	for i < len(line) && cols > 0 {
		switch line[i] {
		case ' ':
			cols--
		case '\t':
			cols -= indentUnit
		default:
			return line[i:]
		}
		i++
	}
	return line[i:]
}
