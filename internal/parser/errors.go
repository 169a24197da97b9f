package parser

import "fmt"

// MissingTokenError reports a construct whose required closing delimiter was
// never found (unterminated link, fence, or admonition). Offset is the byte
// position where scanning stopped, relative to the unit being parsed.
type MissingTokenError struct {
	Expected string
	Offset   int
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("required token %q not found (scanning stopped at offset %d)", e.Expected, e.Offset)
}

// ParseError wraps any failure while parsing one unit of text, tagged with
// the dialect that was being parsed.
type ParseError struct {
	Dialect string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Dialect, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
