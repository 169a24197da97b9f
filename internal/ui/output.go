package ui

import "fmt"

// Status symbols. Success and failure are marked with symbols rather than
// colors so output stays readable on any palette.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
)

func status(symbol, format string, args ...interface{}) string {
	return symbol + " " + fmt.Sprintf(format, args...)
}

// Success marks a message with the success symbol.
func Success(msg string) string {
	return status(SymbolSuccess, "%s", msg)
}

// Successf is Success with formatting.
func Successf(format string, args ...interface{}) string {
	return status(SymbolSuccess, format, args...)
}

// Error marks a message with the failure symbol.
func Error(msg string) string {
	return status(SymbolError, "%s", msg)
}

// Errorf is Error with formatting.
func Errorf(format string, args ...interface{}) string {
	return status(SymbolError, format, args...)
}

// Warningf marks a formatted message with the warning symbol.
func Warningf(format string, args ...interface{}) string {
	return status(SymbolWarning, format, args...)
}

// Header styles a section header.
func Header(msg string) string {
	return Bold.Render(msg)
}

// FilePath styles a file path with the accent color.
func FilePath(path string) string {
	return Accent.Render(path)
}

// Hint styles secondary hint text.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count formats a count badge like "(3 errors)", choosing the singular or
// plural noun.
func Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return fmt.Sprintf("(%d %s)", n, noun)
}
