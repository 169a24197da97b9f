// Package dates provides canonical date parsing shared by the inbox and
// the CLI.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// datetimeLayouts are tried in order by ParseDatetime.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// IsValidDate checks if a string is a valid YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if !dayPattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(dayLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return time.Parse(dayLayout, s)
}

// ParseDatetime parses a datetime in RFC3339, YYYY-MM-DDTHH:MM, or
// YYYY-MM-DDTHH:MM:SS form.
func ParseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("invalid datetime: empty")
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime: %q", s)
}

// NormalizeDay reduces a date or datetime string to YYYY-MM-DD. Strings
// that parse as neither are returned unchanged.
func NormalizeDay(s string) string {
	if t, err := ParseDate(s); err == nil {
		return t.Format(dayLayout)
	}
	if t, err := ParseDatetime(s); err == nil {
		return t.Format(dayLayout)
	}
	return s
}
