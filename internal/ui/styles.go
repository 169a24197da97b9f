// Package ui provides terminal styling and rendering for the CLI.
package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple #A78BFA by default, configurable): paths, highlights
// - Muted (gray): secondary info, hints
// - No colored success/error/warning; unicode symbols only

const defaultAccentColor = "#A78BFA"

var (
	// Accent style for file paths and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor)).Bold(true)
)

// accentColor is the active accent, nil when accent coloring is disabled.
var accentColor *string

func init() {
	c := defaultAccentColor
	accentColor = &c
}

var (
	hexColorRe  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	ansiColorRe = regexp.MustCompile(`^[0-9]{1,3}$`)
)

// normalizeAccentColor validates a configured accent color. Accepts hex
// colors ("#A78BFA") and ANSI 256 color numbers ("39"). Returns false for
// anything else, including the special value "none".
func normalizeAccentColor(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if hexColorRe.MatchString(s) {
		return strings.ToUpper(s), true
	}
	if ansiColorRe.MatchString(s) {
		return s, true
	}
	return "", false
}

// ConfigureTheme applies the configured accent color to the shared styles.
// "none" disables accent coloring; invalid values keep the default.
func ConfigureTheme(accent string) {
	s := strings.TrimSpace(accent)
	if s == "" {
		return
	}
	if strings.EqualFold(s, "none") {
		accentColor = nil
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	color, ok := normalizeAccentColor(s)
	if !ok {
		return
	}
	accentColor = &color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the active accent color and whether accent coloring
// is enabled.
func AccentColor() (string, bool) {
	if accentColor == nil {
		return "", false
	}
	return *accentColor, true
}
