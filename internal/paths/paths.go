// Package paths provides canonical helpers for vault-relative note paths.
package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathOutsideVault reports a path that escapes its vault root.
var ErrPathOutsideVault = errors.New("path is outside the vault")

// ValidateWithinVault verifies that path stays inside root after
// normalization. Both arguments may be relative; they are resolved against
// the current directory.
func ValidateWithinVault(root, path string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve vault root: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return ErrPathOutsideVault
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ErrPathOutsideVault
	}
	return nil
}

// NoteName returns the display name a note file is referenced by in links:
// the base name without the ".md" extension.
func NoteName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, ".md")
}

// NoteID converts a vault-relative note path to its canonical slash-form ID
// without the ".md" extension.
func NoteID(relPath string) string {
	id := filepath.ToSlash(relPath)
	id = strings.TrimPrefix(id, "./")
	return strings.TrimSuffix(id, ".md")
}
