package document

import (
	"path/filepath"
	"strings"
)

// MentionedFile is a file referenced by a link or embed.
//
// A mention starts out as an unresolved display name. When a file context is
// available at parse time and the target exists on disk, it is resolved to a
// canonical absolute path. Resolution is monotonic: once a mention carries a
// path it never reverts to a bare name.
type MentionedFile struct {
	name string
	path string // canonical absolute path, empty while unresolved
}

// FileByName creates an unresolved mention.
func FileByName(name string) MentionedFile {
	return MentionedFile{name: name}
}

// FileByPath creates a mention that is already resolved to a canonical path.
func FileByPath(path string) MentionedFile {
	return MentionedFile{path: path}
}

// Resolved reports whether the mention carries a canonical path.
func (m MentionedFile) Resolved() bool {
	return m.path != ""
}

// Name returns the name the mention was written with. Empty for mentions
// constructed directly from a path.
func (m MentionedFile) Name() string {
	return m.name
}

// Path returns the canonical path and whether the mention is resolved.
func (m MentionedFile) Path() (string, bool) {
	return m.path, m.path != ""
}

// Resolve attaches a canonical path to the mention. It is a no-op if the
// mention is already resolved or path is empty.
func (m *MentionedFile) Resolve(path string) {
	if m.path != "" || path == "" {
		return
	}
	m.path = path
}

// DisplayName returns the file-name-only form used for mention collection:
// the base name without extension for resolved mentions, the written name
// otherwise.
func (m MentionedFile) DisplayName() string {
	if m.path == "" {
		return m.name
	}
	base := filepath.Base(m.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// String returns the form used when the mention is written back out: the
// canonical path when resolved, the original name otherwise.
func (m MentionedFile) String() string {
	if m.path != "" {
		return m.path
	}
	return m.name
}
