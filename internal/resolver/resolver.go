// Package resolver turns mention names into canonical filesystem paths.
//
// Link resolution is the only filesystem access the parsing pipeline
// performs, so it lives behind a small capability interface that tests can
// stub without touching disk.
package resolver

import (
	"os"
	"path/filepath"
)

// Resolver resolves a link target name against a file-context directory.
type Resolver interface {
	// Resolve returns the canonical absolute path for name relative to dir,
	// or ok=false when the target does not exist.
	Resolve(dir, name string) (path string, ok bool)
}

// OS resolves mentions against the real filesystem. A name is tried as
// written first, then with a ".md" extension appended.
type OS struct{}

// Resolve implements Resolver.
func (OS) Resolve(dir, name string) (string, bool) {
	if dir == "" || name == "" {
		return "", false
	}
	for _, candidate := range []string{name, name + ".md"} {
		p := filepath.Join(dir, candidate)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if canonical, err := filepath.EvalSymlinks(abs); err == nil {
			return canonical, true
		}
		return abs, true
	}
	return "", false
}

// Static resolves from a fixed name-to-path map, ignoring the directory.
// It exists for tests and for callers that already indexed their vault.
type Static map[string]string

// Resolve implements Resolver.
func (s Static) Resolve(dir, name string) (string, bool) {
	p, ok := s[name]
	return p, ok
}

// None never resolves. It is the resolver used for detached parses.
type None struct{}

// Resolve implements Resolver.
func (None) Resolve(dir, name string) (string, bool) {
	return "", false
}
