// Package vault walks note collections and runs batch conversions over
// them. It is a consumer of the document tree API: per-file work is parse,
// transform, serialize; there is no cross-file ordering.
package vault

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/parser"
	"github.com/TobiasForner/pkmt-sub000/internal/paths"
	"github.com/TobiasForner/pkmt-sub000/internal/resolver"
)

// WalkResult is one note file handed to a walk handler.
type WalkResult struct {
	Path         string
	RelativePath string
	Document     *document.Document
	Error        error
}

// WalkNotes walks all ".md" files under root and calls handler for each.
// It skips hidden directories, only processes files verified to be within
// the vault, and parses each file in the given dialect. Read and parse
// failures are reported through the handler, not as a walk error.
func WalkNotes(root string, dialect document.Dialect, handler func(WalkResult) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			relativePath, _ := filepath.Rel(root, path)
			return handler(WalkResult{Path: path, RelativePath: relativePath, Error: err})
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, ".md") {
			return nil
		}

		if err := paths.ValidateWithinVault(root, path); err != nil {
			if errors.Is(err, paths.ErrPathOutsideVault) {
				return nil
			}
			relativePath, _ := filepath.Rel(root, path)
			return handler(WalkResult{Path: path, RelativePath: relativePath, Error: err})
		}

		relativePath, _ := filepath.Rel(root, path)

		content, err := os.ReadFile(path)
		if err != nil {
			return handler(WalkResult{Path: path, RelativePath: relativePath, Error: err})
		}

		doc, err := parser.Parse(string(content), dialect, parser.Options{
			Dir:      filepath.Dir(path),
			Resolver: resolver.OS{},
		})
		if err != nil {
			return handler(WalkResult{Path: path, RelativePath: relativePath, Error: err})
		}

		return handler(WalkResult{Path: path, RelativePath: relativePath, Document: doc})
	})
}
