package vault

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/TobiasForner/pkmt-sub000/internal/atomicfile"
	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/logger"
	"github.com/TobiasForner/pkmt-sub000/internal/parser"
	"github.com/TobiasForner/pkmt-sub000/internal/serializer"
)

// ConvertOptions configure a batch conversion run.
type ConvertOptions struct {
	// From is the dialect the source vault's notes are written in.
	From document.Dialect

	// To is the dialect written to the target root.
	To document.Dialect

	// TargetRoot is the directory the converted tree is mirrored into.
	// It may equal the source root for in-place conversion.
	TargetRoot string

	// ImageDir is passed through to the serializer for image-embed
	// rewriting in the logseq dialect.
	ImageDir string

	// DryRun parses and serializes but writes nothing.
	DryRun bool
}

// FileError is one file that failed during a batch conversion.
type FileError struct {
	RelativePath string
	Err          error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.RelativePath, e.Err)
}

// Summary reports what a batch conversion did.
type Summary struct {
	Converted []string
	Failed    []FileError
}

// Convert converts every note under root from one dialect to another,
// writing each result atomically to the mirrored path under the target
// root. Per-file errors are collected in the summary; only a failing walk
// itself is returned as an error.
func Convert(root string, opts ConvertOptions) (*Summary, error) {
	if !opts.From.Valid() {
		return nil, fmt.Errorf("convert: unknown source dialect %q", opts.From)
	}
	if !opts.To.Valid() {
		return nil, fmt.Errorf("convert: unknown target dialect %q", opts.To)
	}
	if opts.TargetRoot == "" {
		return nil, fmt.Errorf("convert: target root is required")
	}

	summary := &Summary{}
	log := logger.With("from", string(opts.From), "to", string(opts.To))

	err := WalkNotes(root, opts.From, func(result WalkResult) error {
		if result.Error != nil {
			log.Warn("skipping file", "file", result.RelativePath, "err", result.Error)
			summary.Failed = append(summary.Failed, FileError{
				RelativePath: result.RelativePath,
				Err:          result.Error,
			})
			return nil
		}

		out, err := serializer.Serialize(result.Document, opts.To, serializer.Options{
			ImageDir: opts.ImageDir,
		})
		if err != nil {
			summary.Failed = append(summary.Failed, FileError{
				RelativePath: result.RelativePath,
				Err:          err,
			})
			return nil
		}

		if !opts.DryRun {
			target := filepath.Join(opts.TargetRoot, result.RelativePath)
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				summary.Failed = append(summary.Failed, FileError{
					RelativePath: result.RelativePath,
					Err:          err,
				})
				return nil
			}
			if err := atomicfile.WriteFile(target, []byte(out), 0); err != nil {
				summary.Failed = append(summary.Failed, FileError{
					RelativePath: result.RelativePath,
					Err:          err,
				})
				return nil
			}
		}

		log.Debug("converted", "file", result.RelativePath)
		summary.Converted = append(summary.Converted, result.RelativePath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault %s: %w", root, err)
	}

	return summary, nil
}

// ConvertFile converts a single note file and returns the serialized text
// without writing it.
func ConvertFile(path string, from, to document.Dialect, imageDir string) (string, error) {
	doc, err := parser.ParseFile(path, from)
	if err != nil {
		return "", err
	}
	return serializer.Serialize(doc, to, serializer.Options{ImageDir: imageDir})
}
