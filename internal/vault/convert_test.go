package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
)

func writeNote(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkNotes(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "a.md", "- one\n")
	writeNote(t, root, "sub/b.md", "- two\n")
	writeNote(t, root, "ignored.txt", "not a note")
	writeNote(t, root, ".hidden/c.md", "- skipped\n")

	var seen []string
	err := WalkNotes(root, document.Logseq, func(r WalkResult) error {
		if r.Error != nil {
			t.Errorf("unexpected file error for %s: %v", r.RelativePath, r.Error)
			return nil
		}
		seen = append(seen, filepath.ToSlash(r.RelativePath))
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected walk error: %v", err)
	}

	want := map[string]bool{"a.md": true, "sub/b.md": true}
	if len(seen) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), seen)
	}
	for _, rel := range seen {
		if !want[rel] {
			t.Errorf("unexpected file %q", rel)
		}
	}
}

func TestWalkNotesReportsParseErrors(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "bad.md", "- [[unterminated\n")

	var failed []string
	err := WalkNotes(root, document.Logseq, func(r WalkResult) error {
		if r.Error != nil {
			failed = append(failed, r.RelativePath)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected walk error: %v", err)
	}
	if len(failed) != 1 || failed[0] != "bad.md" {
		t.Errorf("expected bad.md to fail, got %v", failed)
	}
}

func TestConvert(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeNote(t, src, "note.md", "- task\n  status:: done\n")
	writeNote(t, src, "sub/deep.md", "- parent\n\t- child\n")

	summary, err := Convert(src, ConvertOptions{
		From:       document.Logseq,
		To:         document.ZK,
		TargetRoot: dst,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Failed) != 0 {
		t.Fatalf("unexpected failures: %v", summary.Failed)
	}
	if len(summary.Converted) != 2 {
		t.Fatalf("expected 2 conversions, got %v", summary.Converted)
	}

	data, err := os.ReadFile(filepath.Join(dst, "note.md"))
	if err != nil {
		t.Fatal(err)
	}
	want := "- task\n  status ::= done\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, string(data))
	}

	if _, err := os.Stat(filepath.Join(dst, "sub", "deep.md")); err != nil {
		t.Errorf("expected mirrored nested path: %v", err)
	}
}

func TestConvertCollectsPerFileErrors(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeNote(t, src, "good.md", "- fine\n")
	writeNote(t, src, "bad.md", "- {{embed [[broken\n")

	summary, err := Convert(src, ConvertOptions{
		From:       document.Logseq,
		To:         document.Logseq,
		TargetRoot: dst,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Converted) != 1 || summary.Converted[0] != "good.md" {
		t.Errorf("expected only good.md converted, got %v", summary.Converted)
	}
	if len(summary.Failed) != 1 || summary.Failed[0].RelativePath != "bad.md" {
		t.Errorf("expected bad.md to fail, got %v", summary.Failed)
	}
}

func TestConvertDryRunWritesNothing(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeNote(t, src, "note.md", "- x\n")

	summary, err := Convert(src, ConvertOptions{
		From:       document.Logseq,
		To:         document.Obsidian,
		TargetRoot: dst,
		DryRun:     true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Converted) != 1 {
		t.Fatalf("expected 1 conversion, got %v", summary.Converted)
	}
	if _, err := os.Stat(filepath.Join(dst, "note.md")); !os.IsNotExist(err) {
		t.Error("expected no file to be written in dry run")
	}
}

func TestConvertValidatesDialects(t *testing.T) {
	if _, err := Convert(t.TempDir(), ConvertOptions{From: "org", To: document.ZK, TargetRoot: t.TempDir()}); err == nil {
		t.Error("expected error for unknown source dialect")
	}
	if _, err := Convert(t.TempDir(), ConvertOptions{From: document.ZK, To: document.ZK}); err == nil {
		t.Error("expected error for missing target root")
	}
}
