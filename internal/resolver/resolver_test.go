package resolver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOSResolve(t *testing.T) {
	dir := t.TempDir()
	notePath := filepath.Join(dir, "note.md")
	if err := os.WriteFile(notePath, []byte("- x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("appends md extension", func(t *testing.T) {
		path, ok := OS{}.Resolve(dir, "note")
		if !ok {
			t.Fatal("expected resolution")
		}
		if filepath.Base(path) != "note.md" {
			t.Errorf("got %q", path)
		}
		if !filepath.IsAbs(path) {
			t.Errorf("expected absolute path, got %q", path)
		}
	})

	t.Run("exact name first", func(t *testing.T) {
		path, ok := OS{}.Resolve(dir, "note.md")
		if !ok || filepath.Base(path) != "note.md" {
			t.Errorf("got %q ok=%v", path, ok)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		if _, ok := (OS{}).Resolve(dir, "absent"); ok {
			t.Error("expected no resolution")
		}
	})

	t.Run("empty context", func(t *testing.T) {
		if _, ok := (OS{}).Resolve("", "note"); ok {
			t.Error("expected no resolution without a directory")
		}
	})
}

func TestStaticResolve(t *testing.T) {
	s := Static{"a": "/vault/a.md"}
	if p, ok := s.Resolve("/anywhere", "a"); !ok || p != "/vault/a.md" {
		t.Errorf("got %q ok=%v", p, ok)
	}
	if _, ok := s.Resolve("/anywhere", "b"); ok {
		t.Error("expected miss")
	}
}

func TestNoneResolve(t *testing.T) {
	if _, ok := (None{}).Resolve("/dir", "name"); ok {
		t.Error("expected no resolution")
	}
}
