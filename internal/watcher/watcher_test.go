package watcher

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/index"
)

func newTestWatcher(t *testing.T) (*Watcher, *index.Database, string) {
	t.Helper()
	root := t.TempDir()
	db, err := index.Open(root)
	if err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	w, err := New(Config{
		VaultPath: root,
		Dialect:   document.Logseq,
		Database:  db,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return w, db, root
}

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for empty config")
	}
	if _, err := New(Config{VaultPath: "/tmp/x", Dialect: "org"}); err == nil {
		t.Error("expected error for unknown dialect")
	}
}

func TestReindexFileUpdatesIndex(t *testing.T) {
	w, db, root := newTestWatcher(t)

	path := filepath.Join(root, "note.md")
	if err := os.WriteFile(path, []byte("- see [[alpha]]\n"), 0o644); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}

	if err := w.ReindexFile(path); err != nil {
		t.Fatalf("ReindexFile failed: %v", err)
	}

	names, err := db.Mentions("note.md")
	if err != nil {
		t.Fatalf("Mentions failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"alpha"}) {
		t.Errorf("mentions = %v, want [alpha]", names)
	}

	// A second pass replaces the entry instead of duplicating it.
	if err := os.WriteFile(path, []byte("- see [[beta]]\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite note: %v", err)
	}
	if err := w.ReindexFile(path); err != nil {
		t.Fatalf("second ReindexFile failed: %v", err)
	}
	names, err = db.Mentions("note.md")
	if err != nil {
		t.Fatalf("Mentions after rewrite failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"beta"}) {
		t.Errorf("mentions after rewrite = %v, want [beta]", names)
	}
}

func TestReindexFileSkipsNonNotes(t *testing.T) {
	w, db, root := newTestWatcher(t)

	path := filepath.Join(root, "image.png")
	if err := os.WriteFile(path, []byte("not markdown"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := w.ReindexFile(path); err != nil {
		t.Fatalf("ReindexFile on non-note failed: %v", err)
	}
	if _, err := db.Mentions("image.png"); err == nil {
		t.Error("expected non-note to stay out of the index")
	}
}

func TestRemoveFromIndex(t *testing.T) {
	w, db, root := newTestWatcher(t)

	path := filepath.Join(root, "note.md")
	if err := os.WriteFile(path, []byte("- see [[alpha]]\n"), 0o644); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}
	if err := w.ReindexFile(path); err != nil {
		t.Fatalf("ReindexFile failed: %v", err)
	}

	if err := w.RemoveFromIndex(path); err != nil {
		t.Fatalf("RemoveFromIndex failed: %v", err)
	}
	if _, err := db.Mentions("note.md"); err == nil {
		t.Error("expected note to be gone from the index")
	}
}

func TestShouldIgnore(t *testing.T) {
	w, _, root := newTestWatcher(t)

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "note.md"), false},
		{filepath.Join(root, "sub", "note.md"), false},
		{filepath.Join(root, ".git", "config"), true},
		{filepath.Join(root, ".pkmt", "index.db"), true},
		{filepath.Join(root, "sub", ".obsidian", "x.md"), true},
		{"/outside/note.md", true},
	}
	for _, tt := range tests {
		if got := w.shouldIgnore(tt.path); got != tt.want {
			t.Errorf("shouldIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
