package inbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestFetchOpenTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer secret")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "t1", "title": "First task"},
			{"id": "t2", "title": "Done task", "done": true},
			{"id": "t3", "title": "Third task", "url": "https://example.com/t3"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	tasks, err := client.FetchOpenTasks(context.Background())
	if err != nil {
		t.Fatalf("FetchOpenTasks failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != "t1" || tasks[1].ID != "t3" {
		t.Errorf("got tasks %q and %q, want t1 and t3", tasks[0].ID, tasks[1].ID)
	}
}

func TestFetchOpenTasksBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if _, err := client.FetchOpenTasks(context.Background()); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestPageTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>  Widget Spec </title></head><body>hi</body></html>`))
	}))
	defer srv.Close()

	client := NewClient("", "")
	title, err := client.PageTitle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("PageTitle failed: %v", err)
	}
	if title != "Widget Spec" {
		t.Errorf("title = %q, want %q", title, "Widget Spec")
	}
}

func TestPageTitleMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>no title here</body></html>`))
	}))
	defer srv.Close()

	client := NewClient("", "")
	title, err := client.PageTitle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("PageTitle failed: %v", err)
	}
	if title != "" {
		t.Errorf("title = %q, want empty", title)
	}
}

func TestFileDefaultTemplate(t *testing.T) {
	root := t.TempDir()
	filer := &Filer{
		VaultRoot: root,
		Dir:       "inbox",
		Dialect:   document.Logseq,
		Now:       fixedNow,
	}

	task := Task{
		ID:    "t1",
		Title: "Review the Widget Spec",
		URL:   "https://example.com/t1",
		Due:   "2025-06-15T14:00:00Z",
	}
	path, err := filer.File(task, "")
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}

	want := filepath.Join(root, "inbox", "review-the-widget-spec.md")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read note: %v", err)
	}
	got := string(data)
	for _, part := range []string{
		"- Review the Widget Spec",
		"task-id:: t1",
		"captured:: 2024-03-15",
		"source:: https://example.com/t1",
		"due:: 2025-06-15",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("note missing %q:\n%s", part, got)
		}
	}
}

func TestFileUsesTemplate(t *testing.T) {
	root := t.TempDir()
	tmpl := "- # {{title}}\n- captured on {{date}}\n\t- from {{url}}\n"
	if err := os.WriteFile(filepath.Join(root, "template.md"), []byte(tmpl), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	filer := &Filer{
		VaultRoot: root,
		Dir:       "inbox",
		Dialect:   document.Logseq,
		Template:  "template.md",
		Now:       fixedNow,
	}

	task := Task{ID: "t2", Title: "Fallback", URL: "https://example.com/t2"}
	path, err := filer.File(task, "Scraped Title")
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}

	if got := filepath.Base(path); got != "scraped-title.md" {
		t.Errorf("file name = %q, want %q", got, "scraped-title.md")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read note: %v", err)
	}
	got := string(data)
	for _, part := range []string{
		"# Scraped Title",
		"captured on 2024-03-15",
		"from https://example.com/t2",
		"task-id:: t2",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("note missing %q:\n%s", part, got)
		}
	}
}

func TestFileNameCollision(t *testing.T) {
	root := t.TempDir()
	filer := &Filer{
		VaultRoot: root,
		Dir:       "inbox",
		Dialect:   document.Logseq,
		Now:       fixedNow,
	}

	first, err := filer.File(Task{ID: "a", Title: "Same Name"}, "")
	if err != nil {
		t.Fatalf("first File failed: %v", err)
	}
	second, err := filer.File(Task{ID: "b", Title: "Same Name"}, "")
	if err != nil {
		t.Fatalf("second File failed: %v", err)
	}

	if first == second {
		t.Fatalf("both notes written to %q", first)
	}
	if !strings.HasPrefix(filepath.Base(second), "same-name-") {
		t.Errorf("second file name = %q, want same-name- prefix", filepath.Base(second))
	}
}

func TestRunSkipsFiledTasks(t *testing.T) {
	root := t.TempDir()

	// A note for t1 already exists in the vault.
	existing := "- old note\n  task-id:: t1\n"
	if err := os.MkdirAll(filepath.Join(root, "inbox"), 0o755); err != nil {
		t.Fatalf("failed to create inbox dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "inbox", "old.md"), []byte(existing), 0o644); err != nil {
		t.Fatalf("failed to write existing note: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": "t1", "title": "Already filed"},
			{"id": "t2", "title": "New task"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	filer := &Filer{
		VaultRoot: root,
		Dir:       "inbox",
		Dialect:   document.Logseq,
		Now:       fixedNow,
	}

	res, err := Run(context.Background(), client, filer)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
	if len(res.Filed) != 1 {
		t.Fatalf("Filed = %v, want one note", res.Filed)
	}
	if got := filepath.Base(res.Filed[0]); got != "new-task.md" {
		t.Errorf("filed note = %q, want %q", got, "new-task.md")
	}
}

func TestRunScrapesTitles(t *testing.T) {
	pages := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Scraped Page</title></head></html>`))
	}))
	defer pages.Close()

	tasks := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "t1", "title": "Fallback", "url": "` + pages.URL + `"}]`))
	}))
	defer tasks.Close()

	root := t.TempDir()
	client := NewClient(tasks.URL, "")
	filer := &Filer{
		VaultRoot: root,
		Dir:       "inbox",
		Dialect:   document.Logseq,
		Now:       fixedNow,
	}

	res, err := Run(context.Background(), client, filer)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Filed) != 1 {
		t.Fatalf("Filed = %v, want one note", res.Filed)
	}
	if got := filepath.Base(res.Filed[0]); got != "scraped-page.md" {
		t.Errorf("filed note = %q, want %q", got, "scraped-page.md")
	}
}
