// Package watcher keeps the mention index current while a vault is being
// edited: it watches the vault tree and reindexes changed notes after a
// debounce delay.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/index"
	"github.com/TobiasForner/pkmt-sub000/internal/logger"
	"github.com/TobiasForner/pkmt-sub000/internal/parser"
)

const flushInterval = 50 * time.Millisecond

// Watcher monitors a vault directory and keeps the mention index in sync.
type Watcher struct {
	vaultPath string
	dialect   document.Dialect
	db        *index.Database
	debounce  time.Duration

	fsWatcher *fsnotify.Watcher

	mu    sync.Mutex
	dirty map[string]time.Time // path -> earliest reindex time

	// onReindex, when set, is called after every attempted reindex.
	onReindex func(relPath string, err error)
}

// Config holds configuration options for the Watcher.
type Config struct {
	VaultPath     string
	Dialect       document.Dialect
	Database      *index.Database
	DebounceDelay time.Duration // default 100ms
	OnReindex     func(relPath string, err error)
}

// New creates a Watcher.
func New(cfg Config) (*Watcher, error) {
	switch {
	case cfg.VaultPath == "":
		return nil, fmt.Errorf("vault path is required")
	case cfg.Database == nil:
		return nil, fmt.Errorf("database is required")
	case !cfg.Dialect.Valid():
		return nil, fmt.Errorf("unknown dialect %q", cfg.Dialect)
	}

	w := &Watcher{
		vaultPath: cfg.VaultPath,
		dialect:   cfg.Dialect,
		db:        cfg.Database,
		debounce:  cfg.DebounceDelay,
		dirty:     make(map[string]time.Time),
		onReindex: cfg.OnReindex,
	}
	if w.debounce == 0 {
		w.debounce = 100 * time.Millisecond
	}
	return w, nil
}

// Start watches the vault until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()
	w.fsWatcher = fw

	if err := w.watchTree(w.vaultPath); err != nil {
		return fmt.Errorf("failed to watch vault: %w", err)
	}
	logger.Debug("watching vault", "path", w.vaultPath)

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.flushDirty()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}

// ReindexFile parses one note and updates its index entry. Callable
// without starting the watcher.
func (w *Watcher) ReindexFile(path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.vaultPath, path)
	}
	if !strings.HasSuffix(path, ".md") || w.shouldIgnore(path) {
		return nil
	}

	relPath, err := filepath.Rel(w.vaultPath, path)
	if err != nil {
		return err
	}

	doc, err := parser.ParseFile(path, w.dialect)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", relPath, err)
	}
	if err := w.db.IndexFile(relPath, doc); err != nil {
		return fmt.Errorf("failed to index %s: %w", relPath, err)
	}
	return nil
}

// RemoveFromIndex drops a note from the index.
func (w *Watcher) RemoveFromIndex(path string) error {
	relPath, err := filepath.Rel(w.vaultPath, path)
	if err != nil {
		return err
	}
	return w.db.RemoveFile(relPath)
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !strings.HasSuffix(path, ".md") {
		// New directories need their own watch.
		if event.Op&fsnotify.Create != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() && !w.shouldIgnore(path) {
				_ = w.watchTree(path)
			}
		}
		return
	}
	if w.shouldIgnore(path) {
		return
	}

	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		w.mu.Lock()
		w.dirty[path] = time.Now().Add(w.debounce)
		w.mu.Unlock()
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if err := w.RemoveFromIndex(path); err != nil {
			logger.Warn("failed to remove from index", "path", path, "err", err)
		}
	}
}

// flushDirty reindexes every dirty path whose debounce window has elapsed.
func (w *Watcher) flushDirty() {
	w.mu.Lock()
	var due []string
	now := time.Now()
	for path, deadline := range w.dirty {
		if !now.Before(deadline) {
			due = append(due, path)
			delete(w.dirty, path)
		}
	}
	w.mu.Unlock()

	for _, path := range due {
		err := w.ReindexFile(path)

		relPath, relErr := filepath.Rel(w.vaultPath, path)
		if relErr != nil {
			relPath = path
		}
		if err != nil {
			logger.Warn("reindex failed", "path", relPath, "err", err)
		} else {
			logger.Debug("reindexed", "path", relPath)
		}
		if w.onReindex != nil {
			w.onReindex(relPath, err)
		}
	}
}

func (w *Watcher) watchTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		switch {
		case walkErr != nil, !d.IsDir():
			return nil
		case path != root && w.shouldIgnore(path):
			return filepath.SkipDir
		default:
			return w.fsWatcher.Add(path)
		}
	})
}

// shouldIgnore reports whether a path sits outside the vault or under a
// dot-directory such as .git or .pkmt.
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.vaultPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part != "." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
