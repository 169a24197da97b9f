// Package index maintains the SQLite mention index for a vault: which note
// mentions which file names. It is a collaborator layer; the parsing
// pipeline itself never touches it.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/gosimple/slug"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/paths"
	"github.com/TobiasForner/pkmt-sub000/internal/vault"
)

// ErrNoteNotFound indicates the requested note is not in the index.
var ErrNoteNotFound = errors.New("note not found in index")

// noteKey is the canonical rel_path key a note is stored under: slash
// separators, no "./" prefix, ".md" extension. Lookups accept the path
// with or without the extension.
func noteKey(relPath string) string {
	return paths.NoteID(relPath) + ".md"
}

// Database is the SQLite index handle.
type Database struct {
	db *sql.DB
}

// Open opens or creates the index database under the vault's .pkmt
// directory.
func Open(vaultPath string) (*Database, error) {
	dbDir := filepath.Join(vaultPath, ".pkmt")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .pkmt directory: %w", err)
	}
	return OpenAt(filepath.Join(dbDir, "index.db"))
}

// OpenAt opens or creates the index database at an explicit path.
func OpenAt(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database handle.
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) initialize() error {
	schema := `
		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			rel_path TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			slug TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS mentions (
			note_id INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			slug TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_notes_slug ON notes(slug);
		CREATE INDEX IF NOT EXISTS idx_mentions_slug ON mentions(slug);
		CREATE INDEX IF NOT EXISTS idx_mentions_note ON mentions(note_id);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := d.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return nil
}

// Rebuild re-indexes the vault from scratch. It returns the number of notes
// indexed; unreadable or unparsable files are counted as skipped, not
// fatal.
func (d *Database) Rebuild(root string, dialect document.Dialect) (indexed, skipped int, err error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin rebuild: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, stmt := range []string{"DELETE FROM mentions", "DELETE FROM notes"} {
		if _, err = tx.Exec(stmt); err != nil {
			return 0, 0, fmt.Errorf("failed to clear index: %w", err)
		}
	}

	insertNote, err := tx.Prepare("INSERT INTO notes (rel_path, name, slug) VALUES (?, ?, ?)")
	if err != nil {
		return 0, 0, err
	}
	defer insertNote.Close()

	insertMention, err := tx.Prepare("INSERT INTO mentions (note_id, name, slug) VALUES (?, ?, ?)")
	if err != nil {
		return 0, 0, err
	}
	defer insertMention.Close()

	walkErr := vault.WalkNotes(root, dialect, func(result vault.WalkResult) error {
		if result.Error != nil {
			skipped++
			return nil
		}

		name := paths.NoteName(result.RelativePath)
		res, execErr := insertNote.Exec(noteKey(result.RelativePath), name, slug.Make(name))
		if execErr != nil {
			return execErr
		}
		noteID, execErr := res.LastInsertId()
		if execErr != nil {
			return execErr
		}

		for _, mention := range result.Document.MentionedFiles() {
			if _, execErr := insertMention.Exec(noteID, mention, slug.Make(mention)); execErr != nil {
				return execErr
			}
		}

		indexed++
		return nil
	})
	if walkErr != nil {
		err = fmt.Errorf("failed to walk vault: %w", walkErr)
		return 0, 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit rebuild: %w", err)
	}
	return indexed, skipped, nil
}

// IndexFile replaces the index entry for a single note. The document is
// the note's parsed tree; relPath is vault-relative.
func (d *Database) IndexFile(relPath string, doc *document.Document) (err error) {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin update: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	rel := noteKey(relPath)
	if _, err = tx.Exec("DELETE FROM mentions WHERE note_id IN (SELECT id FROM notes WHERE rel_path = ?)", rel); err != nil {
		return err
	}
	if _, err = tx.Exec("DELETE FROM notes WHERE rel_path = ?", rel); err != nil {
		return err
	}

	name := paths.NoteName(relPath)
	res, err := tx.Exec("INSERT INTO notes (rel_path, name, slug) VALUES (?, ?, ?)", rel, name, slug.Make(name))
	if err != nil {
		return err
	}
	noteID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, mention := range doc.MentionedFiles() {
		if _, err = tx.Exec("INSERT INTO mentions (note_id, name, slug) VALUES (?, ?, ?)", noteID, mention, slug.Make(mention)); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}
	return nil
}

// RemoveFile drops a note and its mentions from the index. Removing a note
// that is not indexed is a no-op.
func (d *Database) RemoveFile(relPath string) error {
	rel := noteKey(relPath)
	if _, err := d.db.Exec("DELETE FROM mentions WHERE note_id IN (SELECT id FROM notes WHERE rel_path = ?)", rel); err != nil {
		return err
	}
	if _, err := d.db.Exec("DELETE FROM notes WHERE rel_path = ?", rel); err != nil {
		return err
	}
	return nil
}
