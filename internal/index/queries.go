package index

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
)

// Backlinks returns the relative paths of every note that mentions the
// given name, in path order. Matching is slug-normalized, so "Daily Note"
// finds mentions written as "daily note".
func (d *Database) Backlinks(name string) ([]string, error) {
	rows, err := d.db.Query(`
		SELECT DISTINCT n.rel_path
		FROM mentions m
		JOIN notes n ON n.id = m.note_id
		WHERE m.slug = ?
		ORDER BY n.rel_path
	`, slug.Make(name))
	if err != nil {
		return nil, fmt.Errorf("failed to query backlinks: %w", err)
	}
	return scanStrings(rows)
}

// Mentions returns the names a note mentions, in insertion order. The path
// may be written with or without the ".md" extension and with either
// separator style.
func (d *Database) Mentions(relPath string) ([]string, error) {
	var noteID int64
	err := d.db.QueryRow("SELECT id FROM notes WHERE rel_path = ?", noteKey(relPath)).Scan(&noteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up note: %w", err)
	}

	rows, err := d.db.Query("SELECT name FROM mentions WHERE note_id = ? ORDER BY rowid", noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentions: %w", err)
	}
	return scanStrings(rows)
}

// DuplicateNames returns groups of note paths whose names normalize to the
// same slug. Each group has at least two members.
func (d *Database) DuplicateNames() (map[string][]string, error) {
	rows, err := d.db.Query(`
		SELECT slug, rel_path
		FROM notes
		WHERE slug IN (
			SELECT slug FROM notes GROUP BY slug HAVING COUNT(*) > 1
		)
		ORDER BY slug, rel_path
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query duplicates: %w", err)
	}
	defer rows.Close()

	groups := make(map[string][]string)
	for rows.Next() {
		var s, relPath string
		if err := rows.Scan(&s, &relPath); err != nil {
			return nil, err
		}
		groups[s] = append(groups[s], relPath)
	}
	return groups, rows.Err()
}

// Unresolved returns mentioned names that no indexed note carries, with the
// number of notes mentioning each, most-mentioned first.
func (d *Database) Unresolved() (map[string]int, error) {
	rows, err := d.db.Query(`
		SELECT m.name, COUNT(DISTINCT m.note_id) AS refs
		FROM mentions m
		LEFT JOIN notes n ON n.slug = m.slug
		WHERE n.id IS NULL
		GROUP BY m.slug
		ORDER BY refs DESC, m.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query unresolved mentions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var refs int
		if err := rows.Scan(&name, &refs); err != nil {
			return nil, err
		}
		out[name] = refs
	}
	return out, rows.Err()
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
