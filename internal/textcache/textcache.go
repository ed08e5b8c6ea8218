// Package textcache caches extracted PDF text in a SQLite database keyed by
// content checksum, so consecutive runs over an unchanged library skip the
// expensive extraction step.
package textcache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Cache wraps the SQLite connection holding cached text.
type Cache struct {
	db *sql.DB
}

// Open opens or creates a cache database at the given path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS extracted_text (
			checksum   TEXT PRIMARY KEY,
			text       TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached text for a content checksum.
func (c *Cache) Get(checksum string) (string, bool) {
	var text string
	err := c.db.QueryRow(
		`SELECT text FROM extracted_text WHERE checksum = ?`, checksum,
	).Scan(&text)
	if err != nil {
		return "", false
	}
	return text, true
}

// Put stores extracted text under a content checksum, replacing any
// previous value.
func (c *Cache) Put(checksum, text string) error {
	_, err := c.db.Exec(
		`INSERT INTO extracted_text (checksum, text, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(checksum) DO UPDATE SET text = excluded.text`,
		checksum, text, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("caching text: %w", err)
	}
	return nil
}
