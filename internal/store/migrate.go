package store

import (
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

func Migrate(db *sql.DB) error {
	schema := []string{
		// names: the ordered item list; id is the item index
		`CREATE TABLE IF NOT EXISTS names (
			id      INTEGER PRIMARY KEY,
			name    TEXT NOT NULL UNIQUE,
			weight  REAL
		);`,
		// feedback: append-only like/dislike log
		`CREATE TABLE IF NOT EXISTS feedback (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			liked       INTEGER NOT NULL,
			created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_name ON feedback(name);`,
		// meta: latest imported mtime of source files
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			mtime INTEGER NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration statement: %w", err)
		}
	}

	return nil
}
