package store

import (
	"database/sql"
	"fmt"
	"os"
)

type MetaStore struct {
	db *sql.DB
}

func NewMetaStore(db *sql.DB) *MetaStore {
	return &MetaStore{db: db}
}

// TouchMeta records the current mtime of filePath under key.
func (m *MetaStore) TouchMeta(key string, filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("stat error for %s: %w", filePath, err)
	}

	_, err = m.db.Exec(`
		INSERT INTO meta (key, path, mtime) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET path = excluded.path, mtime = excluded.mtime
	`, key, filePath, info.ModTime().Unix())
	if err != nil {
		return fmt.Errorf("failed to update meta: %w", err)
	}
	return nil
}

// NeedsReload reports whether filePath changed, or is a different file,
// since the last TouchMeta for key.
func (m *MetaStore) NeedsReload(key string, filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return true
	}

	var storedPath string
	var storedMtime int64
	err = m.db.QueryRow(`SELECT path, mtime FROM meta WHERE key = ?`, key).Scan(&storedPath, &storedMtime)
	if err != nil {
		return true
	}

	return storedPath != filePath || info.ModTime().Unix() > storedMtime
}
