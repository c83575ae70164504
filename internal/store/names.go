package store

import (
	"database/sql"
	"fmt"

	"github.com/trknhr/namesake/internal/source"
)

type NameStore struct {
	db *sql.DB
}

func NewNameStore(db *sql.DB) *NameStore {
	return &NameStore{db: db}
}

// ReplaceNames swaps the whole names list. Indexes follow entries order.
func (s *NameStore) ReplaceNames(entries []source.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM names`); err != nil {
		return fmt.Errorf("failed to clear names: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO names (id, name, weight) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	weighted := source.HasWeights(entries)
	for i, e := range entries {
		var weight any
		if weighted {
			weight = e.Weight
		}
		if _, err := stmt.Exec(i, e.Name, weight); err != nil {
			return fmt.Errorf("failed to insert name %q: %w", e.Name, err)
		}
	}
	return tx.Commit()
}

// LoadNames returns the names in index order. weights is nil when the list
// was imported without counts.
func (s *NameStore) LoadNames() (names []string, weights []float64, err error) {
	rows, err := s.db.Query(`SELECT name, weight FROM names ORDER BY id`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	weighted := false
	for rows.Next() {
		var name string
		var weight sql.NullFloat64
		if err := rows.Scan(&name, &weight); err != nil {
			return nil, nil, err
		}
		names = append(names, name)
		weights = append(weights, weight.Float64)
		weighted = weighted || weight.Valid
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	if !weighted {
		weights = nil
	}
	return names, weights, nil
}

func (s *NameStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM names`).Scan(&n)
	return n, err
}

// IndexOf returns the item index of name.
func (s *NameStore) IndexOf(name string) (int, error) {
	var id int
	err := s.db.QueryRow(`SELECT id FROM names WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return id, err
}
