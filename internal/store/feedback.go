package store

//go:generate mockgen -source=feedback.go -destination=mock_feedback.go -package=store

import (
	"database/sql"
	"errors"

	"github.com/trknhr/namesake/internal/logger"
	"github.com/trknhr/namesake/internal/recommend"
)

var ErrUnknownName = errors.New("store: name is not in the names list")

// Choice is one answer given by the user.
type Choice struct {
	Name  string
	Index int
	Liked bool
}

type Choices []Choice

// History keys the choices by item index. Later answers win.
func (c Choices) History() recommend.History {
	h := make(recommend.History, len(c))
	for _, ch := range c {
		h[ch.Index] = ch.Liked
	}
	return h
}

type FeedbackStore interface {
	Save(name string, liked bool) error
	Load(names []string) (Choices, error)
	Reset() error
}

type SQLFeedbackStore struct {
	db *sql.DB
}

func NewSQLFeedbackStore(db *sql.DB) FeedbackStore {
	return &SQLFeedbackStore{db: db}
}

func (s *SQLFeedbackStore) Save(name string, liked bool) error {
	_, err := s.db.Exec(`INSERT INTO feedback (name, liked) VALUES (?, ?)`, name, boolToInt(liked))
	return err
}

// Load replays the log against the current names list. Names that are no
// longer in the list are skipped.
func (s *SQLFeedbackStore) Load(names []string) (Choices, error) {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	rows, err := s.db.Query(`SELECT name, liked FROM feedback ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var choices Choices
	for rows.Next() {
		var name string
		var liked int
		if err := rows.Scan(&name, &liked); err != nil {
			return nil, err
		}
		i, ok := index[name]
		if !ok {
			logger.Warn("unable to find index of previous choice %q", name)
			continue
		}
		choices = append(choices, Choice{Name: name, Index: i, Liked: liked != 0})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logger.Info("loaded %d previous choices", len(choices))
	return choices, nil
}

func (s *SQLFeedbackStore) Reset() error {
	_, err := s.db.Exec(`DELETE FROM feedback`)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
