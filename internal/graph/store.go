package graph

import (
	"errors"
	"fmt"

	"github.com/trknhr/namesake/internal/distance"
)

var (
	ErrAlreadyFilled    = errors.New("graph: store already filled")
	ErrEmpty            = errors.New("graph: no names to fill")
	ErrCapacityMismatch = errors.New("graph: names do not match store capacity")
)

// Store holds the pairwise distances of n names. Only the upper triangle is
// kept: row i has the distances to every j > i, in ascending j order.
// A Store is written once by Fill and is read-only afterwards.
type Store struct {
	rows   [][]distance.Distance
	filled bool
}

func NewStore(capacity int) *Store {
	return &Store{rows: make([][]distance.Distance, capacity)}
}

func (s *Store) Len() int { return len(s.rows) }

func (s *Store) Filled() bool { return s.filled }

// Get returns the distance between items a and b. It panics when the store
// has not been filled or when an index is out of range.
func (s *Store) Get(a, b int) distance.Distance {
	if !s.filled {
		panic("graph: Get called on an unfilled store")
	}
	n := len(s.rows)
	if a < 0 || b < 0 || a >= n || b >= n {
		panic(fmt.Sprintf("graph: index out of range [%d,%d] with length %d", a, b, n))
	}
	if a == b {
		return 0
	}
	if a > b {
		a, b = b, a
	}
	return s.rows[a][b-a-1]
}

// Fill computes every distance with a default Builder.
func (s *Store) Fill(names []string) error {
	return (&Builder{}).Fill(s, names)
}
