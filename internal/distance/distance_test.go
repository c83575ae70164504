package distance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trknhr/namesake/internal/distance"
)

func TestBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "John", "John", 0},
		{"both empty", "", "", 0},
		{"empty left", "", "Bob", 1},
		{"empty right", "Bob", "", 1},
		{"prefix", "John", "Johnny", 2.0 / 6.0},
		{"different lengths", "John", "Bob", 3.0 / 4.0},
		{"mostly disjoint", "Johnny", "Bob", 5.0 / 6.0},
		{"fully disjoint", "abc", "xyz", 1},
		{"accented runes", "Zoé", "Zoe", 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := distance.Between(tt.a, tt.b)
			assert.InDelta(t, tt.want, float64(got), 1e-6)
		})
	}
}

func TestBetween_Symmetric(t *testing.T) {
	names := []string{"", "Anna", "Hannah", "Léa", "Leo", "Maximilien"}
	for _, a := range names {
		for _, b := range names {
			assert.Equal(t, distance.Between(a, b), distance.Between(b, a), "%q/%q", a, b)
			d := distance.Between(a, b)
			assert.GreaterOrEqual(t, d, distance.Distance(0))
			assert.LessOrEqual(t, d, distance.Distance(1))
		}
	}
}
