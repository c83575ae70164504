package distance

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Distance is the dissimilarity between two names, in [0,1]. 0 means identical.
type Distance = float32

// Between returns the Levenshtein distance of a and b normalized by the
// rune length of the longer string.
func Between(a, b string) Distance {
	if a == b {
		return 0
	}
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 0
	}
	return Distance(float64(levenshtein.ComputeDistance(a, b)) / float64(longest))
}
