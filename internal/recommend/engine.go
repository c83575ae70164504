package recommend

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/trknhr/namesake/internal/graph"
	"github.com/trknhr/namesake/internal/logger"
)

// ErrExhausted is returned once every candidate has been evaluated.
var ErrExhausted = errors.New("recommend: no candidates left")

// History maps an item index to the user's answer: true for liked.
type History map[int]bool

// Ranked is a candidate with its adjusted score. Lower scores rank first.
type Ranked struct {
	Index int
	Score float64
}

// Engine picks the next item to show from a filled distance store and the
// feedback gathered so far. It holds no mutable state besides its random
// source, so all methods except RandomIndex and Next are pure.
type Engine struct {
	store      *graph.Store
	weights    []float64
	commonness float64
	rng        *rand.Rand
	log        zerolog.Logger
}

type Option func(*Engine)

// WithWeights sets per-item popularity weights in [0,1], one per item.
func WithWeights(weights []float64) Option {
	return func(e *Engine) { e.weights = weights }
}

// WithCommonness sets how much popularity pulls the ranking, in [0,1].
func WithCommonness(c float64) Option {
	return func(e *Engine) { e.commonness = c }
}

// WithSeed makes RandomIndex deterministic. Zero keeps a time-based seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = rand.New(rand.NewSource(seed))
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func New(store *graph.Store, opts ...Option) (*Engine, error) {
	if store == nil || !store.Filled() {
		return nil, errors.New("recommend: store is not filled")
	}

	e := &Engine{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		log:   logger.L(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With().Str("component", "recommend").Logger()

	if e.commonness < 0 || e.commonness > 1 {
		return nil, fmt.Errorf("recommend: commonness %v outside [0,1]", e.commonness)
	}
	if e.weights != nil {
		if len(e.weights) != store.Len() {
			return nil, fmt.Errorf("recommend: %d weights for %d items", len(e.weights), store.Len())
		}
		for i, w := range e.weights {
			if w < 0 || w > 1 {
				return nil, fmt.Errorf("recommend: weight %v of item %d outside [0,1]", w, i)
			}
		}
	}
	return e, nil
}

func (e *Engine) Len() int { return e.store.Len() }

// RandomIndex picks an item uniformly. It seeds a session with no feedback.
func (e *Engine) RandomIndex() int {
	return e.rng.Intn(e.store.Len())
}

type answer struct {
	index int
	liked bool
}

// answers orders the history by index so that floating point sums do not
// depend on map iteration order.
func answers(h History) []answer {
	out := make([]answer, 0, len(h))
	for j, liked := range h {
		out = append(out, answer{index: j, liked: liked})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].index < out[b].index })
	return out
}

// Score sums the distances from i to every answered item: liked items add
// their distance and disliked items subtract it. A low score means i is close
// to what was liked and far from what was disliked.
func (e *Engine) Score(i int, h History) float64 {
	return e.score(i, answers(h))
}

func (e *Engine) score(i int, hist []answer) float64 {
	var score float64
	for _, a := range hist {
		d := float64(e.store.Get(i, a.index))
		if a.liked {
			score += d
		} else {
			score -= d
		}
	}
	return score
}

// AdjustedScore lowers Score by the item's popularity. The bonus is scaled by
// the history size since every history term is at most 1 in magnitude.
func (e *Engine) AdjustedScore(i int, h History) float64 {
	return e.adjusted(i, answers(h))
}

func (e *Engine) adjusted(i int, hist []answer) float64 {
	score := e.score(i, hist)
	if e.weights == nil || e.commonness == 0 {
		return score
	}
	scale := float64(max(1, len(hist)))
	return score - e.commonness*e.weights[i]*scale
}

// Recommend returns the unanswered item with the lowest adjusted score.
// Ties go to the lowest index.
func (e *Engine) Recommend(h History) (int, error) {
	hist := answers(h)
	best, bestScore := -1, 0.0
	for i := 0; i < e.store.Len(); i++ {
		if _, seen := h[i]; seen {
			continue
		}
		s := e.adjusted(i, hist)
		if best == -1 || s < bestScore {
			best, bestScore = i, s
		}
	}
	if best == -1 {
		return 0, ErrExhausted
	}
	e.log.Debug().Int("index", best).Float64("score", bestScore).Int("history", len(h)).Msg("recommended")
	return best, nil
}

// Next starts with a random item and then follows Recommend.
func (e *Engine) Next(h History) (int, error) {
	if len(h) == 0 {
		return e.RandomIndex(), nil
	}
	return e.Recommend(h)
}

// Closest returns the unanswered item nearest to from, other than from itself.
func (e *Engine) Closest(from int, h History) (int, error) {
	best := -1
	var bestDist float32
	for j := 0; j < e.store.Len(); j++ {
		if j == from {
			continue
		}
		if _, seen := h[j]; seen {
			continue
		}
		d := e.store.Get(from, j)
		if best == -1 || d < bestDist {
			best, bestDist = j, d
		}
	}
	if best == -1 {
		return 0, ErrExhausted
	}
	return best, nil
}

// Top returns up to k unanswered items in recommendation order.
func (e *Engine) Top(h History, k int) []Ranked {
	hist := answers(h)
	ranked := make([]Ranked, 0, max(0, e.store.Len()-len(h)))
	for i := 0; i < e.store.Len(); i++ {
		if _, seen := h[i]; seen {
			continue
		}
		ranked = append(ranked, Ranked{Index: i, Score: e.adjusted(i, hist)})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score < ranked[b].Score
	})
	if k >= 0 && k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
