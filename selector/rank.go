package selector

import (
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"
)

// Rank draws MaxPop individuals with replacement, weighted by rank instead
// of raw rating, so only the ordering of ratings matters.
type Rank[T any] struct {
	MaxPop int
	rng    *rand.Rand
}

func NewRank[T any](maxPop int, rng *rand.Rand) *Rank[T] {
	return &Rank[T]{MaxPop: maxPop, rng: rng}
}

func (s *Rank[T]) Select(population []T, ratings []float64) ([]T, error) {
	if err := check(population, ratings); err != nil {
		return nil, err
	}
	if s.MaxPop <= 0 {
		return nil, fmt.Errorf("rank selector max pop %d: %w", s.MaxPop, ErrInvalidSize)
	}
	weights := lo.Map(Ranks(ratings), func(r int, _ int) float64 {
		return float64(r)
	})
	picks, err := draw(s.rng, weights, s.MaxPop)
	if err != nil {
		return nil, fmt.Errorf("rank selector: %w", err)
	}
	return pick(population, picks), nil
}
