package selector

import (
	"fmt"
	"math/rand/v2"
)

// Rating is fitness-proportionate (roulette wheel) selection: MaxPop draws
// with replacement, each individual weighted by its raw rating.
type Rating[T any] struct {
	MaxPop int
	rng    *rand.Rand
}

func NewRating[T any](maxPop int, rng *rand.Rand) *Rating[T] {
	return &Rating[T]{MaxPop: maxPop, rng: rng}
}

func (s *Rating[T]) Select(population []T, ratings []float64) ([]T, error) {
	if err := check(population, ratings); err != nil {
		return nil, err
	}
	if s.MaxPop <= 0 {
		return nil, fmt.Errorf("rating selector max pop %d: %w", s.MaxPop, ErrInvalidSize)
	}
	picks, err := draw(s.rng, ratings, s.MaxPop)
	if err != nil {
		return nil, fmt.Errorf("rating selector: %w", err)
	}
	return pick(population, picks), nil
}
