package selector

import (
	"fmt"
	"math/rand/v2"
)

// Tournament runs MaxPop tournaments. Each one samples GroupSize distinct
// individuals without replacement and keeps the best-rated of them (the
// first one drawn on a tie). A GroupSize of 0 uses MaxPop.
type Tournament[T any] struct {
	MaxPop    int
	GroupSize int
	rng       *rand.Rand
}

func NewTournament[T any](maxPop, groupSize int, rng *rand.Rand) *Tournament[T] {
	return &Tournament[T]{MaxPop: maxPop, GroupSize: groupSize, rng: rng}
}

func (s *Tournament[T]) Select(population []T, ratings []float64) ([]T, error) {
	if err := check(population, ratings); err != nil {
		return nil, err
	}
	if s.MaxPop <= 0 {
		return nil, fmt.Errorf("tournament max pop %d: %w", s.MaxPop, ErrInvalidSize)
	}
	group := s.GroupSize
	if group == 0 {
		group = s.MaxPop
	}
	if group < 0 {
		return nil, fmt.Errorf("tournament group size %d: %w", group, ErrInvalidSize)
	}
	if group > len(population) {
		return nil, fmt.Errorf("tournament group size %d over population %d: %w",
			group, len(population), ErrPoolTooLarge)
	}

	winners := make([]int, 0, s.MaxPop)
	for len(winners) < s.MaxPop {
		members := sampleDistinct(s.rng, len(population), group)
		best := members[0]
		for _, m := range members[1:] {
			if ratings[m] > ratings[best] {
				best = m
			}
		}
		winners = append(winners, best)
	}
	return pick(population, winners), nil
}
