package selector

import (
	"fmt"
	"math/rand/v2"
)

// BestAndRand keeps the BestPop best-rated individuals and adds RandPop
// individuals drawn uniformly, without replacement, from the whole
// population. The two groups may overlap.
type BestAndRand[T any] struct {
	BestPop int
	RandPop int
	rng     *rand.Rand
}

func NewBestAndRand[T any](bestPop, randPop int, rng *rand.Rand) *BestAndRand[T] {
	return &BestAndRand[T]{BestPop: bestPop, RandPop: randPop, rng: rng}
}

func (s *BestAndRand[T]) Select(population []T, ratings []float64) ([]T, error) {
	if err := check(population, ratings); err != nil {
		return nil, err
	}
	if s.BestPop < 0 || s.RandPop < 0 || s.BestPop+s.RandPop == 0 {
		return nil, fmt.Errorf("best-and-rand %d+%d: %w", s.BestPop, s.RandPop, ErrInvalidSize)
	}
	if s.BestPop+s.RandPop >= len(population) {
		return nil, fmt.Errorf("best-and-rand %d+%d for population %d: %w",
			s.BestPop, s.RandPop, len(population), ErrPoolTooLarge)
	}

	picks := make([]int, 0, s.BestPop+s.RandPop)
	picks = append(picks, Descending(ratings)[:s.BestPop]...)
	picks = append(picks, sampleDistinct(s.rng, len(population), s.RandPop)...)
	return pick(population, picks), nil
}
