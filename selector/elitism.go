package selector

import "fmt"

// Elitism keeps the MaxPop best-rated individuals, best first.
type Elitism[T any] struct {
	MaxPop int
}

func NewElitism[T any](maxPop int) *Elitism[T] {
	return &Elitism[T]{MaxPop: maxPop}
}

func (s *Elitism[T]) Select(population []T, ratings []float64) ([]T, error) {
	if err := check(population, ratings); err != nil {
		return nil, err
	}
	if s.MaxPop <= 0 {
		return nil, fmt.Errorf("elitism max pop %d: %w", s.MaxPop, ErrInvalidSize)
	}
	if s.MaxPop > len(population) {
		return nil, fmt.Errorf("elitism max pop %d over population %d: %w",
			s.MaxPop, len(population), ErrPoolTooLarge)
	}
	return pick(population, Descending(ratings)[:s.MaxPop]), nil
}
