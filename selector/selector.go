// Package selector holds parent-selection strategies. Every selector reads a
// population with its ratings and returns a new pool of copies; the
// randomized ones draw from the *rand.Rand they were built with.
package selector

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/domino14/genetic/evolution"
)

var (
	ErrEmptyPopulation   = errors.New("population is empty")
	ErrMismatchedRatings = errors.New("ratings and population differ in length")
	ErrNegativeWeight    = errors.New("weights must be non-negative numbers")
	ErrInvalidWeight     = errors.New("weights must be finite and sum to a finite total")
	ErrZeroWeights       = errors.New("at least one weight must be positive")
	ErrPoolTooLarge      = errors.New("requested pool is too large for the population")
	ErrInvalidSize       = errors.New("selection size must be positive")
)

func check[T any](population []T, ratings []float64) error {
	if len(population) == 0 {
		return ErrEmptyPopulation
	}
	if len(population) != len(ratings) {
		return fmt.Errorf("%d genotypes, %d ratings: %w", len(population), len(ratings), ErrMismatchedRatings)
	}
	return nil
}

// Descending returns the population indices ordered from highest to lowest
// rating. Equal ratings keep ascending index order.
func Descending(ratings []float64) []int {
	idx := lo.Range(len(ratings))
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(ratings[b], ratings[a])
	})
	return idx
}

// Ranks returns the rank of every rating: 1 for the lowest, len(ratings)
// for the highest. Equal ratings get distinct ranks in index order.
func Ranks(ratings []float64) []int {
	idx := lo.Range(len(ratings))
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(ratings[a], ratings[b])
	})
	ranks := make([]int, len(ratings))
	for pos, i := range idx {
		ranks[i] = pos + 1
	}
	return ranks
}

func pick[T any](population []T, indices []int) []T {
	return lo.Map(indices, func(i int, _ int) T {
		return evolution.Clone(population[i])
	})
}

// draw samples count indices with replacement, each with probability
// proportional to its weight.
func draw(rng *rand.Rand, weights []float64, count int) ([]int, error) {
	if lo.ContainsBy(weights, func(w float64) bool { return w < 0 || math.IsNaN(w) }) {
		return nil, ErrNegativeWeight
	}
	if lo.ContainsBy(weights, func(w float64) bool { return math.IsInf(w, 0) }) {
		return nil, ErrInvalidWeight
	}
	sum := floats.Sum(weights)
	if math.IsInf(sum, 0) {
		return nil, fmt.Errorf("weights sum to %v: %w", sum, ErrInvalidWeight)
	}
	if sum == 0 {
		return nil, ErrZeroWeights
	}
	dist := distuv.NewCategorical(weights, rng)
	out := make([]int, count)
	for i := range out {
		out[i] = int(dist.Rand())
	}
	return out, nil
}

// sampleDistinct returns k distinct indices below n, chosen uniformly.
func sampleDistinct(rng *rand.Rand, n, k int) []int {
	if k == 0 {
		return nil
	}
	idxs := make([]int, k)
	sampleuv.WithoutReplacement(idxs, n, rng)
	return idxs
}

var (
	_ evolution.Selector[string] = (*Rating[string])(nil)
	_ evolution.Selector[string] = (*Elitism[string])(nil)
	_ evolution.Selector[string] = (*Rank[string])(nil)
	_ evolution.Selector[string] = (*Tournament[string])(nil)
	_ evolution.Selector[string] = (*BestAndRand[string])(nil)
)
