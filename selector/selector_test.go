package selector

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1024))
}

var (
	fourPop     = []string{"aaaa", "bbbb", "cccc", "dddd"}
	fourRatings = []float64{1.0, 4.7, 2.9, 0.2}
)

func TestElitism(t *testing.T) {
	is := is.New(t)
	sel := NewElitism[string](2)
	got, err := sel.Select(fourPop, fourRatings)
	is.NoErr(err)
	is.Equal(got, []string{"bbbb", "cccc"})
}

func TestElitismTooLarge(t *testing.T) {
	is := is.New(t)
	_, err := NewElitism[string](5).Select(fourPop, fourRatings)
	is.True(errors.Is(err, ErrPoolTooLarge))
}

func TestDescendingKeepsIndexOrderOnTies(t *testing.T) {
	is := is.New(t)
	is.Equal(Descending([]float64{2, 5, 2, 5, 1}), []int{1, 3, 0, 2, 4})
}

func TestRanks(t *testing.T) {
	is := is.New(t)
	is.Equal(Ranks(fourRatings), []int{2, 4, 3, 1})
	is.Equal(Ranks([]float64{3, 3, 1}), []int{2, 3, 1})
	is.Equal(len(Ranks(nil)), 0)
}

func TestCheck(t *testing.T) {
	is := is.New(t)
	_, err := NewElitism[string](1).Select(nil, nil)
	is.True(errors.Is(err, ErrEmptyPopulation))
	_, err = NewRank[string](1, testRand()).Select(fourPop, fourRatings[:3])
	is.True(errors.Is(err, ErrMismatchedRatings))
}

func frequencies(t *testing.T, picked []string, pop []string) map[string]float64 {
	t.Helper()
	freq := map[string]float64{}
	for _, p := range pop {
		freq[p] = 0
	}
	for _, p := range picked {
		freq[p] += 1 / float64(len(picked))
	}
	return freq
}

func TestRatingUniformWhenEqual(t *testing.T) {
	const draws = 40000
	sel := NewRating[string](draws, testRand())
	got, err := sel.Select(fourPop, []float64{3, 3, 3, 3})
	require.NoError(t, err)
	require.Len(t, got, draws)
	for p, f := range frequencies(t, got, fourPop) {
		assert.InDelta(t, 0.25, f, 0.02, "frequency of %s", p)
	}
}

func TestRatingProportional(t *testing.T) {
	const draws = 30000
	got, err := NewRating[string](draws, testRand()).Select(fourPop, []float64{0, 1, 3, 0})
	require.NoError(t, err)
	freq := frequencies(t, got, fourPop)
	assert.Zero(t, freq["aaaa"])
	assert.Zero(t, freq["dddd"])
	assert.InDelta(t, 0.25, freq["bbbb"], 0.02)
	assert.InDelta(t, 0.75, freq["cccc"], 0.02)
}

func TestRatingBadWeights(t *testing.T) {
	is := is.New(t)
	sel := NewRating[string](3, testRand())
	_, err := sel.Select(fourPop, []float64{1, -1, 2, 3})
	is.True(errors.Is(err, ErrNegativeWeight))
	_, err = sel.Select(fourPop, []float64{0, 0, 0, 0})
	is.True(errors.Is(err, ErrZeroWeights))
	_, err = sel.Select(fourPop, []float64{1, 2, 3, math.Inf(1)})
	is.True(errors.Is(err, ErrInvalidWeight))
	_, err = sel.Select(fourPop, []float64{math.MaxFloat64, math.MaxFloat64, 1, 1})
	is.True(errors.Is(err, ErrInvalidWeight))
	_, err = NewRank[string](3, testRand()).Select(fourPop, []float64{1, math.Inf(1), 2, 3})
	is.NoErr(err) // ranks only see the ordering
	_, err = NewRating[string](0, testRand()).Select(fourPop, fourRatings)
	is.True(errors.Is(err, ErrInvalidSize))
}

func TestRankIgnoresSpacing(t *testing.T) {
	const draws = 30000
	// ranks are [3, 1, 2] -> probabilities 3/6, 1/6, 2/6
	pop := []string{"x", "y", "z"}
	got, err := NewRank[string](draws, testRand()).Select(pop, []float64{1000, 0.001, 0.002})
	require.NoError(t, err)
	freq := frequencies(t, got, pop)
	assert.InDelta(t, 3.0/6, freq["x"], 0.02)
	assert.InDelta(t, 1.0/6, freq["y"], 0.02)
	assert.InDelta(t, 2.0/6, freq["z"], 0.02)
}

func TestTournamentWholePopulationGroup(t *testing.T) {
	is := is.New(t)
	sel := NewTournament[string](6, 4, testRand())
	got, err := sel.Select(fourPop, fourRatings)
	is.NoErr(err)
	is.Equal(len(got), 6)
	for _, g := range got {
		is.Equal(g, "bbbb")
	}
}

func TestTournamentWinnerIsGroupBest(t *testing.T) {
	is := is.New(t)
	// With a group of n-1, the overall worst can never win and the overall
	// best loses only when it is left out of the group.
	pop := []string{"a", "b", "c", "d", "e"}
	ratings := []float64{5, 1, 4, 2, 3}
	got, err := NewTournament[string](500, 4, testRand()).Select(pop, ratings)
	is.NoErr(err)
	is.Equal(len(got), 500)
	for _, g := range got {
		is.True(g == "a" || g == "c")
	}
}

func TestTournamentDefaultGroup(t *testing.T) {
	is := is.New(t)
	got, err := NewTournament[string](3, 0, testRand()).Select(fourPop, fourRatings)
	is.NoErr(err)
	is.Equal(len(got), 3)
	_, err = NewTournament[string](5, 0, testRand()).Select(fourPop, fourRatings)
	is.True(errors.Is(err, ErrPoolTooLarge))
}

func TestBestAndRand(t *testing.T) {
	is := is.New(t)
	pop := make([]string, 20)
	ratings := make([]float64, 20)
	for i := range pop {
		pop[i] = fmt.Sprintf("g%02d", i)
		ratings[i] = float64(i % 7)
	}
	got, err := NewBestAndRand[string](3, 5, testRand()).Select(pop, ratings)
	is.NoErr(err)
	is.Equal(len(got), 8)
	is.Equal(got[:3], []string{"g06", "g13", "g05"})

	seen := map[string]bool{}
	for _, g := range got[3:] {
		is.True(!seen[g]) // drawn without replacement
		seen[g] = true
	}
}

func TestBestAndRandTooLarge(t *testing.T) {
	is := is.New(t)
	_, err := NewBestAndRand[string](2, 2, testRand()).Select(fourPop, fourRatings)
	is.True(errors.Is(err, ErrPoolTooLarge))
	_, err = NewBestAndRand[string](0, 0, testRand()).Select(fourPop, fourRatings)
	is.True(errors.Is(err, ErrInvalidSize))
}

func TestSampleDistinct(t *testing.T) {
	is := is.New(t)
	rng := testRand()
	is.Equal(len(sampleDistinct(rng, 5, 0)), 0)
	for _, k := range []int{1, 3, 10, 40} {
		got := sampleDistinct(rng, 40, k)
		is.Equal(len(got), k)
		seen := map[int]bool{}
		for _, i := range got {
			is.True(i >= 0 && i < 40)
			is.True(!seen[i])
			seen[i] = true
		}
	}
}

type genes []int

func (g genes) Clone() genes {
	return append(genes(nil), g...)
}

func TestSelectedCopiesAreIndependent(t *testing.T) {
	is := is.New(t)
	pop := []genes{{1, 2}, {3, 4}, {5, 6}}
	got, err := NewElitism[genes](1).Select(pop, []float64{0, 9, 1})
	is.NoErr(err)
	got[0][0] = 100
	is.Equal(pop[1], genes{3, 4})
}
