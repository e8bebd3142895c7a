// Package stats summarizes the fitness ratings of a population.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean/variance accumulator (Welford's algorithm).
type Statistic struct {
	count int
	last  float64
	min   float64
	max   float64

	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.count++
	if s.count == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
		s.min = val
		s.max = val
		return
	}
	s.newM = s.oldM + (val-s.oldM)/float64(s.count)
	s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
	s.oldM = s.newM
	s.oldS = s.newS
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Mean() float64 {
	if s.count > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.count <= 1 {
		return 0.0
	}
	return s.newS / float64(s.count-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError returns the standard error of the mean.
func (s *Statistic) StandardError() float64 {
	if s.count == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.count))
}

func (s *Statistic) Min() float64 { return s.min }
func (s *Statistic) Max() float64 { return s.max }
func (s *Statistic) Last() float64 { return s.last }
func (s *Statistic) Count() int    { return s.count }

// ArgMax returns the index and value of the largest rating. Ratings are
// scanned in ascending index order with a strict comparison, so the earliest
// index wins a tie. It returns -1 for an empty slice.
func ArgMax(ratings []float64) (int, float64) {
	if len(ratings) == 0 {
		return -1, math.Inf(-1)
	}
	best, idx := ratings[0], 0
	for i, r := range ratings[1:] {
		if r > best {
			best, idx = r, i+1
		}
	}
	return idx, best
}

// Summary describes one generation's ratings.
type Summary struct {
	Size      int     `json:"size" yaml:"size"`
	Best      float64 `json:"best" yaml:"best"`
	BestIndex int     `json:"best_index" yaml:"best_index"`
	Worst     float64 `json:"worst" yaml:"worst"`
	Mean      float64 `json:"mean" yaml:"mean"`
	Stdev     float64 `json:"stdev" yaml:"stdev"`
	Median    float64 `json:"median" yaml:"median"`

	// MeanMargin is the half-width of the Confidence interval of Mean.
	MeanMargin float64 `json:"mean_margin" yaml:"mean_margin"`
}

// Summarize computes a Summary. The input slice is not modified.
func Summarize(ratings []float64) Summary {
	if len(ratings) == 0 {
		return Summary{BestIndex: -1}
	}
	s := &Statistic{}
	for _, r := range ratings {
		s.Push(r)
	}
	idx, best := ArgMax(ratings)

	sorted := slices.Clone(ratings)
	slices.Sort(sorted)

	return Summary{
		Size:      len(ratings),
		Best:      best,
		BestIndex: idx,
		Worst:     s.Min(),
		Mean:      s.Mean(),
		Stdev:     s.Stdev(),
		Median:    stat.Quantile(0.5, stat.Empirical, sorted, nil),

		MeanMargin: ZVal(Confidence) * s.StandardError(),
	}
}
