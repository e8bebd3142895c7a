// Package criterion has the stopping conditions for a search. They are
// consulted once per generation with the ratings of the current population.
package criterion

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/genetic/evolution"
	"github.com/domino14/genetic/stats"
)

// Mark stops as soon as any rating reaches Threshold.
type Mark struct {
	Threshold float64
}

func (m Mark) ShouldStop(ratings []float64) bool {
	return lo.ContainsBy(ratings, func(r float64) bool { return r >= m.Threshold })
}

// Plateau stops once the best rating has stayed the same for Max
// consecutive calls.
type Plateau struct {
	Max int

	seen     bool
	lastBest float64
	stagnant int
}

func NewPlateau(limit int) *Plateau {
	return &Plateau{Max: limit}
}

func (p *Plateau) ShouldStop(ratings []float64) bool {
	_, best := stats.ArgMax(ratings)
	if p.seen && best == p.lastBest {
		p.stagnant++
	} else {
		p.stagnant = 0
	}
	p.seen = true
	p.lastBest = best
	if p.stagnant >= p.Max {
		log.Debug().Int("stagnant", p.stagnant).Float64("best", best).Msg("plateau-reached")
		return true
	}
	return false
}

// Stagnant returns how many calls in a row saw no change of the best rating.
func (p *Plateau) Stagnant() int {
	return p.stagnant
}

func (p *Plateau) Reset() {
	p.seen = false
	p.lastBest = 0
	p.stagnant = 0
}

// Iterations stops after Max breeding cycles: it returns false for its
// first Max calls and true from then on, whatever the ratings.
type Iterations struct {
	Max int

	calls int
}

func NewIterations(limit int) *Iterations {
	return &Iterations{Max: limit}
}

func (it *Iterations) ShouldStop(_ []float64) bool {
	stop := it.calls >= it.Max
	it.calls++
	return stop
}

func (it *Iterations) Reset() {
	it.calls = 0
}

// Any stops when at least one of its members does. Every member is called on
// every generation, so stateful members keep counting.
type Any []evolution.Criterion

func (a Any) ShouldStop(ratings []float64) bool {
	stop := false
	for _, c := range a {
		if c.ShouldStop(ratings) {
			stop = true
		}
	}
	return stop
}

var (
	_ evolution.Criterion = Mark{}
	_ evolution.Criterion = (*Plateau)(nil)
	_ evolution.Criterion = (*Iterations)(nil)
	_ evolution.Criterion = Any{}
)
