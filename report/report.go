// Package report writes what an evolve run produced: a per-generation yaml
// log while it runs and a text summary once it is done.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/aybabtme/uniplot/histogram"
	"gopkg.in/yaml.v3"

	"github.com/domino14/genetic/evolution"
	"github.com/domino14/genetic/stats"
)

const histogramWidth = 50

// Report is the outcome of a run.
type Report struct {
	Best        string        `json:"best" yaml:"best"`
	BestRating  float64       `json:"best_rating" yaml:"best_rating"`
	MaxScore    float64       `json:"max_score" yaml:"max_score"`
	Generations int           `json:"generations" yaml:"generations"`
	Ratings     []float64     `json:"-" yaml:"-"`
	Summary     stats.Summary `json:"summary" yaml:"summary"`
	Stopped     string        `json:"stopped,omitempty" yaml:"stopped,omitempty"`
}

// LogGeneration is one entry of the generation log.
type LogGeneration struct {
	Generation int     `json:"generation" yaml:"generation"`
	Size       int     `json:"size" yaml:"size"`
	Best       float64 `json:"best" yaml:"best"`
	Worst      float64 `json:"worst" yaml:"worst"`
	Mean       float64 `json:"mean" yaml:"mean"`
	Stdev      float64 `json:"stdev" yaml:"stdev"`
	Median     float64 `json:"median" yaml:"median"`
}

// GenerationLog appends a yaml list entry per generation to a stream. The
// whole stream parses as a single []LogGeneration.
type GenerationLog struct {
	mu      sync.Mutex
	w       io.Writer
	err     error
	entries int
}

func NewGenerationLog(w io.Writer) *GenerationLog {
	return &GenerationLog{w: w}
}

// Observe is meant to be passed to Engine.OnGeneration. After the first
// failed write it does nothing; see Err.
func (l *GenerationLog) Observe(g evolution.Generation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return
	}
	out, err := yaml.Marshal([]LogGeneration{{
		Generation: g.Number,
		Size:       g.Size,
		Best:       g.Summary.Best,
		Worst:      g.Summary.Worst,
		Mean:       g.Summary.Mean,
		Stdev:      g.Summary.Stdev,
		Median:     g.Summary.Median,
	}})
	if err != nil {
		l.err = err
		return
	}
	if _, err = l.w.Write(out); err != nil {
		l.err = err
		return
	}
	l.entries++
}

func (l *GenerationLog) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *GenerationLog) Entries() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries
}

// WriteFinal prints the outcome of a run, followed by a histogram of the
// final ratings with the given number of bins.
func WriteFinal(w io.Writer, r Report, bins int) error {
	_, err := fmt.Fprintf(w, "Best:        %q\nRating:      %.4f / %.4f\nGenerations: %d\n",
		r.Best, r.BestRating, r.MaxScore, r.Generations)
	if err != nil {
		return err
	}
	if r.Stopped != "" {
		if _, err = fmt.Fprintf(w, "Stopped:     %s\n", r.Stopped); err != nil {
			return err
		}
	}
	s := r.Summary
	_, err = fmt.Fprintf(w, "Population:  %d  mean %.4f ± %.4f (%g%%)  stdev %.4f  median %.4f  worst %.4f\n",
		s.Size, s.Mean, s.MeanMargin, stats.Confidence, s.Stdev, s.Median, s.Worst)
	if err != nil {
		return err
	}
	if len(r.Ratings) == 0 || bins < 1 {
		return nil
	}
	if _, err = fmt.Fprintln(w, "\nFinal ratings:"); err != nil {
		return err
	}
	return histogram.Fprint(w, histogram.Hist(bins, r.Ratings), histogram.Linear(histogramWidth))
}
