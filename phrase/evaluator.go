package phrase

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/domino14/genetic/evolution"
)

const (
	EvaluatorBasic       = "basic"
	EvaluatorMotus       = "motus"
	EvaluatorLevenshtein = "levenshtein"
)

// Evaluator is a phrase fitness function that knows its best possible
// score.
type Evaluator interface {
	evolution.Evaluator[string]
	MaxScore() float64
}

// NewEvaluator returns the evaluator registered under name.
func NewEvaluator(name, secret string) (Evaluator, error) {
	switch name {
	case EvaluatorBasic:
		return Basic{Secret: secret}, nil
	case EvaluatorMotus:
		return Motus{Secret: secret}, nil
	case EvaluatorLevenshtein:
		return Levenshtein{Secret: secret}, nil
	}
	return nil, fmt.Errorf("unknown evaluator: %s (available: %v)", name, EvaluatorNames())
}

func EvaluatorNames() []string {
	return []string{EvaluatorBasic, EvaluatorMotus, EvaluatorLevenshtein}
}

// Basic scores 1 for every character in the right place and gives partial
// credit to wrong characters that are close to the right one in code point.
type Basic struct {
	Secret string
}

func (b Basic) Evaluate(s string) float64 {
	want := []rune(b.Secret)
	val := 0.0
	for i, c := range []rune(s) {
		if i >= len(want) {
			break
		}
		if c == want[i] {
			val += 1.0
			continue
		}
		diff := c - want[i]
		if diff < 0 {
			diff = -diff
		}
		val += 1.8 / float64(diff+1)
	}
	return val
}

func (b Basic) MaxScore() float64 {
	return float64(len([]rune(b.Secret)))
}

// Motus scores like the word game: 1 for a character in the right place,
// 0.5 for a character present elsewhere in the secret. Each secret
// character is credited at most once.
type Motus struct {
	Secret string
}

func (m Motus) Evaluate(s string) float64 {
	want := []rune(m.Secret)
	got := []rune(s)
	used := make([]bool, len(want))
	exact := make([]bool, len(got))
	val := 0.0
	for i, c := range got {
		if i < len(want) && c == want[i] {
			used[i] = true
			exact[i] = true
			val += 1.0
		}
	}
	for i, c := range got {
		if exact[i] {
			continue
		}
		for j, w := range want {
			if !used[j] && w == c {
				used[j] = true
				val += 0.5
				break
			}
		}
	}
	return val
}

func (m Motus) MaxScore() float64 {
	return float64(len([]rune(m.Secret)))
}

// Levenshtein scores the secret length minus the edit distance to it.
// Candidates much longer than the secret can score below zero.
type Levenshtein struct {
	Secret string
}

func (l Levenshtein) Evaluate(s string) float64 {
	return float64(len([]rune(l.Secret)) - levenshtein.ComputeDistance(l.Secret, s))
}

func (l Levenshtein) MaxScore() float64 {
	return float64(len([]rune(l.Secret)))
}
