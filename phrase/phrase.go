// Package phrase is an example domain for the evolution engine: evolve a
// random string until it matches a secret phrase.
package phrase

import (
	"math/rand/v2"

	"github.com/domino14/genetic/evolution"
)

const Alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultCharRate is the chance that Mutation rewrites a given character.
const DefaultCharRate = 0.10

// Generator makes random strings of Size characters over Alphabet.
type Generator struct {
	Size     int
	alphabet []rune
	rng      *rand.Rand
}

func NewGenerator(size int, alphabet string, rng *rand.Rand) *Generator {
	return &Generator{Size: size, alphabet: []rune(alphabet), rng: rng}
}

func (g *Generator) Generate() string {
	out := make([]rune, g.Size)
	for i := range out {
		out[i] = g.alphabet[g.rng.IntN(len(g.alphabet))]
	}
	return string(out)
}

// Crossover copies the first parent and overwrites one random contiguous
// span with the second parent's characters at the same positions.
type Crossover struct {
	rng *rand.Rand
}

func NewCrossover(rng *rand.Rand) *Crossover {
	return &Crossover{rng: rng}
}

func (c *Crossover) Cross(a, b string) string {
	ra, rb := []rune(a), []rune(b)
	n := min(len(ra), len(rb))
	if n == 0 {
		return a
	}
	pos := c.rng.IntN(n)
	span := 1 + c.rng.IntN(n-pos)
	copy(ra[pos:pos+span], rb[pos:pos+span])
	return string(ra)
}

// Mutation replaces each character, with probability Rate, by a random
// character of the alphabet.
type Mutation struct {
	Rate     float64
	alphabet []rune
	rng      *rand.Rand
}

func NewMutation(rate float64, alphabet string, rng *rand.Rand) *Mutation {
	return &Mutation{Rate: rate, alphabet: []rune(alphabet), rng: rng}
}

func (m *Mutation) Mutate(s *string) {
	r := []rune(*s)
	for i := range r {
		if m.rng.Float64() < m.Rate {
			r[i] = m.alphabet[m.rng.IntN(len(m.alphabet))]
		}
	}
	*s = string(r)
}

var (
	_ evolution.Generator[string] = (*Generator)(nil)
	_ evolution.Crossover[string] = (*Crossover)(nil)
	_ evolution.Mutation[string]  = (*Mutation)(nil)
)
