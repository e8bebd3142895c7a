package phrase

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/genetic/criterion"
	"github.com/domino14/genetic/evolution"
	"github.com/domino14/genetic/selector"
	"github.com/domino14/genetic/stats"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(8, 16))
}

func TestGenerator(t *testing.T) {
	is := is.New(t)
	g := NewGenerator(12, "ab", testRand())
	for range 20 {
		s := g.Generate()
		is.Equal(len(s), 12)
		is.Equal(strings.Trim(s, "ab"), "")
	}
}

func TestCrossoverIdenticalParents(t *testing.T) {
	is := is.New(t)
	c := NewCrossover(testRand())
	for range 50 {
		is.Equal(c.Cross("coucou", "coucou"), "coucou")
	}
}

func TestCrossoverTakesSpanFromSecondParent(t *testing.T) {
	is := is.New(t)
	c := NewCrossover(testRand())
	for range 100 {
		child := c.Cross("aaaaaaaa", "bbbbbbbb")
		is.Equal(len(child), 8)
		// exactly one contiguous run of b's, at least one long
		trimmed := strings.Trim(child, "a")
		is.True(len(trimmed) >= 1)
		is.Equal(strings.Trim(trimmed, "b"), "")
	}
	is.Equal(c.Cross("", "abc"), "")
}

func TestMutation(t *testing.T) {
	is := is.New(t)
	s := "hello world"
	NewMutation(0, Alphanumeric, testRand()).Mutate(&s)
	is.Equal(s, "hello world")

	NewMutation(1, "z", testRand()).Mutate(&s)
	is.Equal(s, "zzzzzzzzzzz")
}

func TestBasic(t *testing.T) {
	is := is.New(t)
	b := Basic{Secret: "coucou"}
	is.Equal(b.Evaluate("coucou"), 6.0)
	is.Equal(b.MaxScore(), 6.0)
	is.True(stats.FuzzyEqual(Basic{Secret: "b"}.Evaluate("a"), 0.9))
	is.True(stats.FuzzyEqual(Basic{Secret: "b"}.Evaluate("d"), 0.6))
	is.True(b.Evaluate("coucoX") < 6)
}

func TestMotus(t *testing.T) {
	is := is.New(t)
	is.Equal(Motus{Secret: "abcd"}.Evaluate("abcd"), 4.0)
	is.Equal(Motus{Secret: "abcd"}.Evaluate("abdc"), 3.0)
	is.Equal(Motus{Secret: "abcd"}.Evaluate("xxxx"), 0.0)
	is.Equal(Motus{Secret: "abca"}.Evaluate("aaaa"), 2.0)
	is.Equal(Motus{Secret: "abca"}.Evaluate("baxx"), 1.0)
}

func TestLevenshtein(t *testing.T) {
	is := is.New(t)
	is.Equal(Levenshtein{Secret: "kitten"}.Evaluate("sitting"), 3.0)
	is.Equal(Levenshtein{Secret: "abc"}.Evaluate(""), 0.0)
	is.Equal(Levenshtein{Secret: "été"}.Evaluate("ete"), 1.0)
	is.Equal(Levenshtein{Secret: "ab"}.Evaluate("abcdef"), -2.0)
	is.Equal(Levenshtein{Secret: "hello"}.Evaluate("hello"), 5.0)
	is.Equal(Levenshtein{Secret: "hello"}.Evaluate("hallo"), 4.0)
}

func TestNewEvaluator(t *testing.T) {
	is := is.New(t)
	for _, name := range EvaluatorNames() {
		e, err := NewEvaluator(name, "abc")
		is.NoErr(err)
		is.Equal(e.MaxScore(), 3.0)
		is.Equal(e.Evaluate("abc"), 3.0)
	}
	_, err := NewEvaluator("nope", "abc")
	is.True(err != nil)
}

func TestEvolveSecret(t *testing.T) {
	is := is.New(t)
	rng := testRand()
	secret := "cat"
	eval := Basic{Secret: secret}
	cfg := evolution.Config{PopSize: 300, MutationRate: 0.24, Rand: rng}
	eng := evolution.NewEngine[string](
		NewGenerator(len(secret), Alphanumeric, rng),
		eval,
		selector.NewTournament[string](100, 5, rng),
		NewCrossover(rng),
		NewMutation(DefaultCharRate, Alphanumeric, rng),
		cfg,
	)
	crit := criterion.Any{criterion.Mark{Threshold: eval.MaxScore()}, criterion.NewIterations(2000)}
	res, err := eng.Search(context.Background(), crit)
	is.NoErr(err)
	is.Equal(res.Best, secret)
	is.Equal(res.BestRating, eval.MaxScore())
}
