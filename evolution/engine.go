package evolution

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/domino14/genetic/stats"
)

// DefaultMutationRate is the probability that a freshly bred child is
// passed to the Mutation strategy.
const DefaultMutationRate = 0.24

// Config holds the tunables of a search.
type Config struct {
	// PopSize is the number of candidates in every generation.
	PopSize int
	// Workers is the number of evaluation partitions. 0 means DefaultWorkers.
	Workers int
	// MutationRate is the per-child mutation probability, in [0, 1].
	MutationRate float64
	// Seed seeds the engine's random source when Rand is nil. 0 picks an
	// unpredictable seed.
	Seed uint64
	// Rand, if set, is used for parent sampling and mutation rolls. It is
	// only touched from the goroutine running Search.
	Rand *rand.Rand
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PopSize:      1000,
		Workers:      DefaultWorkers,
		MutationRate: DefaultMutationRate,
	}
}

// NewRand returns a PCG-backed source for a non-zero seed and a fast
// cryptographic source otherwise.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(frand.NewSource())
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Generation is handed to the OnGeneration observer after every evaluation,
// starting with the initial population (Number 0).
type Generation struct {
	Number  int
	Size    int
	Rated   int
	Summary stats.Summary
}

// Result is the outcome of a search.
type Result[T any] struct {
	Best        T
	Generations int
	BestRating  float64
	// Ratings belong to the last generation; Best sat at Summary.BestIndex.
	Ratings []float64
	Summary stats.Summary
}

// Engine runs the generational loop.
type Engine[T any] struct {
	generator Generator[T]
	evaluator Evaluator[T]
	selector  Selector[T]
	crossover Crossover[T]
	mutation  Mutation[T]

	cfg      Config
	rng      *rand.Rand
	observer func(Generation)
}

// NewEngine creates an engine. mutation may be nil, in which case children
// are never mutated.
func NewEngine[T any](
	generator Generator[T],
	evaluator Evaluator[T],
	selector Selector[T],
	crossover Crossover[T],
	mutation Mutation[T],
	cfg Config,
) *Engine[T] {
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	rng := cfg.Rand
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	return &Engine[T]{
		generator: generator,
		evaluator: evaluator,
		selector:  selector,
		crossover: crossover,
		mutation:  mutation,
		cfg:       cfg,
		rng:       rng,
	}
}

// OnGeneration registers a function called after every evaluation.
func (e *Engine[T]) OnGeneration(fn func(Generation)) {
	e.observer = fn
}

// Search runs until crit says to stop and returns the best candidate of the
// final generation. Cancelling ctx stops the search before the next
// breeding cycle; the best candidate so far is returned with ctx.Err().
func (e *Engine[T]) Search(ctx context.Context, crit Criterion) (Result[T], error) {
	logger := zerolog.Ctx(ctx)
	if err := e.validate(crit); err != nil {
		return Result[T]{}, err
	}

	logger.Info().Int("pop-size", e.cfg.PopSize).Int("workers", e.cfg.Workers).
		Float64("mutation-rate", e.cfg.MutationRate).Msg("search-start")

	population := make([]T, 0, e.cfg.PopSize)
	for range e.cfg.PopSize {
		population = append(population, e.generator.Generate())
	}
	ratings, err := Evaluate(ctx, e.cfg.Workers, population, e.evaluator)
	if err != nil {
		return Result[T]{}, fmt.Errorf("evaluate initial population: %w", err)
	}

	gen := 0
	e.notify(gen, population, ratings)
	_, lastBest := stats.ArgMax(ratings)

	for !crit.ShouldStop(ratings) {
		if err := ctx.Err(); err != nil {
			logger.Debug().Int("generation", gen).Err(err).Msg("search-cancelled")
			return e.finish(population, ratings, gen), err
		}

		parents, err := e.selector.Select(population, ratings)
		if err != nil {
			return Result[T]{Generations: gen}, fmt.Errorf("select parents at generation %d: %w", gen, err)
		}
		if len(parents) < 2 {
			return Result[T]{Generations: gen}, fmt.Errorf("generation %d: selector returned %d parents: %w",
				gen, len(parents), ErrParentPoolTooSmall)
		}

		population = e.breed(parents)
		ratings, err = Evaluate(ctx, e.cfg.Workers, population, e.evaluator)
		if err != nil {
			return Result[T]{Generations: gen}, fmt.Errorf("evaluate generation %d: %w", gen+1, err)
		}
		gen++
		e.notify(gen, population, ratings)

		if _, best := stats.ArgMax(ratings); best != lastBest {
			logger.Debug().Int("generation", gen).Float64("best", best).Msg("best-rating-changed")
			lastBest = best
		}
	}

	res := e.finish(population, ratings, gen)
	logger.Info().Int("generations", res.Generations).Float64("best-rating", res.BestRating).
		Msg("search-done")
	return res, nil
}

func (e *Engine[T]) validate(crit Criterion) error {
	if e.cfg.PopSize <= 0 {
		return fmt.Errorf("pop size %d: %w", e.cfg.PopSize, ErrInvalidPopSize)
	}
	if e.cfg.MutationRate < 0 || e.cfg.MutationRate > 1 {
		return fmt.Errorf("rate %v: %w", e.cfg.MutationRate, ErrInvalidRate)
	}
	if e.generator == nil || e.evaluator == nil || e.selector == nil || e.crossover == nil || crit == nil {
		return ErrMissingStrategy
	}
	return nil
}

// breed draws PopSize children from the parent pool. Each child has two
// parents at distinct pool indices.
func (e *Engine[T]) breed(parents []T) []T {
	children := make([]T, 0, e.cfg.PopSize)
	n := len(parents)
	for range e.cfg.PopSize {
		i := e.rng.IntN(n)
		j := e.rng.IntN(n)
		for j == i {
			j = e.rng.IntN(n)
		}
		child := e.crossover.Cross(parents[i], parents[j])
		if e.mutation != nil && e.rng.Float64() < e.cfg.MutationRate {
			e.mutation.Mutate(&child)
		}
		children = append(children, child)
	}
	return children
}

func (e *Engine[T]) notify(gen int, population []T, ratings []float64) {
	if e.observer == nil {
		return
	}
	e.observer(Generation{
		Number:  gen,
		Size:    len(population),
		Rated:   len(ratings),
		Summary: stats.Summarize(ratings),
	})
}

// finish picks the best candidate of the last generation. The winner is
// returned as is and stays in place; Ratings and Summary still describe the
// whole final generation.
func (e *Engine[T]) finish(population []T, ratings []float64, gen int) Result[T] {
	idx, best := stats.ArgMax(ratings)
	return Result[T]{
		Best:        population[idx],
		Generations: gen,
		BestRating:  best,
		Ratings:     ratings,
		Summary:     stats.Summarize(ratings),
	}
}

// Search runs a search with DefaultConfig and the given population size.
func Search[T any](ctx context.Context, generator Generator[T], evaluator Evaluator[T],
	selector Selector[T], crossover Crossover[T], mutation Mutation[T], crit Criterion,
	popSize int) (Result[T], error) {

	cfg := DefaultConfig()
	cfg.PopSize = popSize
	return NewEngine(generator, evaluator, selector, crossover, mutation, cfg).Search(ctx, crit)
}
