// Package evolution implements a generational genetic search over an opaque
// genotype. Callers plug in how candidates are generated, scored, selected,
// recombined and perturbed, and when the search should stop.
package evolution

// Generator produces one fresh candidate.
type Generator[T any] interface {
	Generate() T
}

// Evaluator scores a candidate; higher is better. Evaluate is called from
// several goroutines at once and must not mutate shared state.
type Evaluator[T any] interface {
	Evaluate(T) float64
}

// Selector picks the parent pool for the next generation. ratings[i] is the
// fitness of population[i]. The returned slice may differ in length from
// the population but holds independent copies.
type Selector[T any] interface {
	Select(population []T, ratings []float64) ([]T, error)
}

// Crossover recombines two parents into a new child.
type Crossover[T any] interface {
	Cross(a, b T) T
}

// Mutation perturbs a candidate in place.
type Mutation[T any] interface {
	Mutate(*T)
}

// Criterion decides whether the search is over. It is called once per
// generation with the current ratings and may keep state between calls.
type Criterion interface {
	ShouldStop(ratings []float64) bool
}

type GeneratorFunc[T any] func() T

func (f GeneratorFunc[T]) Generate() T { return f() }

type EvaluatorFunc[T any] func(T) float64

func (f EvaluatorFunc[T]) Evaluate(v T) float64 { return f(v) }

type SelectorFunc[T any] func([]T, []float64) ([]T, error)

func (f SelectorFunc[T]) Select(population []T, ratings []float64) ([]T, error) {
	return f(population, ratings)
}

type CrossoverFunc[T any] func(a, b T) T

func (f CrossoverFunc[T]) Cross(a, b T) T { return f(a, b) }

type MutationFunc[T any] func(*T)

func (f MutationFunc[T]) Mutate(v *T) { f(v) }

type CriterionFunc func([]float64) bool

func (f CriterionFunc) ShouldStop(ratings []float64) bool { return f(ratings) }

// Cloner is implemented by genotypes that hold references (slices, maps,
// pointers) and need a deep copy to be independent of the original.
type Cloner[T any] interface {
	Clone() T
}

// Clone returns an independent copy of v: v.Clone() if T implements
// Cloner[T], otherwise a plain value copy.
func Clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}
