package evolution

import (
	"context"
	"errors"
	"fmt"

	"github.com/domino14/genetic/parallel"
)

// DefaultWorkers is the number of evaluation partitions used when a Config
// does not set one.
const DefaultWorkers = 8

// Evaluate scores every member of population with eval, split across
// `workers` partitions. ratings[i] always belongs to population[i].
//
// Once started, an evaluation is not interrupted by cancellation of ctx;
// it either completes or fails as a whole.
func Evaluate[T any](ctx context.Context, workers int, population []T, eval Evaluator[T]) ([]float64, error) {
	ratings, err := parallel.Map(context.WithoutCancel(ctx), workers, population,
		func(_ context.Context, g T) (float64, error) {
			return eval.Evaluate(g), nil
		})
	if err != nil {
		if errors.Is(err, parallel.ErrNoWorkers) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrWorkerFailed, err)
	}
	return ratings, nil
}
