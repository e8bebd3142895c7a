package evolution

import "errors"

var (
	ErrInvalidPopSize     = errors.New("population size must be positive")
	ErrParentPoolTooSmall = errors.New("parent pool needs at least two members")
	ErrWorkerFailed       = errors.New("fitness evaluation failed")
	ErrInvalidRate        = errors.New("mutation rate must be within [0, 1]")
	ErrMissingStrategy    = errors.New("generator, evaluator, selector, crossover and criterion are required")
)
