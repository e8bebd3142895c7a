// Package parallel runs a function over a slice split into contiguous
// partitions, one goroutine per partition, and stitches the results back
// together in input order.
package parallel

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

var (
	ErrNoWorkers = errors.New("worker count must be positive")
	ErrPanicked  = errors.New("worker panicked")
)

// Span is a half-open range [Begin, End) of a partitioned slice.
type Span struct {
	Begin int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Begin
}

// Partitions splits n elements into w contiguous spans. Every span but the
// last holds n/w elements; the last one also takes the n%w leftover. When
// n < w the leading spans are empty and the last span holds everything.
func Partitions(n, w int) ([]Span, error) {
	if w <= 0 {
		return nil, fmt.Errorf("partition %d elements over %d workers: %w", n, w, ErrNoWorkers)
	}
	per := n / w
	spans := make([]Span, w)
	for k := range spans {
		begin := k * per
		end := begin + per
		if k == w-1 {
			end = n
		}
		spans[k] = Span{Begin: begin, End: end}
	}
	return spans, nil
}

// Map applies fn to every element of in using `workers` goroutines, each
// owning one partition from Partitions. The output is index-aligned with in
// no matter how the goroutines are scheduled. Map blocks until every worker
// has returned. The first error (or recovered panic) cancels the context
// handed to the remaining workers and is returned; there is no partial
// output in that case.
func Map[In, Out any](ctx context.Context, workers int, in []In,
	fn func(context.Context, In) (Out, error)) ([]Out, error) {

	spans, err := Partitions(len(in), workers)
	if err != nil {
		return nil, err
	}

	parts := make([][]Out, len(spans))
	g, gctx := errgroup.WithContext(ctx)

	for k, span := range spans {
		if span.Len() == 0 {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("partition %d [%d:%d]: %w: %v",
						k, span.Begin, span.End, ErrPanicked, r)
				}
			}()
			buf := make([]Out, 0, span.Len())
			for _, v := range in[span.Begin:span.End] {
				if err := gctx.Err(); err != nil {
					return err
				}
				out, err := fn(gctx, v)
				if err != nil {
					return fmt.Errorf("partition %d [%d:%d]: %w", k, span.Begin, span.End, err)
				}
				buf = append(buf, out)
			}
			parts[k] = buf
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Out, 0, len(in))
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}
