package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ParallelLimit runs fns with at most limit in flight and returns their
// results in input order. The first error cancels the rest.
func ParallelLimit[T any](ctx context.Context, limit int, fns ...func(context.Context) (T, error)) ([]T, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	results := make([]T, len(fns))

	for i, fn := range fns {
		g.Go(func() error {
			v, err := fn(ctx)
			if err != nil {
				return err
			}

			results[i] = v

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parallel execution failed: %w", err)
	}

	return results, nil
}

// PartialResult is the outcome of one function run by ParallelPartialLimit.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// ParallelPartialLimit runs every fn to completion with at most limit in
// flight. Failures do not cancel the others.
func ParallelPartialLimit[T any](ctx context.Context, limit int, fns ...func(context.Context) (T, error)) []PartialResult[T] {
	var g errgroup.Group
	g.SetLimit(max(limit, 1))

	results := make([]PartialResult[T], len(fns))

	for i, fn := range fns {
		g.Go(func() error {
			v, err := fn(ctx)
			results[i] = PartialResult[T]{Value: v, Err: err}

			return nil
		})
	}

	_ = g.Wait()

	return results
}
