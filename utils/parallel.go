package utils

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers bounds the goroutines used by Map, MapErr and ForEach.
var Workers = runtime.NumCPU()

// ForEach calls fn for every index in [0, n) with at most Workers calls in
// flight. Completion order is unspecified; every index runs exactly once.
func ForEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if Workers <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(Workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// Map runs fn over [0, n) in parallel and returns the results in index order.
// Each slot of the result is written by exactly one task.
func Map[R any](n int, fn func(i int) R) []R {
	out := make([]R, n)
	ForEach(n, func(i int) {
		out[i] = fn(i)
	})
	return out
}

// MapErr is Map for fallible tasks. Every task runs; the error of the
// lowest failing index is returned so the outcome does not depend on
// scheduling.
func MapErr[R any](n int, fn func(i int) (R, error)) ([]R, error) {
	out := make([]R, n)
	errs := make([]error, n)
	ForEach(n, func(i int) {
		out[i], errs[i] = fn(i)
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
