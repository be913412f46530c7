// Package workerpool fans per-item work out to a bounded set of goroutines
// and collects the results in input order, so callers can merge them
// deterministically regardless of scheduling.
package workerpool

import (
	"context"
	"runtime"
	"sync"
)

// Size normalizes a requested worker count: values below 1 mean
// runtime.NumCPU().
func Size(workers int) int {
	if workers < 1 {
		return runtime.NumCPU()
	}
	return workers
}

// Map applies fn to every item using at most workers goroutines. Result i
// always belongs to items[i]. When ctx is cancelled the remaining items are
// skipped and ctx.Err() is returned.
func Map[T, R any](ctx context.Context, items []T, workers int, fn func(i int, item T) R) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, ctx.Err()
	}

	workers = Size(workers)
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fn(i, items[i])
			}
		}()
	}

	var err error
feed:
	for i := range items {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results, err
}
