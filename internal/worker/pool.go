// Package worker runs independent jobs on a bounded set of goroutines and
// hands back results in submission order.
package worker

import (
	"context"
	"sync"
)

// Job is one input tagged with its position.
type Job[T any] struct {
	Index int
	Data  T
}

// Result is the outcome of one Job, at the job's Index.
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// ProcessFunc handles a single job.
type ProcessFunc[I, O any] func(ctx context.Context, job Job[I]) (O, error)

// ProgressFunc is called from the collecting goroutine after each job completes.
type ProgressFunc func(completed, total int)

// Map processes items on at most workers goroutines and returns one result
// per item, in item order. Once ctx is done, jobs not yet started are
// reported with ctx.Err() instead of being run.
func Map[I, O any](ctx context.Context, items []I, workers int, process ProcessFunc[I, O], onProgress ProgressFunc) []Result[O] {
	total := len(items)
	if total == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	jobs := make(chan Job[I], total)
	for i, item := range items {
		jobs <- Job[I]{Index: i, Data: item}
	}
	close(jobs)

	resultChan := make(chan Result[O], total)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := ctx.Err(); err != nil {
					resultChan <- Result[O]{Index: job.Index, Err: err}
					continue
				}
				value, err := process(ctx, job)
				resultChan <- Result[O]{Index: job.Index, Value: value, Err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result[O], total)
	completed := 0
	for result := range resultChan {
		results[result.Index] = result
		completed++
		if onProgress != nil {
			onProgress(completed, total)
		}
	}
	return results
}
