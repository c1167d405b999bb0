// Package worker provides the fixed-size goroutine pool used to fan article
// preprocessing out across CPU cores. Partition sinks serialize internally,
// so jobs only need the pool for scheduling, not for synchronization.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work to be executed by the pool.
type Job interface {
	Execute(ctx context.Context) error
}

// Pool runs jobs over a fixed number of workers.
type Pool struct {
	workers int
}

// NewPool creates a pool with the specified number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns every error encountered, in no
// particular order. Submission stops early when ctx is cancelled; jobs
// already picked up still finish.
func (p *Pool) Run(ctx context.Context, jobs []Job) []error {
	queue := make(chan Job)
	errCh := make(chan error, len(jobs)+1)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				if err := job.Execute(ctx); err != nil {
					errCh <- err
				}
			}
		}()
	}

submit:
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			errCh <- err
			break
		}
		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
			break submit
		case queue <- job:
		}
	}
	close(queue)
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errs
}
