package catalog

import (
	"context"
	"sync"
)

// workerPool is a fixed-size goroutine pool for the per-event pipeline.
// Jobs go in through Submit, results stream out of Results, and the results
// channel closes once Close is called and every worker has drained.
type workerPool[T, R any] struct {
	jobs    chan T
	results chan R
	wg      sync.WaitGroup
}

// newWorkerPool creates and starts a pool with n goroutines.
func newWorkerPool[T, R any](ctx context.Context, n int, fn func(ctx context.Context, t T) R) *workerPool[T, R] {
	p := &workerPool[T, R]{
		jobs:    make(chan T),
		results: make(chan R, n),
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for t := range p.jobs {
				p.results <- fn(ctx, t)
			}
		}()
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
	return p
}

// Submit enqueues a job, blocking until a worker is free. Returns false if
// the context was cancelled first.
func (p *workerPool[T, R]) Submit(ctx context.Context, t T) bool {
	select {
	case p.jobs <- t:
		return true
	case <-ctx.Done():
		return false
	}
}

// Close signals that no more jobs will be submitted.
func (p *workerPool[T, R]) Close() {
	close(p.jobs)
}

// Results returns the stream of completed results.
func (p *workerPool[T, R]) Results() <-chan R {
	return p.results
}
