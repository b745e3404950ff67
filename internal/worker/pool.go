package worker

import (
	"context"
	"sync"
)

// DefaultConcurrency caps parallel calls against the backing data service
// during batch scoring and bulk transitions.
const DefaultConcurrency = 10

type Task func(ctx context.Context)

// Pool runs tasks with bounded concurrency. Each task owns its inputs and
// outputs; the pool adds no shared state beyond the semaphore.
type Pool struct {
	workers int
}

func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultConcurrency
	}
	return &Pool{workers: workers}
}

// Run executes every task and blocks until all are done or the context is
// cancelled. Tasks not yet started when ctx is cancelled are skipped; tasks
// already running finish on their own.
func (p *Pool) Run(ctx context.Context, tasks []Task) {
	if p == nil || len(tasks) == 0 {
		return
	}

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for _, t := range tasks {
		if t == nil {
			continue
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(task Task) {
			defer wg.Done()
			defer func() { <-sem }()
			task(ctx)
		}(t)
	}

	wg.Wait()
}
