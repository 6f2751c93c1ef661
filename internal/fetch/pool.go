package fetch

import (
	"context"
	"sync"
	"time"
)

// Fetcher performs one fetch attempt for a task. Implementations must
// write through a temporary path and only materialize the canonical
// LocalPath on full success, and must clean up their temporaries when an
// attempt fails.
type Fetcher interface {
	Fetch(ctx context.Context, task Task) error
}

// Options configures the transfer pool.
type Options struct {
	// Workers is the number of concurrent transfers. Default: 4.
	Workers int

	// Attempts is the per-task attempt ceiling. Default: 3.
	Attempts int

	// RetryDelay is the fixed pause between attempts. Default: 2s.
	RetryDelay time.Duration
}

// Pool drains a queue of tasks with a fixed number of concurrent workers.
// Every submitted task yields exactly one Result; completion order is
// unspecified.
type Pool struct {
	fetcher Fetcher
	opts    Options
}

// NewPool creates a pool around the given fetcher.
func NewPool(fetcher Fetcher, opts Options) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Attempts <= 0 {
		opts.Attempts = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}
	return &Pool{fetcher: fetcher, opts: opts}
}

// Run feeds the tasks through the workers and streams results. The
// channel closes once every submitted task has reported. Cancelling the
// context stops submission of new tasks; in-flight tasks still report.
func (p *Pool) Run(ctx context.Context, tasks []Task) <-chan Result {
	jobs := make(chan Task)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < p.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				results <- p.runTask(ctx, task)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, task := range tasks {
			select {
			case jobs <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// runTask executes the attempt loop for one task.
func (p *Pool) runTask(ctx context.Context, task Task) Result {
	var lastErr error

	for attempt := 1; attempt <= p.opts.Attempts; attempt++ {
		err := p.fetcher.Fetch(ctx, task)
		if err == nil {
			return Result{Task: task, Status: StatusDownloaded, Attempts: attempt}
		}
		lastErr = err

		// A cancelled run should not burn the remaining attempts.
		if ctx.Err() != nil {
			return Result{Task: task, Status: StatusFailed, Attempts: attempt, Err: ctx.Err()}
		}

		if attempt < p.opts.Attempts {
			select {
			case <-time.After(p.opts.RetryDelay):
			case <-ctx.Done():
				return Result{Task: task, Status: StatusFailed, Attempts: attempt, Err: ctx.Err()}
			}
		}
	}

	return Result{Task: task, Status: StatusFailed, Attempts: p.opts.Attempts, Err: lastErr}
}
