package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const maxAttempts = 3

// Runner executes fire-and-forget background tasks. Each task runs in its
// own goroutine detached from the request lifetime, is retried up to three
// times with backoff, and never reports failure to the caller.
type Runner struct {
	wg sync.WaitGroup
}

func NewRunner() *Runner {
	return &Runner{}
}

// Go schedules fn in the background. The context passed to fn is independent
// of any request context so the task survives the response being written.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				slog.Error("Background task panicked", "task", name, "panic", p)
			}
		}()

		ctx := context.Background()
		var lastErr error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err := fn(ctx); err == nil {
				if attempt > 1 {
					slog.Info("Background task succeeded after retry", "task", name, "attempt", attempt)
				}
				return
			} else {
				lastErr = err
				slog.Warn("Background task attempt failed", "task", name, "attempt", attempt, "error", err)
			}

			if attempt < maxAttempts {
				time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
			}
		}
		slog.Error("Background task failed", "task", name, "attempts", maxAttempts, "error", lastErr)
	}()
}

// Wait blocks until all scheduled tasks have finished. Used on shutdown and
// in tests.
func (r *Runner) Wait() {
	r.wg.Wait()
}
