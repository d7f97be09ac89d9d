package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs numbered tasks on a fixed set of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Zero or negative means one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run hands tasks 0..numTasks-1 to the workers in ascending order and waits
// for them to drain. The first error returned by work cancels the context
// passed to every other task, and is the error Run returns.
func (wp *WorkerPool) Run(ctx context.Context, numTasks int, work func(ctx context.Context, workerID, task int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	tasks := make(chan int)

	g.Go(func() error {
		defer close(tasks)
		for task := 0; task < numTasks; task++ {
			select {
			case tasks <- task:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for id := 0; id < wp.numWorkers; id++ {
		workerID := id
		g.Go(func() error {
			for task := range tasks {
				if err := work(ctx, workerID, task); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
