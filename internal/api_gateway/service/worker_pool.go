package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"
)

// WorkerPool runs report computations on a bounded goroutine pool
type WorkerPool struct {
	pool   *ants.Pool
	logger *slog.Logger
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPool(config WorkerPoolConfig, logger *slog.Logger) (*WorkerPool, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	return &WorkerPool{
		pool:   pool,
		logger: logger,
	}, nil
}

// RunAll submits every task to the pool and waits until all of them finish or ctx is
// done. Task errors are joined; a panicking task is reported as an error.
func (w *WorkerPool) RunAll(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	results := make(chan error, len(tasks))

	for i, task := range tasks {
		err := w.pool.Submit(func() {
			defer func() {
				if r := recover(); r != nil {
					w.logger.Error("Worker task panicked", "task", i, "panic", r)
					results <- fmt.Errorf("task %d panicked: %v", i, r)
				}
			}()
			results <- task(ctx)
		})
		if err != nil {
			w.logger.Error("Failed to submit task to worker pool", "task", i, "error", err)
			results <- fmt.Errorf("failed to submit task %d: %w", i, err)
		}
	}

	var errs []error
	for range tasks {
		select {
		case err := <-results:
			if err != nil {
				errs = append(errs, err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return errors.Join(errs...)
}

// Shutdown releases the pool's workers
func (w *WorkerPool) Shutdown() {
	w.logger.Info("Shutting down worker pool", "running_workers", w.pool.Running())
	w.pool.Release()
}

// Running returns the number of running workers in the pool.
func (w *WorkerPool) Running() int {
	return w.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (w *WorkerPool) Capacity() int {
	return w.pool.Cap()
}
