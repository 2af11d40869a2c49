package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunAll(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name          string
		tasks         []func(context.Context) error
		expectedError string
	}{
		{
			name: "all tasks succeed",
			tasks: []func(context.Context) error{
				func(context.Context) error { return nil },
				func(context.Context) error { return nil },
			},
		},
		{
			name: "task error is returned",
			tasks: []func(context.Context) error{
				func(context.Context) error { return nil },
				func(context.Context) error { return errors.New("aggregation failed") },
			},
			expectedError: "aggregation failed",
		},
		{
			name: "panicking task is reported",
			tasks: []func(context.Context) error{
				func(context.Context) error { panic("boom") },
			},
			expectedError: "panicked: boom",
		},
		{
			name: "no tasks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewWorkerPool(WorkerPoolConfig{Size: 2}, logger)
			require.NoError(t, err)
			defer pool.Shutdown()

			err = pool.RunAll(context.Background(), tt.tasks...)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWorkerPool_Concurrency(t *testing.T) {
	pool, err := NewWorkerPool(WorkerPoolConfig{Size: 5}, slog.Default())
	require.NoError(t, err)
	defer pool.Shutdown()

	var counter atomic.Int32
	tasks := make([]func(context.Context) error, 10)
	for i := range tasks {
		tasks[i] = func(context.Context) error {
			time.Sleep(10 * time.Millisecond)
			counter.Add(1)
			return nil
		}
	}

	err = pool.RunAll(context.Background(), tasks...)

	require.NoError(t, err)
	assert.Equal(t, int32(10), counter.Load())
	assert.Equal(t, 5, pool.Capacity())
}

func TestWorkerPool_ContextCanceled(t *testing.T) {
	pool, err := NewWorkerPool(WorkerPoolConfig{Size: 1}, slog.Default())
	require.NoError(t, err)
	defer pool.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err = pool.RunAll(ctx, func(context.Context) error {
		<-release
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewWorkerPool_InvalidSize(t *testing.T) {
	pool, err := NewWorkerPool(WorkerPoolConfig{Size: 0}, slog.Default())

	// ants treats a non-positive size as unbounded
	require.NoError(t, err)
	assert.Equal(t, -1, pool.Capacity())
	pool.Shutdown()
}
