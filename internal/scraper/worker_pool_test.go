package scraper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPool_RunsEveryTask(t *testing.T) {
	pool := NewWorkerPool(3, 10)
	results := pool.Run(context.Background())

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		pool.Submit(i, func(ctx context.Context) error {
			ran.Add(1)
			if i%2 == 1 {
				return errors.New("odd")
			}
			return nil
		})
	}
	pool.Close()

	seen := map[int]bool{}
	failed := 0
	for r := range results {
		seen[r.Index] = true
		if r.Err != nil {
			failed++
			assert.Equal(t, 1, r.Index%2)
		}
	}
	assert.Len(t, seen, 10)
	assert.Equal(t, 5, failed)
	assert.EqualValues(t, 10, ran.Load())
}

func TestWorkerPool_RateLimit(t *testing.T) {
	pool := NewWorkerPool(4, 4)
	pool.SetRateLimit(20)
	results := pool.Run(context.Background())

	start := time.Now()
	for i := 0; i < 4; i++ {
		pool.Submit(i, func(ctx context.Context) error { return nil })
	}
	pool.Close()
	for range results {
	}
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestWorkerPool_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewWorkerPool(1, 2)
	results := pool.Run(ctx)

	pool.Submit(0, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	cancel()
	pool.Close()

	select {
	case <-drain(results):
	case <-time.After(2 * time.Second):
		require.FailNow(t, "pool did not stop after cancel")
	}
}

func drain(ch <-chan Result) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		for range ch {
		}
		close(done)
	}()
	return done
}
