package scraper

import (
	"context"
	"sync"
	"time"
)

type Task func(ctx context.Context) error

// Result reports a finished task by the index it was submitted under.
type Result struct {
	Index int
	Err   error
}

type job struct {
	index int
	run   Task
}

type WorkerPool struct {
	workers int
	tasks   chan job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan job, buffer),
	}
}

// SetRateLimit spaces task starts across all workers; rps <= 0 removes the limit.
func (p *WorkerPool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTicker()
	if rps <= 0 {
		return
	}
	p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	p.rate = p.ticker.C
}

func (p *WorkerPool) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
}

func (p *WorkerPool) Submit(index int, t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- job{index: index, run: t}
}

func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.stopTicker()
	p.mu.Unlock()
	close(p.tasks)
}

// Run starts the workers. The returned channel closes once Close has been
// called and every queued task has finished, or when ctx is done.
func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-p.tasks:
					if !ok {
						return
					}
					p.mu.RLock()
					rate := p.rate
					p.mu.RUnlock()
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					err := j.run(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Index: j.index, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
