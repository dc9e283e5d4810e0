package workerpool

import (
	"context"
	"sync"
	"time"
)

type Task func(ctx context.Context) error

// Result reports the outcome of the task submitted with the same ID.
type Result struct {
	ID  int
	Err error
}

type job struct {
	id   int
	task Task
}

// Pool runs submitted tasks on a fixed number of workers, optionally capped
// to a number of task starts per second. Submit blocks once the buffer is
// full, so Run must be started first.
type Pool struct {
	workers int
	jobs    chan job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
}

func New(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{workers: workers, jobs: make(chan job, buffer)}
}

func (p *Pool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker, p.rate = nil, nil
	}
	if rps <= 0 {
		return
	}
	p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	p.rate = p.ticker.C
}

func (p *Pool) Submit(id int, t Task) {
	if p == nil || t == nil {
		return
	}
	p.jobs <- job{id: id, task: t}
}

// Close stops accepting tasks. Results keep flowing until every queued
// task has run.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.jobs)
}

// Run starts the workers. The returned channel is closed when all workers
// have exited, either because Close drained the queue or ctx ended.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.work(ctx, out)
	}

	go func() {
		p.wg.Wait()
		p.SetRateLimit(0)
		close(out)
	}()

	return out
}

func (p *Pool) work(ctx context.Context, out chan<- Result) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-p.jobs:
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
			err := j.task(ctx)
			select {
			case <-ctx.Done():
				return
			case out <- Result{ID: j.id, Err: err}:
			}
		}
	}
}
