package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool. Claim evaluations and batch
// check runs both implement it.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	GetError() error
}

// Pool runs jobs over a fixed number of worker goroutines. Claims have no
// cross-claim state, so evaluation parallelizes with no locking beyond the
// pool's own channels.
type Pool struct {
	workers      int
	jobs         chan Job
	results      chan Result
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
	closeJobs    sync.Once
	closeResults sync.Once
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Blocks when the queue is full, so submission should
// happen on a goroutine separate from the one draining Wait. No Submit may
// follow Close.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Close marks the queue complete. Call it from the submitting goroutine once
// every job has been queued.
func (p *Pool) Close() {
	p.closeJobs.Do(func() { close(p.jobs) })
}

// Wait drains all results and returns them once the queue has been closed
// and the workers have finished.
func (p *Pool) Wait() []Result {
	go func() {
		p.wg.Wait()
		p.finish()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}
	return results
}

// Shutdown cancels in-flight work and releases the workers.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.finish()
}

func (p *Pool) finish() {
	p.closeResults.Do(func() { close(p.results) })
}
