package worker

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Pool manages a pool of worker goroutines for parallel value checking.
type Pool struct {
	workers    int
	jobsChan   chan Job
	resultChan chan *JobResult
	checker    Checker
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	closed     atomic.Bool

	// Metrics
	jobsSubmitted atomic.Uint64
	jobsCompleted atomic.Uint64
	violations    atomic.Uint64
	totalDuration atomic.Uint64
}

// NewPool creates a new worker pool with the specified number of workers.
// If workers <= 0, it defaults to runtime.NumCPU().
func NewPool(checker Checker, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Pool{
		workers:    workers,
		jobsChan:   make(chan Job, workers*2),
		resultChan: make(chan *JobResult, workers*2),
		checker:    checker,
		ctx:        ctx,
		cancel:     cancel,
	}

	// Start workers
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

// Submit submits a job to the pool for processing. Jobs with an empty ID
// are assigned a fresh UUID. This method blocks if the job queue is full.
func (p *Pool) Submit(job Job) bool {
	if p.closed.Load() {
		return false
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobsChan <- job:
		p.jobsSubmitted.Add(1)
		return true
	}
}

// TrySubmit submits a job without blocking.
// Returns false if the job queue is full or the pool is closed.
func (p *Pool) TrySubmit(job Job) bool {
	if p.closed.Load() {
		return false
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobsChan <- job:
		p.jobsSubmitted.Add(1)
		return true
	default:
		return false
	}
}

// Results returns the channel for receiving job results.
func (p *Pool) Results() <-chan *JobResult {
	return p.resultChan
}

// Close shuts down the pool and waits for all workers to finish.
// IMPORTANT: You must drain Results() channel before calling Close(),
// or use CloseAndWait() to avoid deadlocks.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return // Already closed
	}

	p.cancel() // Signal workers to stop
	close(p.jobsChan)

	// Drain results in background to prevent worker deadlock
	done := make(chan struct{})
	go func() {
		for range p.resultChan {
			// Discard results
		}
		close(done)
	}()

	p.wg.Wait()
	close(p.resultChan)
	<-done
}

// CloseAndWait closes the pool and collects all pending results.
func (p *Pool) CloseAndWait() *BatchResult {
	if p.closed.Swap(true) {
		return &BatchResult{}
	}

	close(p.jobsChan)

	results := make([]*JobResult, 0)
	done := make(chan struct{})

	go func() {
		p.wg.Wait()
		close(p.resultChan)
		close(done)
	}()

	// Drain results until channel is closed
	for result := range p.resultChan {
		results = append(results, result)
	}

	<-done
	p.cancel()

	return &BatchResult{
		Results:       results,
		TotalJobs:     int(p.jobsSubmitted.Load()),
		CompletedJobs: int(p.jobsCompleted.Load()),
		Violations:    int(p.violations.Load()),
	}
}

// Stats returns current pool statistics.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Workers:       p.workers,
		JobsSubmitted: p.jobsSubmitted.Load(),
		JobsCompleted: p.jobsCompleted.Load(),
		Violations:    p.violations.Load(),
		AvgDuration:   p.averageDuration(),
	}
}

// PoolStats contains pool statistics.
type PoolStats struct {
	Workers       int
	JobsSubmitted uint64
	JobsCompleted uint64
	Violations    uint64
	AvgDuration   time.Duration
}

// ErrNoChecker is returned when the pool has no checker configured.
var ErrNoChecker = poolError("no checker configured")

type poolError string

func (e poolError) Error() string { return string(e) }

func (p *Pool) averageDuration() time.Duration {
	completed := p.jobsCompleted.Load()
	if completed == 0 {
		return 0
	}
	return time.Duration(p.totalDuration.Load() / completed)
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobsChan {
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		result := p.processJob(job)
		p.jobsCompleted.Add(1)
		p.totalDuration.Add(uint64(result.Duration))
		if result.Err == nil && !result.OK {
			p.violations.Add(1)
		}

		select {
		case <-p.ctx.Done():
			return
		case p.resultChan <- result:
		}
	}
}

func (p *Pool) processJob(job Job) *JobResult {
	start := time.Now()

	result := &JobResult{
		ID: job.ID,
	}

	if p.checker == nil {
		result.Err = ErrNoChecker
		result.Duration = time.Since(start)
		return result
	}

	ok, err := p.checker.Check(job.Value)
	result.OK = ok
	result.Err = err

	if err == nil && !ok && job.Explain {
		result.Report = p.checker.Explain(job.Value)
	}

	result.Duration = time.Since(start)
	return result
}
