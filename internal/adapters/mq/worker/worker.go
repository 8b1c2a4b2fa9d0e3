// Package worker runs the cache warming workers that precompute match
// results off the warm queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/gradmatch/gradmatch/internal/adapters/mq/queue"
	"github.com/gradmatch/gradmatch/internal/domain/model"
	"github.com/gradmatch/gradmatch/pkg/logger"
	"github.com/gradmatch/gradmatch/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	metricsUpdateInterval   = 5 * time.Second
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job abstracts what workers read off the queue.
// Using the queue.Job type for consistency.
type Job = queue.Job

// Matcher computes the match result for one project/candidate pair, serving
// it from the result cache when it is already warm.
type Matcher interface {
	ComputeMatch(ctx context.Context, projectID, candidateID string) (model.MatchResult, bool, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker precomputes match results using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining jobs before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing warm jobs.
type InMemoryWorker struct {
	queue   Queue
	matcher Matcher
	name    string

	// Shutdown control
	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, matcher Matcher, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		matcher:  matcher,
		name:     "worker", // default name
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"), // will be updated by options
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	// Set up logger with worker name if not already set
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			// Process the job
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing warm job", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	// Signal shutdown
	w.signalShutdown()

	// Wait for worker to finish or context to timeout
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// signalShutdown closes the shutdown channel exactly once, so pool-level and
// worker-level shutdown can overlap safely.
func (w *InMemoryWorker) signalShutdown() {
	w.shutdownOnce.Do(func() {
		close(w.shutdown)
	})
}

// processJob precomputes one match. A hit means somebody got there first,
// which is fine; the point is that interactive traffic finds the entry warm.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error {
	// Track time from enqueue to computed, not just compute time
	defer func() {
		latency := time.Since(job.EnqueuedAt).Milliseconds()
		metrics.RecordWarmLatency(float64(latency))
	}()

	_, hit, err := w.matcher.ComputeMatch(ctx, job.ProjectID, job.CandidateID)
	if err != nil {
		metrics.RecordWarmError()
		w.logger.Error(ctx, "warming match failed",
			logger.String("project_id", job.ProjectID),
			logger.String("candidate_id", job.CandidateID),
			logger.Error(err),
		)
		return fmt.Errorf("warm %s/%s: %w", job.ProjectID, job.CandidateID, err)
	}

	if hit {
		w.logger.Debug(ctx, "match already warm",
			logger.String("project_id", job.ProjectID),
			logger.String("candidate_id", job.CandidateID),
		)
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	matcher Matcher

	// Shutdown control
	shutdown     chan struct{}
	shutdownOnce sync.Once

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, matcher Matcher) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		matcher:  matcher,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			matcher,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	// Initialize worker metrics
	metrics.UpdateWarmWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}

	// Start metrics updater
	go p.startMetricsUpdater(ctx)
}

// startMetricsUpdater starts a background goroutine that refreshes queue
// depth metrics.
func (p *Pool) startMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metricsUpdateInterval) // Update metrics every 5 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			p.updateMetrics(ctx)
		}
	}
}

// updateMetrics re-reads the queue depth; Len refreshes the warm queue
// gauges as a side effect.
func (p *Pool) updateMetrics(ctx context.Context) {
	if q, ok := p.queue.(interface{ Len(context.Context) int }); ok {
		q.Len(ctx)
	}
}

// signalShutdown stops the metrics updater and every worker, exactly once.
func (p *Pool) signalShutdown() {
	p.shutdownOnce.Do(func() {
		close(p.shutdown)
	})
	for _, worker := range p.workers {
		worker.signalShutdown()
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	// Signal shutdown to all workers
	p.signalShutdown()

	// Wait for all workers to finish
	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue to stop new jobs
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	// Signal shutdown to all workers
	p.signalShutdown()

	// Wait for all workers to finish or context to timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
