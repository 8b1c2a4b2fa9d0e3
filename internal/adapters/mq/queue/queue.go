// Package queue defines the contract for enqueuing and consuming cache
// warming jobs.
//
// Implementations may use channels or more advanced structures. The service
// starts with an in-memory bounded queue.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/gradmatch/gradmatch/pkg/metrics"
)

// defaultQueueCapacity bounds the in-memory queue when no option overrides it.
const defaultQueueCapacity = 8192

// Job names one project/candidate pair whose match result should be
// precomputed into the cache.
type Job struct {
	ProjectID   string
	CandidateID string
	EnqueuedAt  time.Time
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job to the queue.
	// Returns false if the queue is full and the job was not enqueued.
	Enqueue(ctx context.Context, j Job) bool

	// Dequeue returns a channel that will receive jobs as they become available.
	// The channel will be closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Job

	// Len returns the current number of queued jobs.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	// After closing, no new jobs can be enqueued and the dequeue channel will be closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity, // default capacity
	}

	// Apply all options
	for _, opt := range opts {
		opt(q)
	}

	// The channel buffer is the capacity; a full buffer rejects enqueues.
	q.jobs = make(chan Job, q.capacity)

	// Initialize metrics
	metrics.UpdateWarmQueueCapacity(q.capacity)
	metrics.UpdateWarmQueueSize(0)
	metrics.UpdateWarmQueueUtilization(0.0)

	return q
}

// Enqueue adds a job to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordWarmEnqueueError()
		return false
	}

	if j.EnqueuedAt.IsZero() {
		j.EnqueuedAt = time.Now()
	}

	select {
	case q.jobs <- j:
		metrics.RecordWarmEnqueue()
		// Update queue size and utilization
		currentSize := len(q.jobs)
		metrics.UpdateWarmQueueSize(currentSize)
		utilization := float64(currentSize) / float64(q.capacity)
		metrics.UpdateWarmQueueUtilization(utilization)
		return true
	case <-ctx.Done():
		metrics.RecordWarmEnqueueError()
		return false // context cancelled
	default:
		metrics.RecordWarmEnqueueError()
		return false // queue is full
	}
}

// Dequeue returns a channel that will receive jobs as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Job {
	// Wrap the channel to track dequeue metrics
	dequeueChan := make(chan Job)
	go func() {
		defer close(dequeueChan)
		for job := range q.jobs {
			select {
			case dequeueChan <- job:
				metrics.RecordWarmDequeue()
				// Update queue size and utilization after dequeue
				currentSize := len(q.jobs)
				metrics.UpdateWarmQueueSize(currentSize)
				utilization := float64(currentSize) / float64(q.capacity)
				metrics.UpdateWarmQueueUtilization(utilization)
			case <-ctx.Done():
				return
			}
		}
	}()
	return dequeueChan
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.jobs)
	metrics.UpdateWarmQueueSize(size)
	utilization := float64(size) / float64(q.capacity)
	metrics.UpdateWarmQueueUtilization(utilization)
	return size
}

// Cap returns the configured queue capacity.
func (q *InMemoryQueue) Cap() int {
	return q.capacity
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // already closed
	}

	// Close the jobs channel to signal consumers to stop
	close(q.jobs)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
