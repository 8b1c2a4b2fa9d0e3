package queue

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	// Test empty queue
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	// Test enqueue
	job1 := Job{ProjectID: "p-1", CandidateID: "c-1"}
	if !q.Enqueue(ctx, job1) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	// Test dequeue
	jobChan := q.Dequeue(ctx)
	job := <-jobChan
	if job.ProjectID != "p-1" || job.CandidateID != "c-1" {
		t.Errorf("expected p-1/c-1, got %s/%s", job.ProjectID, job.CandidateID)
	}
	if job.EnqueuedAt.IsZero() {
		t.Error("expected enqueue to stamp EnqueuedAt")
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if c := q.Cap(); c != 2 {
		t.Errorf("expected capacity 2, got %d", c)
	}

	// Fill the queue
	job1 := Job{ProjectID: "p-1", CandidateID: "c-1"}
	job2 := Job{ProjectID: "p-1", CandidateID: "c-2"}
	job3 := Job{ProjectID: "p-1", CandidateID: "c-3"}

	if !q.Enqueue(ctx, job1) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, job2) {
		t.Error("expected enqueue to succeed")
	}

	// Try to enqueue when full
	if q.Enqueue(ctx, job3) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx := context.Background()
	numGoroutines := 10
	numJobs := 100

	// Start producer goroutines
	done := make(chan bool, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			for j := 0; j < numJobs; j++ {
				job := Job{
					ProjectID:   fmt.Sprintf("p-%d", id),
					CandidateID: fmt.Sprintf("c-%d-%d", id, j),
				}
				for !q.Enqueue(ctx, job) {
					time.Sleep(time.Millisecond)
				}
			}
			done <- true
		}(i)
	}

	// Start consumer goroutines
	consumed := make(chan string, numGoroutines*numJobs)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			jobChan := q.Dequeue(ctx)
			for job := range jobChan {
				consumed <- job.CandidateID
			}
		}()
	}

	// Wait for producers to finish
	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	// Wait a bit for consumers to process
	time.Sleep(100 * time.Millisecond)

	// Check final queue length
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected final length 0, got %d", l)
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	// Enqueue some jobs
	job1 := Job{ProjectID: "p-1", CandidateID: "c-1"}
	job2 := Job{ProjectID: "p-1", CandidateID: "c-2"}

	if !q.Enqueue(ctx, job1) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, job2) {
		t.Error("expected enqueue to succeed")
	}

	// Check initial state
	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}

	// Close the queue
	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}

	// Check closed state
	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}

	// Try to enqueue after closing (should fail)
	if q.Enqueue(ctx, job1) {
		t.Error("expected enqueue to fail after closing")
	}

	// Dequeue channel should be closed
	jobChan := q.Dequeue(ctx)

	// Wait for channel to be closed
	timeout := time.After(100 * time.Millisecond)
	for {
		select {
		case _, ok := <-jobChan:
			if !ok {
				// Channel is closed, which is expected
				goto channelClosed
			}
		case <-timeout:
			t.Error("expected dequeue channel to be closed within timeout")
			return
		}
	}
channelClosed:

	// Close again should not error
	if err := q.Close(); err != nil {
		t.Errorf("expected second close to succeed, got error: %v", err)
	}
}
