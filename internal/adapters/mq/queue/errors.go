package queue

import "errors"

// Sentinel kinds for enqueue failures. Enqueue itself reports success as a
// boolean; callers that translate a rejection into an error wrap these.
var (
	ErrQueueFull   = errors.New("warm queue full")
	ErrQueueClosed = errors.New("warm queue closed")
)
