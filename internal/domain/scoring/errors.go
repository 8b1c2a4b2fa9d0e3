package scoring

import "errors"

// Package-level error values.
var (
	// ErrInvalidWeights indicates dimension weights that are negative or do
	// not sum to 1.0.
	ErrInvalidWeights = errors.New("dimension weights must be nonnegative and sum to 1.0")

	// ErrInvalidGate indicates a zero-coverage gate outside [0, 1].
	ErrInvalidGate = errors.New("zero-coverage gate must be in [0, 1]")
)
