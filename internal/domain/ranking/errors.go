package ranking

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the base kind for requests rejected before any scoring
// starts. Handlers match it with errors.Is to translate every input problem
// at once.
var ErrInvalidInput = errors.New("invalid ranking input")

// Input validation errors. Each wraps ErrInvalidInput.
var (
	ErrInvalidLimit     = fmt.Errorf("%w: limit must be at least 1", ErrInvalidInput)
	ErrNoRequiredSkills = fmt.Errorf("%w: project lists no required skills", ErrInvalidInput)
	ErrMissingDuration  = fmt.Errorf("%w: project has no duration", ErrInvalidInput)
	ErrMissingType      = fmt.Errorf("%w: project has no type", ErrInvalidInput)
)

// ErrNotConfigured indicates the pipeline was built without a required
// collaborator.
var ErrNotConfigured = errors.New("ranking pipeline is missing a collaborator")
