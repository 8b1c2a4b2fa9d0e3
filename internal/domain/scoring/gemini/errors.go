package gemini

import "errors"

// Package-level error values.
var (
	// ErrMissingAPIKey indicates no API key was provided.
	ErrMissingAPIKey = errors.New("gemini api key is required")

	// ErrNotInitialized indicates the client was not constructed with NewClient.
	ErrNotInitialized = errors.New("gemini client is not initialized")

	// ErrEmptyResponse indicates the model returned no usable text.
	ErrEmptyResponse = errors.New("gemini api returned empty response")

	// ErrBadResponse indicates the model's output was not the expected JSON.
	ErrBadResponse = errors.New("gemini response is not valid assessment json")
)
