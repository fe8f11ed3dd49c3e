package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrNotFound indicates a required record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidURL indicates the input is not a usable playlist URL
	ErrInvalidURL = errors.New("invalid playlist URL")

	// ErrSessionActive indicates a download session is already running
	ErrSessionActive = errors.New("download session already active")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
