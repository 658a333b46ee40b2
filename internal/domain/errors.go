package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrAllAttemptsFailed indicates the direct fetch and every configured
	// proxy fallback failed or timed out
	ErrAllAttemptsFailed = errors.New("all fetch attempts failed")

	// ErrItemNotFound indicates the requested catalog item does not exist
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrVideoUnavailable indicates an episode has no resolvable video URL
	ErrVideoUnavailable = errors.New("no playable video for episode")

	// ErrShareNotConfirmed indicates the share confirm step was attempted
	// before its countdown elapsed
	ErrShareNotConfirmed = errors.New("share countdown has not elapsed")
)
