package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrModelUnavailable indicates the embedding backend could not be
	// loaded. The failure is memoized for the process lifetime and
	// scoring falls back to the lexical method.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrInvalidState indicates a review session operation was called
	// in a state that does not allow it. This is a programmer error.
	ErrInvalidState = errors.New("invalid review session state")

	// ErrSessionNotFound indicates a requested review session does not
	// exist or was already discarded.
	ErrSessionNotFound = errors.New("review session not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
