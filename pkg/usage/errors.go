package usage

import "errors"

var (
	// ErrNegativeDelta is returned when an increment carries a negative value.
	// Counters only grow within a day.
	ErrNegativeDelta = errors.New("usage delta values must be non-negative")

	// ErrStoreFailure wraps storage backend errors so callers can branch on
	// the category without inspecting driver-specific errors.
	ErrStoreFailure = errors.New("usage store operation failed")
)
