package health

import "errors"

var (
	// ErrCheckerNotFound indicates the named checker is not registered.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrCheckTimeout indicates a health check exceeded the aggregator timeout.
	ErrCheckTimeout = errors.New("health: check timed out")
)
