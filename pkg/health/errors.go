package health

import "errors"

var (
	// ErrCheckFailed is returned when one or more health checks fail.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check that failed after the timeout expired.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrBacklog is returned by BacklogCheck when too many records are pending.
	ErrBacklog = errors.New("health: log backlog exceeded")
)
