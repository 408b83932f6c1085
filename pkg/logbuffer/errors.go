package logbuffer

import "errors"

// Sentinel errors for the logbuffer package.
var (
	// ErrUnknownLevel is returned by ParseLevel for unrecognized level names.
	ErrUnknownLevel = errors.New("logbuffer: unknown level")

	// ErrExportFailed is returned by Flush when a sink rejects the batch.
	// The batch stays buffered and is retried on the next flush.
	ErrExportFailed = errors.New("logbuffer: export failed")

	// ErrInvalidSchedule is returned by Start when the flush schedule cannot be parsed.
	ErrInvalidSchedule = errors.New("logbuffer: invalid flush schedule")

	// ErrAlreadyStarted is returned when Start is called on a running scheduler.
	ErrAlreadyStarted = errors.New("logbuffer: already started")

	// ErrNotStarted is returned when Stop is called before Start.
	ErrNotStarted = errors.New("logbuffer: not started")
)
