package logbuffer

import (
	"context"
	"time"
)

// Record is a single buffered log entry.
//
// Payload is whatever the caller logged: a string, a structured
// map[string]any, an error value, or any other value.
type Record struct {
	Time     time.Time
	Payload  any
	Category string
	Level    Level
}

// Sink receives flushed records in the order they were logged.
// Implementations must not retain the slice after Export returns.
type Sink interface {
	Export(ctx context.Context, records []Record) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, records []Record) error

// Export calls f(ctx, records).
func (f SinkFunc) Export(ctx context.Context, records []Record) error {
	return f(ctx, records)
}
