package sentrytarget

import "context"

// EventID identifies a captured event. It is empty when the client dropped
// the event (sampling, filters, or a disabled DSN).
type EventID string

// UserContext describes the user an event is attributed to.
// Well-known keys are "id", "email", "username", "ip_address" and "name";
// other entries are reported as additional user data.
type UserContext map[string]any

// Scope is a transient container of user, tag and extra attributes applied
// to the events captured through it. Attributes never leak to other scopes.
type Scope interface {
	SetUser(user UserContext)
	SetExtra(key string, value any)
	SetTag(key, value string)

	// CaptureException reports err as an exception event.
	CaptureException(err error) (EventID, error)

	// CaptureEvent reports a message event. A non-nil cause is attached as
	// the originating error of the event.
	CaptureEvent(message string, severity Severity, cause error) (EventID, error)
}

// ReportingClient is the narrow surface of an error-tracking SDK used by Target.
type ReportingClient interface {
	// WithScope opens an isolated scope, runs fn, and closes the scope on
	// every exit path. The error returned by fn is returned unchanged.
	WithScope(ctx context.Context, fn func(Scope) error) error

	// Flush blocks until queued events are delivered or ctx is done.
	Flush(ctx context.Context) error
}
