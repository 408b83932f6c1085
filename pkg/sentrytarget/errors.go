package sentrytarget

import "errors"

// Sentinel errors for the sentrytarget package.
var (
	// ErrInvalidConfig is returned by New when the DSN or client options are malformed.
	ErrInvalidConfig = errors.New("sentrytarget: invalid configuration")

	// ErrUnknownClientOption is returned when client options contain an unsupported key.
	ErrUnknownClientOption = errors.New("sentrytarget: unknown client option")

	// ErrInvalidClientOption is returned when a client option has the wrong value type.
	ErrInvalidClientOption = errors.New("sentrytarget: invalid client option value")

	// ErrUserResolver wraps failures returned by the configured user resolver.
	ErrUserResolver = errors.New("sentrytarget: user resolver failed")

	// ErrExtraCallback wraps failures returned by the configured extra callback.
	ErrExtraCallback = errors.New("sentrytarget: extra callback failed")

	// ErrDispatch wraps failures raised by the reporting client while capturing an event.
	ErrDispatch = errors.New("sentrytarget: dispatch failed")

	// ErrFlushTimeout is returned when buffered events are not delivered before the deadline.
	ErrFlushTimeout = errors.New("sentrytarget: flush timed out")
)
