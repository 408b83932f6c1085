package sentrytarget

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"

	"github.com/dmitrymomot/logtarget/pkg/logbuffer"
)

// ExtraCallback rewrites the extra data of an event before dispatch.
// It receives the original logged payload and the extra data built so far;
// its return value replaces the extra data.
type ExtraCallback func(ctx context.Context, payload any, extra map[string]any) (map[string]any, error)

// UserResolver returns the user that every event of an export is attributed to.
// A nil UserContext leaves events without a user.
type UserResolver func(ctx context.Context) (UserContext, error)

// Option configures a Target.
type Option func(*options)

type options struct {
	client        ReportingClient
	logger        *slog.Logger
	extraCallback ExtraCallback
	userResolver  UserResolver
	dumper        logbuffer.ContextDumper
	context       *bool
	sentryOpts    []func(*sentry.ClientOptions)
}

// WithClient injects a reporting client instead of building a Sentry client
// from the config. Use it to share a client or to substitute a fake in tests.
func WithClient(c ReportingClient) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithSentryOptions adjusts the Sentry client options after the config was
// applied. Ignored when WithClient is used.
func WithSentryOptions(fn func(*sentry.ClientOptions)) Option {
	return func(o *options) {
		if fn != nil {
			o.sentryOpts = append(o.sentryOpts, fn)
		}
	}
}

// WithExtraCallback sets the callback applied to every event's extra data.
func WithExtraCallback(fn ExtraCallback) Option {
	return func(o *options) {
		o.extraCallback = fn
	}
}

// WithUserResolver sets the resolver invoked once per export.
func WithUserResolver(fn UserResolver) Option {
	return func(o *options) {
		o.userResolver = fn
	}
}

// WithContext overrides Config.Context.
func WithContext(enabled bool) Option {
	return func(o *options) {
		o.context = &enabled
	}
}

// WithContextDumper sets the function producing the "context" extra entry.
// Default: logbuffer.DumpContext.
func WithContextDumper(fn logbuffer.ContextDumper) Option {
	return func(o *options) {
		if fn != nil {
			o.dumper = fn
		}
	}
}

// WithLogger sets the logger for diagnostics about the target itself.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
