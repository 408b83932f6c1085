// Package sentrytarget exports buffered log records to Sentry.
//
// A [Target] is a [logbuffer.Sink]. On every flush it reshapes each record
// into an [Event] and captures it through an isolated scope of a
// [ReportingClient], by default a [SentryClient] built on
// [github.com/getsentry/sentry-go].
//
// # Normalization
//
// Payloads are classified by [PayloadOf]:
//
//   - error values are captured as exceptions;
//   - structured maps supply the message ("message" wins over "msg",
//     the printed map is used when neither is set),
//     extra tags ("tags"), an optional attached error ("exception"),
//     and extra data (everything else);
//   - any other value is stringified into the message.
//
// The record category is always reported as the "category" tag. Tags with
// empty values are dropped. Host levels map to severities with [SeverityOf].
//
// # Usage
//
//	target, err := sentrytarget.New(sentrytarget.Config{
//		DSN:           os.Getenv("SENTRY_DSN"),
//		ClientOptions: map[string]any{"environment": "production"},
//	},
//		sentrytarget.WithUserResolver(userresolver.FromContext()),
//		sentrytarget.WithExtraCallback(func(ctx context.Context, payload any, extra map[string]any) (map[string]any, error) {
//			delete(extra, "password")
//			return extra, nil
//		}),
//	)
//	if err != nil {
//		return err
//	}
//	defer target.Close(context.Background())
//
//	buf := logbuffer.New(logbuffer.WithSink(target))
//
// # Isolation
//
// The Sentry client is bound to a private hub and never installed as the
// global hub. Each record is captured on a cloned hub inside its own scope,
// so user, tag and extra attributes never leak between records or
// concurrent exports.
//
// # Errors
//
// Construction fails with [ErrInvalidConfig] for a malformed DSN or client
// options. Export stops at the first failure and returns it joined with
// [ErrUserResolver], [ErrExtraCallback] or [ErrDispatch]. Nothing is retried.
package sentrytarget
