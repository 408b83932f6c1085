// Package logbuffer is an in-memory log pipeline that buffers records and
// exports them in batches to one or more sinks.
//
// A record carries a payload (string, structured map, error value, or any
// other value), an ordinal level and a free-text category. Records are kept
// in order and handed to every [Sink] on [Logger.Flush], when the buffer
// reaches its flush interval, or on a cron schedule between [Logger.Start]
// and [Logger.Stop].
//
// # Usage
//
//	buf := logbuffer.New(
//		logbuffer.WithSink(target),
//		logbuffer.WithFlushInterval(100),
//		logbuffer.WithSchedule("@every 10s"),
//	)
//	if err := buf.Start(ctx); err != nil {
//		return err
//	}
//	defer buf.Stop(context.Background())
//
//	buf.Error(ctx, map[string]any{"msg": "payment failed", "order": 42}, "billing")
//
// # slog Bridge
//
// [NewHandler] adapts the buffer to log/slog. Records are routed to the
// logger stored in the context with [NewContext] (typically a per-request
// buffer) or to a fallback logger:
//
//	log := slog.New(logbuffer.NewHandler(buf, logbuffer.WithDefaultCategory("api")))
//	log.ErrorContext(ctx, "checkout failed", "error", err, "category", "billing")
//
// # Context Dumps
//
// [DumpContext] renders process metadata and, when [WithRequest] was applied,
// request metadata with sensitive headers masked. Sinks attach it to exported
// events as diagnostic context.
package logbuffer
