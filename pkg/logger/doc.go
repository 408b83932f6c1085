// Package logger builds slog loggers that write JSON lines and feed the
// error-tracking log buffer.
//
// [New] creates a JSON logger on stdout. With [WithBuffer], records at or
// above a minimum level are also handed to a [logbuffer.Logger], from where
// they are exported to Sentry on flush. Records logged with a context that
// carries a per-request buffer (see the middlewares package) are routed to
// that buffer instead.
//
//	target, _ := sentrytarget.New(cfg)
//	buf := logbuffer.New(logbuffer.WithSink(target))
//
//	log := logger.New(
//		logger.WithBuffer(buf, slog.LevelWarn),
//		logger.WithCategory("api"),
//		logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
//	log.ErrorContext(ctx, "payment failed", "error", err, "order_id", 42)
//
// # Context Extractors
//
// A [ContextExtractor] pulls a request-scoped value from the context on every
// log call. [LogHandlerDecorator] applies extractors to any slog.Handler:
//
//	decorated := logger.NewLogHandlerDecorator(handler, extractors...)
//
// Extracted attributes reach both the JSON output and buffered records, where
// they become extra data of the exported event.
package logger
