// Package middlewares provides net/http middleware that connects request
// handling to the error-tracking log pipeline.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing an upstream header when
// present. RequestIDExtractor adds it to every log record:
//
//	log := logger.New(logger.WithExtractors(middlewares.RequestIDExtractor()))
//
// # Request Logs
//
// RequestLogs gives every request its own log buffer and flushes it to a
// sink (typically a sentrytarget.Target) when the request ends. Records
// logged during the request are exported together, with the request
// metadata as diagnostic context:
//
//	r := chi.NewRouter()
//	r.Use(
//		middlewares.RequestID(),
//		middlewares.RequestLogs(target, middlewares.WithRequestLogsLogger(log)),
//		middlewares.Recover(),
//	)
//
// # Recover
//
// Recover converts panics into a 500 response and buffers a *PanicError,
// which the tracker receives as an exception. Register it after RequestLogs
// so the panic lands in the request buffer before it is flushed.
package middlewares
