package middlewares

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/logtarget/pkg/logbuffer"
)

// RequestLogsConfig configures the per-request log buffer middleware.
type RequestLogsConfig struct {
	Logger        *slog.Logger       // Reports flush failures
	BufferOptions []logbuffer.Option // Applied to every per-request buffer
	FlushTimeout  time.Duration      // Bounds the flush at request end (0 = unbounded)
}

// RequestLogsOption configures RequestLogsConfig.
type RequestLogsOption func(*RequestLogsConfig)

// WithRequestLogsLogger sets the logger that reports flush failures.
func WithRequestLogsLogger(l *slog.Logger) RequestLogsOption {
	return func(cfg *RequestLogsConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithRequestLogsBuffer adds options for every per-request buffer
// (level and category filters, flush interval).
func WithRequestLogsBuffer(opts ...logbuffer.Option) RequestLogsOption {
	return func(cfg *RequestLogsConfig) {
		cfg.BufferOptions = append(cfg.BufferOptions, opts...)
	}
}

// WithRequestLogsFlushTimeout bounds the flush that runs when the request ends.
func WithRequestLogsFlushTimeout(d time.Duration) RequestLogsOption {
	return func(cfg *RequestLogsConfig) {
		cfg.FlushTimeout = d
	}
}

// RequestLogs returns middleware that gives every request its own log buffer.
//
// The buffer is stored in the request context, so slog loggers built with
// logger.WithBuffer route records there. Request metadata is attached for
// logbuffer.DumpContext. When the handler returns (or panics) the buffer is
// flushed to sink; the flush is detached from client cancellation.
// Place it after RequestID so the dump carries the request ID.
func RequestLogs(sink logbuffer.Sink, opts ...RequestLogsOption) func(http.Handler) http.Handler {
	cfg := &RequestLogsConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	bufferOpts := append([]logbuffer.Option{logbuffer.WithFlushInterval(0)}, cfg.BufferOptions...)
	bufferOpts = append(bufferOpts, logbuffer.WithSink(sink))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := logbuffer.New(bufferOpts...)

			ctx := logbuffer.WithRequest(r.Context(), r, GetRequestID(r.Context()))
			ctx = logbuffer.NewContext(ctx, buf)

			defer flushRequestLogs(ctx, buf, cfg)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func flushRequestLogs(ctx context.Context, buf *logbuffer.Logger, cfg *RequestLogsConfig) {
	if buf.Len() == 0 {
		return
	}

	ctx = context.WithoutCancel(ctx)
	if cfg.FlushTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.FlushTimeout)
		defer cancel()
	}

	if err := buf.Flush(ctx); err != nil {
		cfg.Logger.ErrorContext(ctx, "failed to flush request logs",
			slog.String("request_id", GetRequestID(ctx)),
			slog.Int("records", buf.Len()),
			slog.Any("error", err),
		)
	}
}
