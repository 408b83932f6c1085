package middlewares

import (
	"log/slog"
	"net/http"
	"runtime"

	"github.com/dmitrymomot/logtarget/pkg/logbuffer"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	Logger            *slog.Logger // Optional logger for the recovered panic
	Category          string       // Category of the buffered error record
	StackSize         int          // Max stack trace size (default: 4096)
	DisablePrintStack bool         // Disable stack capture
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables stack capture.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// WithRecoverLogger also reports recovered panics through l.
func WithRecoverLogger(l *slog.Logger) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.Logger = l
	}
}

// WithRecoverCategory sets the category of buffered panic records.
// Default: "http.panic".
func WithRecoverCategory(category string) RecoverOption {
	return func(cfg *RecoverConfig) {
		if category != "" {
			cfg.Category = category
		}
	}
}

// Recover returns middleware that recovers from panics and answers 500.
// The panic is buffered as a *PanicError in the request log buffer (see
// RequestLogs), so it is exported as an exception when the request ends.
// http.ErrAbortHandler is re-panicked to keep its semantics.
func Recover(opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
		Category:  "http.panic",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var stack []byte
				if !cfg.DisablePrintStack {
					stack = make([]byte, cfg.StackSize)
					stack = stack[:runtime.Stack(stack, false)]
				}
				pe := &PanicError{Value: rec, Stack: stack}

				ctx := r.Context()
				if buf := logbuffer.FromContext(ctx); buf != nil {
					buf.Error(ctx, pe, cfg.Category)
				}
				if cfg.Logger != nil {
					cfg.Logger.ErrorContext(ctx, "panic recovered",
						slog.Any("panic", rec),
						slog.String("request_id", GetRequestID(ctx)),
					)
				}

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
