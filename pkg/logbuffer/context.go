package logbuffer

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"slices"
	"strings"
)

// ContextDumper renders diagnostic metadata about the current process and
// request. The result is attached to exported events as opaque text.
type ContextDumper func(ctx context.Context) string

// MaskedHeaders lists request headers whose values are replaced in context dumps.
var MaskedHeaders = []string{
	"Authorization",
	"Cookie",
	"Proxy-Authorization",
	"Set-Cookie",
	"X-Api-Key",
	"X-Auth-Token",
}

const maskedValue = "***"

type (
	loggerKey  struct{}
	requestKey struct{}
)

type requestInfo struct {
	header     http.Header
	method     string
	url        string
	remoteAddr string
	requestID  string
}

// NewContext returns a copy of ctx carrying l.
// The slog bridge routes records to this logger instead of its fallback.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored by NewContext, or nil.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey{}).(*Logger); ok {
		return l
	}
	return nil
}

// WithRequest snapshots request metadata into ctx for DumpContext.
func WithRequest(ctx context.Context, r *http.Request, requestID string) context.Context {
	if r == nil {
		return ctx
	}
	info := &requestInfo{
		method:     r.Method,
		remoteAddr: r.RemoteAddr,
		requestID:  requestID,
		header:     r.Header.Clone(),
	}
	if r.URL != nil {
		info.url = r.URL.String()
	}
	return context.WithValue(ctx, requestKey{}, info)
}

// DumpContext is the default ContextDumper. It describes the running process
// and, when WithRequest was applied to ctx, the request being served.
func DumpContext(ctx context.Context) string {
	var b strings.Builder

	hostname, _ := os.Hostname()
	b.WriteString("process:\n")
	fmt.Fprintf(&b, "  pid = %d\n", os.Getpid())
	fmt.Fprintf(&b, "  hostname = %s\n", hostname)
	fmt.Fprintf(&b, "  go = %s\n", runtime.Version())
	fmt.Fprintf(&b, "  args = %q\n", os.Args)

	info, ok := ctx.Value(requestKey{}).(*requestInfo)
	if !ok {
		return b.String()
	}

	b.WriteString("request:\n")
	fmt.Fprintf(&b, "  method = %s\n", info.method)
	fmt.Fprintf(&b, "  url = %s\n", info.url)
	fmt.Fprintf(&b, "  remote_addr = %s\n", info.remoteAddr)
	if info.requestID != "" {
		fmt.Fprintf(&b, "  request_id = %s\n", info.requestID)
	}

	if len(info.header) > 0 {
		b.WriteString("  headers:\n")
		names := make([]string, 0, len(info.header))
		for name := range info.header {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			value := strings.Join(info.header[name], ", ")
			if isMasked(name) {
				value = maskedValue
			}
			fmt.Fprintf(&b, "    %s = %s\n", name, value)
		}
	}

	return b.String()
}

func isMasked(header string) bool {
	for _, m := range MaskedHeaders {
		if strings.EqualFold(m, header) {
			return true
		}
	}
	return false
}
