package health

import (
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// LivenessHandler returns an http.HandlerFunc that always responds OK.
// It only proves the process serves HTTP; it never touches the tracker.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)
		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, &Response{Status: StatusHealthy})
			return
		}
		writeText(w, http.StatusOK, "OK")
	}
}

// ReadinessHandler returns an http.HandlerFunc that runs all provided checks.
// It answers 503 while any check fails; the plain-text body then names the
// failing checks so probe logs show what is down.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		noStore(w)

		resp, err := runChecks(r.Context(), checks, cfg)
		if err != nil {
			cfg.logger.ErrorContext(r.Context(), "service not ready", slog.Any("error", err))
		}

		status := http.StatusOK
		if resp.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}

		if wantsJSON(r) {
			writeJSON(w, status, resp)
			return
		}
		if status == http.StatusOK {
			writeText(w, status, "OK")
			return
		}
		writeText(w, status, "Service Unavailable: "+strings.Join(failedChecks(resp), ", "))
	}
}

// failedChecks returns the sorted names of unhealthy checks.
func failedChecks(resp *Response) []string {
	var names []string
	for _, name := range slices.Sorted(maps.Keys(resp.Checks)) {
		if resp.Checks[name].Status == StatusUnhealthy {
			names = append(names, name)
		}
	}
	return names
}

// wantsJSON reports whether the client asked for JSON, via ?format=json
// or the Accept header.
func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// noStore keeps proxies from caching probe results.
func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeText writes a plain-text response.
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
