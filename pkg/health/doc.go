// Package health provides liveness and readiness probes for services that
// ship logs to an error tracker.
//
// Readiness checks use the func(context.Context) error closures exposed by
// sentrytarget.Target.Healthcheck and userresolver.Healthcheck. BacklogCheck
// turns a log buffer's pending count into a check.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"sentry":  target.Healthcheck(),
//		"redis":   userresolver.Healthcheck(rdb),
//		"backlog": health.BacklogCheck(buf.Len, 1000),
//	}, health.WithTimeout(3*time.Second)))
//
// Handlers answer plain text ("OK", or "Service Unavailable: " followed by
// the failing check names) unless the client sends Accept: application/json
// or ?format=json:
//
//	{"status":"unhealthy","checks":{"sentry":{"status":"unhealthy","error":"..."}}}
//
// Run executes the same checks outside HTTP, e.g. from the CLI.
package health
