package sentrytarget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/dmitrymomot/logtarget/pkg/logbuffer"
)

// Target exports buffered log records to an error tracker.
// It implements logbuffer.Sink.
type Target struct {
	client         ReportingClient
	logger         *slog.Logger
	extraCallback  ExtraCallback
	userResolver   UserResolver
	dumper         logbuffer.ContextDumper
	includeContext bool
}

var _ logbuffer.Sink = (*Target)(nil)

// New creates a Target. Unless WithClient is given, it builds a Sentry client
// bound to cfg.DSN and cfg.ClientOptions; malformed values fail with
// ErrInvalidConfig. An empty DSN yields a client that discards events.
func New(cfg Config, opts ...Option) (*Target, error) {
	o := &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		dumper: logbuffer.DumpContext,
	}
	for _, opt := range opts {
		opt(o)
	}

	includeContext := cfg.ContextEnabled()
	if o.context != nil {
		includeContext = *o.context
	}

	client := o.client
	if client == nil {
		sc, err := NewSentryClient(cfg, o.sentryOpts...)
		if err != nil {
			return nil, err
		}
		if cfg.DSN == "" {
			o.logger.Warn("sentry DSN is empty, events will be discarded")
		}
		client = sc
	}

	return &Target{
		client:         client,
		logger:         o.logger,
		extraCallback:  o.extraCallback,
		userResolver:   o.userResolver,
		dumper:         o.dumper,
		includeContext: includeContext,
	}, nil
}

// Export normalizes and dispatches records in order.
//
// The user resolver runs once per call. Each record is captured in its own
// scope: payloads that are errors are captured as exceptions, everything else
// as message events. The first failure stops the export; records dispatched
// before it stay dispatched.
func (t *Target) Export(ctx context.Context, records []logbuffer.Record) error {
	if len(records) == 0 {
		return nil
	}

	user, err := t.resolveUser(ctx)
	if err != nil {
		return err
	}

	var dump *string
	for i, rec := range records {
		ev := Normalize(rec)

		if t.includeContext {
			if dump == nil {
				d := t.dumper(ctx)
				dump = &d
			}
			ev.Extra[KeyContext] = *dump
		}

		if t.extraCallback != nil {
			extra, err := t.extraCallback(ctx, rec.Payload, ev.Extra)
			if err != nil {
				return errors.Join(ErrExtraCallback, fmt.Errorf("record %d: %w", i, err))
			}
			if extra == nil {
				extra = map[string]any{}
			}
			ev.Extra = extra
		}

		id, err := t.dispatch(ctx, user, ev)
		if err != nil {
			return errors.Join(ErrDispatch, fmt.Errorf("record %d: %w", i, err))
		}

		t.logger.DebugContext(ctx, "log record captured",
			slog.String("event_id", string(id)),
			slog.String("category", rec.Category),
			slog.String("severity", string(ev.Severity)),
		)
	}

	return nil
}

func (t *Target) resolveUser(ctx context.Context) (UserContext, error) {
	if t.userResolver == nil {
		return nil, nil
	}
	user, err := t.userResolver(ctx)
	if err != nil {
		return nil, errors.Join(ErrUserResolver, err)
	}
	if len(user) == 0 {
		return nil, nil
	}
	return user, nil
}

func (t *Target) dispatch(ctx context.Context, user UserContext, ev Event) (EventID, error) {
	var id EventID
	err := t.client.WithScope(ctx, func(s Scope) error {
		if user != nil {
			s.SetUser(user)
		}
		for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			s.SetExtra(k, ev.Extra[k])
		}
		for _, k := range slices.Sorted(maps.Keys(ev.Tags)) {
			if v := ev.Tags[k]; Truthy(v) {
				s.SetTag(k, v)
			}
		}

		var err error
		if ev.Exception {
			id, err = s.CaptureException(ev.AttachedError)
		} else {
			id, err = s.CaptureEvent(ev.Message, ev.Severity, ev.AttachedError)
		}
		return err
	})
	return id, err
}

// Healthcheck returns a closure that flushes the client for readiness probes.
func (t *Target) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		return t.client.Flush(ctx)
	}
}

// Close flushes pending events. Use it as a shutdown hook.
func (t *Target) Close(ctx context.Context) error {
	return t.client.Flush(ctx)
}
