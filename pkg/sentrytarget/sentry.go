package sentrytarget

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/getsentry/sentry-go"
)

// defaultFlushTimeout bounds Flush when the context carries no deadline.
const defaultFlushTimeout = 2 * time.Second

// SentryClient reports events through a private sentry.Hub.
//
// The hub is never bound to the global sentry.CurrentHub, so SDK helpers
// that report through the global hub stay silent and this client remains
// the only producer of events.
type SentryClient struct {
	hub *sentry.Hub
}

// NewSentryClient builds a Sentry client from the adapter config.
// configure runs last and may adjust any option (e.g. BeforeSend or Transport).
func NewSentryClient(cfg Config, configure ...func(*sentry.ClientOptions)) (*SentryClient, error) {
	opts := sentry.ClientOptions{Dsn: cfg.DSN}

	if err := applyClientOptions(&opts, cfg.ClientOptions); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if cfg.Environment != "" {
		opts.Environment = cfg.Environment
	}
	if cfg.Release != "" {
		opts.Release = cfg.Release
	}
	if len(cfg.DisabledIntegrations) > 0 {
		disabled := slices.Clone(cfg.DisabledIntegrations)
		opts.Integrations = func(in []sentry.Integration) []sentry.Integration {
			out := make([]sentry.Integration, 0, len(in))
			for _, integration := range in {
				if !slices.Contains(disabled, integration.Name()) {
					out = append(out, integration)
				}
			}
			return out
		}
	}

	for _, fn := range configure {
		if fn != nil {
			fn(&opts)
		}
	}

	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &SentryClient{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Hub returns the private hub. Callers must Clone it before use in
// another goroutine.
func (c *SentryClient) Hub() *sentry.Hub {
	return c.hub
}

// WithScope runs fn with a fresh scope on a cloned hub, so concurrent
// exports never share scope state.
func (c *SentryClient) WithScope(_ context.Context, fn func(Scope) error) error {
	hub := c.hub.Clone()

	var err error
	hub.WithScope(func(scope *sentry.Scope) {
		err = fn(&sentryScope{client: hub.Client(), scope: scope})
	})
	return err
}

// Flush waits for queued events until ctx is done, or for two seconds when
// ctx has no deadline.
func (c *SentryClient) Flush(ctx context.Context) error {
	timeout := defaultFlushTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 || !c.hub.Flush(timeout) {
		return ErrFlushTimeout
	}
	return nil
}

type sentryScope struct {
	client *sentry.Client
	scope  *sentry.Scope
}

func (s *sentryScope) SetUser(user UserContext) {
	s.scope.SetUser(sentryUser(user))
}

func (s *sentryScope) SetExtra(key string, value any) {
	s.scope.SetExtra(key, value)
}

func (s *sentryScope) SetTag(key, value string) {
	s.scope.SetTag(key, value)
}

func (s *sentryScope) CaptureException(err error) (EventID, error) {
	if s.client == nil {
		return "", nil
	}
	return eventID(s.client.CaptureException(err, &sentry.EventHint{OriginalException: err}, s.scope)), nil
}

func (s *sentryScope) CaptureEvent(message string, severity Severity, cause error) (EventID, error) {
	if s.client == nil {
		return "", nil
	}

	event := sentry.NewEvent()
	event.Message = message
	event.Level = sentry.Level(severity)

	var hint *sentry.EventHint
	if cause != nil {
		event.SetException(cause, s.client.Options().MaxErrorDepth)
		hint = &sentry.EventHint{OriginalException: cause}
	}
	return eventID(s.client.CaptureEvent(event, hint, s.scope)), nil
}

func eventID(id *sentry.EventID) EventID {
	if id == nil {
		return ""
	}
	return EventID(*id)
}

// sentryUser maps well-known keys to sentry.User fields; the rest go to Data.
func sentryUser(u UserContext) sentry.User {
	var user sentry.User
	for k, v := range u {
		if v == nil {
			continue
		}
		s := stringify(v)
		switch k {
		case "id":
			user.ID = s
		case "email":
			user.Email = s
		case "username":
			user.Username = s
		case "ip_address":
			user.IPAddress = s
		case "name":
			user.Name = s
		default:
			if user.Data == nil {
				user.Data = make(map[string]string)
			}
			user.Data[k] = s
		}
	}
	return user
}
