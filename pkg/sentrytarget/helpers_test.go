package sentrytarget_test

import (
	"context"
	"sync"

	"github.com/dmitrymomot/logtarget/pkg/sentrytarget"
)

// captured is one event recorded by fakeClient.
type captured struct {
	user      sentrytarget.UserContext
	extra     map[string]any
	tags      map[string]string
	exception error
	cause     error
	message   string
	severity  sentrytarget.Severity
	isEvent   bool
}

// fakeClient records every scope and capture call.
type fakeClient struct {
	captureErr error
	events     []captured
	mu         sync.Mutex
	scopes     int
	open       int
}

func (c *fakeClient) WithScope(_ context.Context, fn func(sentrytarget.Scope) error) error {
	c.mu.Lock()
	c.scopes++
	c.open++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.open--
		c.mu.Unlock()
	}()

	return fn(&fakeScope{client: c, cur: captured{
		extra: map[string]any{},
		tags:  map[string]string{},
	}})
}

func (c *fakeClient) Flush(context.Context) error { return nil }

func (c *fakeClient) record(ev captured) (sentrytarget.EventID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.captureErr != nil {
		return "", c.captureErr
	}
	c.events = append(c.events, ev)
	return "evt", nil
}

func (c *fakeClient) captured() []captured {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]captured(nil), c.events...)
}

type fakeScope struct {
	client *fakeClient
	cur    captured
}

func (s *fakeScope) SetUser(user sentrytarget.UserContext) { s.cur.user = user }

func (s *fakeScope) SetExtra(key string, value any) { s.cur.extra[key] = value }

func (s *fakeScope) SetTag(key, value string) { s.cur.tags[key] = value }

func (s *fakeScope) CaptureException(err error) (sentrytarget.EventID, error) {
	ev := s.cur
	ev.exception = err
	return s.client.record(ev)
}

func (s *fakeScope) CaptureEvent(message string, severity sentrytarget.Severity, cause error) (sentrytarget.EventID, error) {
	ev := s.cur
	ev.isEvent = true
	ev.message = message
	ev.severity = severity
	ev.cause = cause
	return s.client.record(ev)
}
