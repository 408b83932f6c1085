package logbuffer

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// DefaultFlushInterval is the number of buffered records that triggers an automatic flush.
const DefaultFlushInterval = 1000

// Option configures a Logger.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	levels        map[Level]struct{}
	now           func() time.Time
	schedule      string
	sinks         []Sink
	categories    []string
	except        []string
	flushInterval int
}

func defaultOptions() *options {
	return &options{
		flushInterval: DefaultFlushInterval,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:           time.Now,
	}
}

// WithSink adds sinks that receive every flushed batch, in registration order.
func WithSink(sinks ...Sink) Option {
	return func(o *options) {
		for _, s := range sinks {
			if s != nil {
				o.sinks = append(o.sinks, s)
			}
		}
	}
}

// WithFlushInterval sets how many buffered records trigger an automatic flush.
// Zero disables automatic flushing; records are then exported only by Flush.
// Default: 1000.
func WithFlushInterval(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.flushInterval = n
		}
	}
}

// WithLevels restricts buffering to the given levels.
// Without this option all levels are accepted.
func WithLevels(levels ...Level) Option {
	return func(o *options) {
		o.levels = make(map[Level]struct{}, len(levels))
		for _, l := range levels {
			o.levels[l] = struct{}{}
		}
	}
}

// WithCategories restricts buffering to categories matching one of the patterns.
// A pattern ending in "*" matches by prefix, otherwise the match is exact.
func WithCategories(patterns ...string) Option {
	return func(o *options) {
		o.categories = append(o.categories, patterns...)
	}
}

// WithExceptCategories drops records whose category matches one of the patterns.
// Patterns follow the WithCategories rules and take precedence over it.
func WithExceptCategories(patterns ...string) Option {
	return func(o *options) {
		o.except = append(o.except, patterns...)
	}
}

// WithSchedule sets a cron expression (e.g. "@every 5s") for periodic flushing.
// The schedule runs between Start and Stop.
func WithSchedule(schedule string) Option {
	return func(o *options) {
		o.schedule = strings.TrimSpace(schedule)
	}
}

// WithLogger sets the logger used to report background flush failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func (o *options) accepts(level Level, category string) bool {
	if len(o.levels) > 0 {
		if _, ok := o.levels[level]; !ok {
			return false
		}
	}
	if matchCategory(o.except, category) {
		return false
	}
	return len(o.categories) == 0 || matchCategory(o.categories, category)
}

func matchCategory(patterns []string, category string) bool {
	for _, p := range patterns {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(category, prefix) {
				return true
			}
			continue
		}
		if p == category {
			return true
		}
	}
	return false
}
