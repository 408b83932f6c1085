package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/logtarget/pkg/logbuffer"
)

// Option configures New.
type Option func(*config)

type config struct {
	output     io.Writer
	level      slog.Leveler
	buffer     *logbuffer.Logger
	bufferMin  slog.Leveler
	category   string
	extractors []ContextExtractor
}

// WithLevel sets the minimum level written to the output.
// Default: slog.LevelInfo.
func WithLevel(level slog.Leveler) Option {
	return func(c *config) {
		if level != nil {
			c.level = level
		}
	}
}

// WithOutput sets the destination of JSON lines.
// Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithBuffer also routes records to a log buffer. Records logged with a
// context carrying a per-request buffer (see logbuffer.NewContext) go there
// instead of b. A nil b still enables per-request routing.
func WithBuffer(b *logbuffer.Logger, minLevel slog.Leveler) Option {
	return func(c *config) {
		c.buffer = b
		c.bufferMin = minLevel
		if c.bufferMin == nil {
			c.bufferMin = slog.LevelWarn
		}
	}
}

// WithCategory sets the category of buffered records without a "category" attribute.
func WithCategory(category string) Option {
	return func(c *config) {
		c.category = category
	}
}

// WithExtractors adds context extractors applied to every destination.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

// New creates a JSON logger. With WithBuffer, records at or above the buffer
// level are also buffered for export to the error tracker.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		output:   os.Stdout,
		level:    slog.LevelInfo,
		category: "application",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var handler slog.Handler = slog.NewJSONHandler(cfg.output, &slog.HandlerOptions{
		Level: cfg.level,
	})

	if cfg.bufferMin != nil {
		handler = newFanout(handler, logbuffer.NewHandler(cfg.buffer,
			logbuffer.WithDefaultCategory(cfg.category),
			logbuffer.WithMinLevel(cfg.bufferMin),
		))
	}

	return slog.New(NewLogHandlerDecorator(handler, cfg.extractors...))
}

// NewNope creates a no-op logger that discards all output.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
