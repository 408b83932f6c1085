package logbuffer

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Logger buffers records in memory and exports them to its sinks on flush.
//
// Log is safe for concurrent use. Flushes are serialized: records are
// exported strictly in the order they were logged and each record leaves
// the buffer only after every sink accepted the batch containing it.
type Logger struct {
	opts    *options
	cron    *cron.Cron
	records []Record
	mu      sync.Mutex
	flushMu sync.Mutex
	cronMu  sync.Mutex
}

// New creates a buffering logger.
func New(opts ...Option) *Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Logger{opts: o}
}

// Log buffers a record. Records filtered out by level or category are dropped.
// When the buffer reaches the flush interval it is flushed synchronously;
// a failure there is reported through the configured logger and the records
// stay buffered.
func (l *Logger) Log(ctx context.Context, payload any, level Level, category string) {
	if !l.opts.accepts(level, category) {
		return
	}

	l.mu.Lock()
	l.records = append(l.records, Record{
		Payload:  payload,
		Level:    level,
		Category: category,
		Time:     l.opts.now(),
	})
	full := l.opts.flushInterval > 0 && len(l.records) >= l.opts.flushInterval
	l.mu.Unlock()

	if full {
		l.autoFlush(ctx)
	}
}

// Error buffers a record at LevelError.
func (l *Logger) Error(ctx context.Context, payload any, category string) {
	l.Log(ctx, payload, LevelError, category)
}

// Warning buffers a record at LevelWarning.
func (l *Logger) Warning(ctx context.Context, payload any, category string) {
	l.Log(ctx, payload, LevelWarning, category)
}

// Info buffers a record at LevelInfo.
func (l *Logger) Info(ctx context.Context, payload any, category string) {
	l.Log(ctx, payload, LevelInfo, category)
}

// Trace buffers a record at LevelTrace.
func (l *Logger) Trace(ctx context.Context, payload any, category string) {
	l.Log(ctx, payload, LevelTrace, category)
}

// Len returns the number of buffered records.
func (l *Logger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Flush exports all buffered records to every sink, in registration order.
// The exported records are removed only if every sink succeeds; otherwise
// they remain buffered and the error is returned joined with ErrExportFailed.
// Records logged while a flush is running are kept for the next flush.
func (l *Logger) Flush(ctx context.Context) error {
	l.flushMu.Lock()
	defer l.flushMu.Unlock()
	return l.flushLocked(ctx)
}

// autoFlush flushes unless a flush is already in progress. Sinks that log
// through this same buffer would otherwise deadlock on flushMu.
func (l *Logger) autoFlush(ctx context.Context) {
	if !l.flushMu.TryLock() {
		return
	}
	defer l.flushMu.Unlock()

	if err := l.flushLocked(ctx); err != nil {
		l.opts.logger.ErrorContext(ctx, "log buffer flush failed", slog.Any("error", err))
	}
}

func (l *Logger) flushLocked(ctx context.Context) error {
	l.mu.Lock()
	batch := make([]Record, len(l.records))
	copy(batch, l.records)
	l.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	for _, sink := range l.opts.sinks {
		if err := sink.Export(ctx, batch); err != nil {
			return errors.Join(ErrExportFailed, err)
		}
	}

	l.mu.Lock()
	rest := make([]Record, len(l.records)-len(batch))
	copy(rest, l.records[len(batch):])
	l.records = rest
	l.mu.Unlock()

	return nil
}

// Start runs the periodic flush schedule configured with WithSchedule.
// It is a no-op when no schedule is configured.
func (l *Logger) Start(ctx context.Context) error {
	if l.opts.schedule == "" {
		return nil
	}

	l.cronMu.Lock()
	defer l.cronMu.Unlock()

	if l.cron != nil {
		return ErrAlreadyStarted
	}

	flushCtx := context.WithoutCancel(ctx)
	c := cron.New()
	if _, err := c.AddFunc(l.opts.schedule, func() {
		l.autoFlush(flushCtx)
	}); err != nil {
		return errors.Join(ErrInvalidSchedule, err)
	}

	c.Start()
	l.cron = c
	return nil
}

// Stop halts the flush schedule, waits for a running scheduled flush,
// and flushes whatever is still buffered.
func (l *Logger) Stop(ctx context.Context) error {
	l.cronMu.Lock()
	c := l.cron
	l.cron = nil
	l.cronMu.Unlock()

	if c == nil {
		if l.opts.schedule == "" {
			return l.Flush(ctx)
		}
		return ErrNotStarted
	}

	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	return l.Flush(ctx)
}
