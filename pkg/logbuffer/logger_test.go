package logbuffer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/logtarget/pkg/logbuffer"
)

// recordingSink collects every exported batch.
type recordingSink struct {
	err     error
	batches [][]logbuffer.Record
	mu      sync.Mutex
}

func (s *recordingSink) Export(_ context.Context, records []logbuffer.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, append([]logbuffer.Record(nil), records...))
	return nil
}

func (s *recordingSink) all() []logbuffer.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []logbuffer.Record
	for _, b := range s.batches {
		out = append(out, b...)
	}
	return out
}

func (s *recordingSink) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func TestLogger_Flush(t *testing.T) {
	t.Parallel()

	t.Run("exports records in order and clears the buffer", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		l := logbuffer.New(logbuffer.WithSink(sink), logbuffer.WithFlushInterval(0))
		ctx := context.Background()

		l.Info(ctx, "first", "app")
		l.Error(ctx, "second", "db")
		l.Warning(ctx, "third", "app")
		require.Equal(t, 3, l.Len())

		require.NoError(t, l.Flush(ctx))
		require.Equal(t, 0, l.Len())

		got := sink.all()
		require.Len(t, got, 3)
		require.Equal(t, "first", got[0].Payload)
		require.Equal(t, logbuffer.LevelError, got[1].Level)
		require.Equal(t, "db", got[1].Category)
		require.Equal(t, "third", got[2].Payload)
	})

	t.Run("empty buffer does not call sinks", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		l := logbuffer.New(logbuffer.WithSink(sink))

		require.NoError(t, l.Flush(context.Background()))
		require.Empty(t, sink.batches)
	})

	t.Run("keeps records when a sink fails", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		sink := &recordingSink{err: boom}
		l := logbuffer.New(logbuffer.WithSink(sink), logbuffer.WithFlushInterval(0))
		ctx := context.Background()

		l.Info(ctx, "kept", "app")

		err := l.Flush(ctx)
		require.ErrorIs(t, err, logbuffer.ErrExportFailed)
		require.ErrorIs(t, err, boom)
		require.Equal(t, 1, l.Len())

		sink.setErr(nil)
		require.NoError(t, l.Flush(ctx))
		require.Equal(t, 0, l.Len())
		require.Len(t, sink.all(), 1)
	})

	t.Run("exports to every sink", func(t *testing.T) {
		t.Parallel()

		a, b := &recordingSink{}, &recordingSink{}
		l := logbuffer.New(logbuffer.WithSink(a, nil, b))
		ctx := context.Background()

		l.Info(ctx, "hello", "app")
		require.NoError(t, l.Flush(ctx))

		require.Len(t, a.all(), 1)
		require.Len(t, b.all(), 1)
	})

	t.Run("stamps records with the clock", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		sink := &recordingSink{}
		l := logbuffer.New(
			logbuffer.WithSink(sink),
			logbuffer.WithClock(func() time.Time { return now }),
		)
		ctx := context.Background()

		l.Trace(ctx, "tick", "app")
		require.NoError(t, l.Flush(ctx))
		require.Equal(t, now, sink.all()[0].Time)
	})
}

func TestLogger_FlushInterval(t *testing.T) {
	t.Parallel()

	t.Run("flushes when the interval is reached", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		l := logbuffer.New(logbuffer.WithSink(sink), logbuffer.WithFlushInterval(2))
		ctx := context.Background()

		l.Info(ctx, "one", "app")
		require.Empty(t, sink.all())

		l.Info(ctx, "two", "app")
		require.Len(t, sink.all(), 2)
		require.Equal(t, 0, l.Len())
	})

	t.Run("sink logging into the same buffer does not deadlock", func(t *testing.T) {
		t.Parallel()

		var l *logbuffer.Logger
		calls := 0
		sink := logbuffer.SinkFunc(func(ctx context.Context, records []logbuffer.Record) error {
			calls++
			l.Info(ctx, "exported", "sink")
			return nil
		})
		l = logbuffer.New(logbuffer.WithSink(sink), logbuffer.WithFlushInterval(1))

		l.Info(context.Background(), "trigger", "app")
		require.Equal(t, 1, calls)
		require.Equal(t, 1, l.Len())
	})
}

func TestLogger_Filters(t *testing.T) {
	t.Parallel()

	t.Run("level filter", func(t *testing.T) {
		t.Parallel()

		l := logbuffer.New(logbuffer.WithLevels(logbuffer.LevelError, logbuffer.LevelWarning))
		ctx := context.Background()

		l.Info(ctx, "dropped", "app")
		l.Error(ctx, "kept", "app")
		l.Warning(ctx, "kept", "app")
		require.Equal(t, 2, l.Len())
	})

	t.Run("category filters", func(t *testing.T) {
		t.Parallel()

		l := logbuffer.New(
			logbuffer.WithCategories("app*", "db"),
			logbuffer.WithExceptCategories("app.noisy"),
		)
		ctx := context.Background()

		l.Info(ctx, "x", "app.http")
		l.Info(ctx, "x", "db")
		l.Info(ctx, "x", "db.slow")
		l.Info(ctx, "x", "app.noisy")
		l.Info(ctx, "x", "cache")
		require.Equal(t, 2, l.Len())
	})
}

func TestLogger_Schedule(t *testing.T) {
	t.Parallel()

	t.Run("stop flushes remaining records", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		l := logbuffer.New(
			logbuffer.WithSink(sink),
			logbuffer.WithFlushInterval(0),
			logbuffer.WithSchedule("@every 1h"),
		)
		ctx := context.Background()

		require.NoError(t, l.Start(ctx))
		require.ErrorIs(t, l.Start(ctx), logbuffer.ErrAlreadyStarted)

		l.Info(ctx, "pending", "app")
		require.NoError(t, l.Stop(ctx))
		require.Len(t, sink.all(), 1)

		require.ErrorIs(t, l.Stop(ctx), logbuffer.ErrNotStarted)
	})

	t.Run("scheduled flush exports buffered records", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		l := logbuffer.New(
			logbuffer.WithSink(sink),
			logbuffer.WithFlushInterval(0),
			logbuffer.WithSchedule("@every 1s"),
		)
		ctx := context.Background()

		l.Info(ctx, "pending", "app")
		require.NoError(t, l.Start(ctx))
		defer func() { _ = l.Stop(ctx) }()

		require.Eventually(t, func() bool {
			return len(sink.all()) == 1
		}, 5*time.Second, 50*time.Millisecond)
	})

	t.Run("rejects invalid schedules", func(t *testing.T) {
		t.Parallel()

		l := logbuffer.New(logbuffer.WithSchedule("every now and then"))
		require.ErrorIs(t, l.Start(context.Background()), logbuffer.ErrInvalidSchedule)
	})

	t.Run("start without schedule is a no-op", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		l := logbuffer.New(logbuffer.WithSink(sink))
		ctx := context.Background()

		require.NoError(t, l.Start(ctx))
		l.Info(ctx, "x", "app")
		require.NoError(t, l.Stop(ctx))
		require.Len(t, sink.all(), 1)
	})
}
