package logbuffer_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/logtarget/pkg/logbuffer"
)

func flushed(t *testing.T, l *logbuffer.Logger, sink *recordingSink) []logbuffer.Record {
	t.Helper()
	require.NoError(t, l.Flush(context.Background()))
	return sink.all()
}

func TestHandler(t *testing.T) {
	t.Parallel()

	t.Run("converts records into structured payloads", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		buf := logbuffer.New(logbuffer.WithSink(sink))
		log := slog.New(logbuffer.NewHandler(buf, logbuffer.WithDefaultCategory("api")))

		log.Warn("slow query", slog.Int("ms", 1200), slog.String("table", "users"))

		got := flushed(t, buf, sink)
		require.Len(t, got, 1)
		require.Equal(t, logbuffer.LevelWarning, got[0].Level)
		require.Equal(t, "api", got[0].Category)
		require.Equal(t, map[string]any{
			"msg":   "slow query",
			"ms":    int64(1200),
			"table": "users",
		}, got[0].Payload)
	})

	t.Run("category attribute overrides the default", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		buf := logbuffer.New(logbuffer.WithSink(sink))
		log := slog.New(logbuffer.NewHandler(buf))

		log.Info("charged", "category", "billing")

		got := flushed(t, buf, sink)
		require.Equal(t, "billing", got[0].Category)
		require.NotContains(t, got[0].Payload, "category")
	})

	t.Run("error attributes become the exception", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		buf := logbuffer.New(logbuffer.WithSink(sink))
		log := slog.New(logbuffer.NewHandler(buf))
		boom := errors.New("boom")

		log.Error("request failed", "error", boom)
		log.Error("not an error value", "error", "plain text")

		got := flushed(t, buf, sink)
		require.Len(t, got, 2)
		require.Equal(t, logbuffer.LevelError, got[0].Level)
		payload := got[0].Payload.(map[string]any)
		require.Equal(t, boom, payload["exception"])
		require.NotContains(t, payload, "error")

		payload = got[1].Payload.(map[string]any)
		require.Equal(t, "plain text", payload["error"])
		require.NotContains(t, payload, "exception")
	})

	t.Run("maps slog levels", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		buf := logbuffer.New(logbuffer.WithSink(sink))
		log := slog.New(logbuffer.NewHandler(buf))

		log.Debug("d")
		log.Info("i")
		log.Warn("w")
		log.Error("e")

		got := flushed(t, buf, sink)
		require.Len(t, got, 4)
		require.Equal(t, logbuffer.LevelTrace, got[0].Level)
		require.Equal(t, logbuffer.LevelInfo, got[1].Level)
		require.Equal(t, logbuffer.LevelWarning, got[2].Level)
		require.Equal(t, logbuffer.LevelError, got[3].Level)
	})

	t.Run("min level filters records", func(t *testing.T) {
		t.Parallel()

		buf := logbuffer.New()
		log := slog.New(logbuffer.NewHandler(buf, logbuffer.WithMinLevel(slog.LevelWarn)))

		log.Info("dropped")
		log.Warn("kept")
		require.Equal(t, 1, buf.Len())
	})

	t.Run("nests attributes under groups", func(t *testing.T) {
		t.Parallel()

		sink := &recordingSink{}
		buf := logbuffer.New(logbuffer.WithSink(sink))
		log := slog.New(logbuffer.NewHandler(buf)).
			With("service", "checkout").
			WithGroup("http").
			With("method", "POST")

		log.Info("done", slog.Int("status", 201), slog.Group("client", slog.String("ip", "10.0.0.1")))

		got := flushed(t, buf, sink)
		require.Equal(t, map[string]any{
			"msg":     "done",
			"service": "checkout",
			"http": map[string]any{
				"method": "POST",
				"status": int64(201),
				"client": map[string]any{"ip": "10.0.0.1"},
			},
		}, got[0].Payload)
	})

	t.Run("routes to the context logger", func(t *testing.T) {
		t.Parallel()

		fallbackSink, requestSink := &recordingSink{}, &recordingSink{}
		fallback := logbuffer.New(logbuffer.WithSink(fallbackSink))
		perRequest := logbuffer.New(logbuffer.WithSink(requestSink))
		log := slog.New(logbuffer.NewHandler(fallback))

		ctx := logbuffer.NewContext(context.Background(), perRequest)
		log.InfoContext(ctx, "in request")
		log.Info("outside")

		require.Len(t, flushed(t, perRequest, requestSink), 1)
		require.Len(t, flushed(t, fallback, fallbackSink), 1)
	})

	t.Run("nil fallback discards", func(t *testing.T) {
		t.Parallel()

		h := logbuffer.NewHandler(nil)
		require.NoError(t, h.Handle(context.Background(), slog.Record{Message: "x"}))
	})
}
