package sentrytarget_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/logtarget/pkg/sentrytarget"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("decodes YAML", func(t *testing.T) {
		t.Parallel()

		cfg, err := sentrytarget.ParseConfig([]byte(`
dsn: https://public@example.com/1
environment: staging
context: false
disabled_integrations: [Modules]
client_options:
  sample_rate: 0.5
  max_breadcrumbs: 10
  tags:
    service: api
`))
		require.NoError(t, err)
		require.Equal(t, "https://public@example.com/1", cfg.DSN)
		require.Equal(t, "staging", cfg.Environment)
		require.False(t, cfg.ContextEnabled())
		require.Equal(t, []string{"Modules"}, cfg.DisabledIntegrations)
		require.Equal(t, 0.5, cfg.ClientOptions["sample_rate"])
		require.Equal(t, 10, cfg.ClientOptions["max_breadcrumbs"])
	})

	t.Run("context defaults to enabled", func(t *testing.T) {
		t.Parallel()

		cfg, err := sentrytarget.ParseConfig([]byte(`dsn: ""`))
		require.NoError(t, err)
		require.True(t, cfg.ContextEnabled())
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := sentrytarget.ParseConfig([]byte("dsn: [unterminated"))
		require.ErrorIs(t, err, sentrytarget.ErrInvalidConfig)
	})

	t.Run("loads files", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sentry.yaml")
		require.NoError(t, os.WriteFile(path, []byte("dsn: https://public@example.com/2\n"), 0o600))

		cfg, err := sentrytarget.LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "https://public@example.com/2", cfg.DSN)

		_, err = sentrytarget.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, sentrytarget.ErrInvalidConfig)
	})
}

func TestNewSentryClient_Options(t *testing.T) {
	t.Parallel()

	t.Run("applies pass-through options", func(t *testing.T) {
		t.Parallel()

		var got sentry.ClientOptions
		_, err := sentrytarget.NewSentryClient(sentrytarget.Config{
			DSN:     testDSN,
			Release: "v1.2.3",
			ClientOptions: map[string]any{
				"environment":       "from-options",
				"serverName":        "node-1",
				"sample_rate":       1,
				"max-breadcrumbs":   5.0,
				"attach_stacktrace": true,
				"ignore_errors":     []any{"context canceled"},
				"tags":              map[string]any{"service": "api"},
			},
		}, func(o *sentry.ClientOptions) { got = *o })
		require.NoError(t, err)

		require.Equal(t, "from-options", got.Environment)
		require.Equal(t, "v1.2.3", got.Release)
		require.Equal(t, "node-1", got.ServerName)
		require.Equal(t, 1.0, got.SampleRate)
		require.Equal(t, 5, got.MaxBreadcrumbs)
		require.True(t, got.AttachStacktrace)
		require.Equal(t, []string{"context canceled"}, got.IgnoreErrors)
		require.Equal(t, map[string]string{"service": "api"}, got.Tags)
	})

	t.Run("dedicated fields override options", func(t *testing.T) {
		t.Parallel()

		var got sentry.ClientOptions
		_, err := sentrytarget.NewSentryClient(sentrytarget.Config{
			DSN:           testDSN,
			Environment:   "production",
			ClientOptions: map[string]any{"environment": "dev"},
		}, func(o *sentry.ClientOptions) { got = *o })
		require.NoError(t, err)
		require.Equal(t, "production", got.Environment)
	})

	t.Run("rejects unknown options", func(t *testing.T) {
		t.Parallel()

		_, err := sentrytarget.New(sentrytarget.Config{
			DSN:           testDSN,
			ClientOptions: map[string]any{"teleport": true},
		})
		require.ErrorIs(t, err, sentrytarget.ErrInvalidConfig)
		require.ErrorIs(t, err, sentrytarget.ErrUnknownClientOption)
	})

	t.Run("rejects mistyped options", func(t *testing.T) {
		t.Parallel()

		_, err := sentrytarget.New(sentrytarget.Config{
			DSN:           testDSN,
			ClientOptions: map[string]any{"sample_rate": "half"},
		})
		require.ErrorIs(t, err, sentrytarget.ErrInvalidClientOption)

		_, err = sentrytarget.New(sentrytarget.Config{
			DSN:           testDSN,
			ClientOptions: map[string]any{"sample_rate": 2},
		})
		require.ErrorIs(t, err, sentrytarget.ErrInvalidClientOption)

		_, err = sentrytarget.New(sentrytarget.Config{
			DSN:           testDSN,
			ClientOptions: map[string]any{"max_breadcrumbs": 1.5},
		})
		require.ErrorIs(t, err, sentrytarget.ErrInvalidClientOption)
	})

	t.Run("rejects malformed DSN", func(t *testing.T) {
		t.Parallel()

		_, err := sentrytarget.New(sentrytarget.Config{DSN: "not a dsn"})
		require.ErrorIs(t, err, sentrytarget.ErrInvalidConfig)
	})
}
