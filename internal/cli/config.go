package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/logtarget/pkg/logger"
	"github.com/dmitrymomot/logtarget/pkg/sentrytarget"
)

type configFlags struct {
	environ     map[string]string
	path        string
	dsn         string
	environment string
	release     string
	logLevel    string
	noContext   bool
}

func (f *configFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.path, "config", "c", "", "path to the YAML config file")
	pf.StringVar(&f.dsn, "dsn", "", "Sentry DSN (overrides SENTRY_DSN)")
	pf.StringVar(&f.environment, "environment", "", "Sentry environment")
	pf.StringVar(&f.release, "release", "", "Sentry release")
	pf.BoolVar(&f.noContext, "no-context", false, "do not attach the diagnostic context dump")
	pf.StringVar(&f.logLevel, "log-level", "info", "diagnostic log level (debug, info, warn, error)")
}

// load resolves the adapter config: YAML file, then environment, then flags.
func (f *configFlags) load() (sentrytarget.Config, error) {
	var cfg sentrytarget.Config
	if f.path != "" {
		var err error
		if cfg, err = sentrytarget.LoadConfig(f.path); err != nil {
			return sentrytarget.Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: f.environ}); err != nil {
		return sentrytarget.Config{}, errors.Join(sentrytarget.ErrInvalidConfig, err)
	}

	if f.dsn != "" {
		cfg.DSN = f.dsn
	}
	if f.environment != "" {
		cfg.Environment = f.environment
	}
	if f.release != "" {
		cfg.Release = f.release
	}
	if f.noContext {
		off := false
		cfg.Context = &off
	}
	return cfg, nil
}

// logger writes diagnostics as JSON to w.
func (f *configFlags) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		return nil, err
	}
	return logger.New(logger.WithOutput(w), logger.WithLevel(level)), nil
}
