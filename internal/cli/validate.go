package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/logtarget/pkg/sentrytarget"
)

func newValidateCmd(cf *configFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the configuration builds a Sentry client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := cf.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg, err := cf.load()
			if err != nil {
				return err
			}
			if _, err := sentrytarget.New(cfg, sentrytarget.WithLogger(log)); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Configuration is valid!")
			fmt.Fprintf(out, "  dsn host:       %s\n", dsnHost(cfg.DSN))
			fmt.Fprintf(out, "  environment:    %s\n", orNone(cfg.Environment))
			fmt.Fprintf(out, "  release:        %s\n", orNone(cfg.Release))
			fmt.Fprintf(out, "  context dump:   %t\n", cfg.ContextEnabled())
			fmt.Fprintf(out, "  client options: %d\n", len(cfg.ClientOptions))
			return nil
		},
	}
}

// dsnHost hides the DSN key.
func dsnHost(dsn string) string {
	if dsn == "" {
		return "(none, events are discarded)"
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "(unparsable)"
	}
	return u.Host
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
