// Package cli implements the logtarget command: it ships JSON-lines log
// records to Sentry and validates adapter configuration.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil)
}

// newRootCmd reads SENTRY_* overrides from environ, or from the process
// environment when environ is nil.
func newRootCmd(environ map[string]string) *cobra.Command {
	flags := &configFlags{environ: environ}

	root := &cobra.Command{
		Use:   "logtarget",
		Short: "Ship buffered log records to Sentry",
		Long: `logtarget converts log records into Sentry events.

Configuration is read from a YAML file (--config), then overridden by
SENTRY_* environment variables, then by flags.`,
		SilenceUsage: true,
	}
	flags.register(root)

	root.AddCommand(
		newShipCmd(flags),
		newValidateCmd(flags),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
// SIGINT and SIGTERM cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
