package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/logtarget/pkg/logbuffer"
	"github.com/dmitrymomot/logtarget/pkg/sentrytarget"
)

const maxLineSize = 1 << 20

type shipFlags struct {
	input        string
	flushEvery   string
	levels       []string
	categories   []string
	except       []string
	batch        int
	flushTimeout time.Duration
	skipInvalid  bool
}

func newShipCmd(cf *configFlags) *cobra.Command {
	f := &shipFlags{}

	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Ship JSON-lines log records to Sentry",
		Long: `Ship reads one record per line from --input (stdin by default):

  {"level":"error","category":"app.db","payload":{"msg":"timeout","exception":"i/o timeout"}}

Records are buffered and exported every --batch records, on the
--flush-every cron schedule, and at end of input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShip(cmd, cf, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "-", "input file, - for stdin")
	fl.IntVar(&f.batch, "batch", 100, "export after this many records (0 = only at end of input)")
	fl.StringVar(&f.flushEvery, "flush-every", "", "cron schedule for periodic flushes, e.g. @every 5s")
	fl.StringSliceVar(&f.levels, "levels", nil, "levels to ship (default all)")
	fl.StringSliceVar(&f.categories, "categories", nil, "category patterns to ship, e.g. app.*")
	fl.StringSliceVar(&f.except, "except-categories", nil, "category patterns to drop")
	fl.DurationVar(&f.flushTimeout, "flush-timeout", 5*time.Second, "time to wait for delivery at exit")
	fl.BoolVar(&f.skipInvalid, "skip-invalid", false, "log and skip malformed lines instead of failing")

	return cmd
}

func runShip(cmd *cobra.Command, cf *configFlags, f *shipFlags) error {
	ctx := cmd.Context()

	log, err := cf.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg, err := cf.load()
	if err != nil {
		return err
	}

	target, err := sentrytarget.New(cfg, sentrytarget.WithLogger(log))
	if err != nil {
		return err
	}

	bufOpts, err := f.bufferOptions(log, target)
	if err != nil {
		return err
	}
	buf := logbuffer.New(bufOpts...)
	if err := buf.Start(ctx); err != nil {
		return err
	}

	in, closeIn, err := openInput(cmd, f.input)
	if err != nil {
		return err
	}
	defer closeIn()

	processed, readErr := f.read(ctx, in, buf, log)

	// Deliver what was read even when input was interrupted.
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.flushTimeout)
	defer cancel()

	if err := buf.Stop(stopCtx); err != nil {
		return errors.Join(readErr, err)
	}
	if err := target.Close(stopCtx); err != nil {
		return errors.Join(readErr, err)
	}
	if readErr != nil {
		return readErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "processed %d records\n", processed)
	return nil
}

func (f *shipFlags) bufferOptions(log *slog.Logger, sink logbuffer.Sink) ([]logbuffer.Option, error) {
	opts := []logbuffer.Option{
		logbuffer.WithSink(sink),
		logbuffer.WithFlushInterval(f.batch),
		logbuffer.WithLogger(log),
	}
	if len(f.levels) > 0 {
		levels := make([]logbuffer.Level, 0, len(f.levels))
		for _, s := range f.levels {
			level, err := logbuffer.ParseLevel(s)
			if err != nil {
				return nil, err
			}
			levels = append(levels, level)
		}
		opts = append(opts, logbuffer.WithLevels(levels...))
	}
	if len(f.categories) > 0 {
		opts = append(opts, logbuffer.WithCategories(f.categories...))
	}
	if len(f.except) > 0 {
		opts = append(opts, logbuffer.WithExceptCategories(f.except...))
	}
	if f.flushEvery != "" {
		opts = append(opts, logbuffer.WithSchedule(f.flushEvery))
	}
	return opts, nil
}

// read buffers records until EOF or cancellation and returns how many lines were decoded.
func (f *shipFlags) read(ctx context.Context, in io.Reader, buf *logbuffer.Logger, log *slog.Logger) (int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	processed := 0
	for n := 1; scanner.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return processed, err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			if !f.skipInvalid {
				return processed, fmt.Errorf("line %d: %w", n, err)
			}
			log.WarnContext(ctx, "skipping invalid record", slog.Int("line", n), slog.Any("error", err))
			continue
		}

		buf.Log(ctx, rec.Payload, rec.Level, rec.Category)
		processed++
	}
	return processed, scanner.Err()
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { _ = file.Close() }, nil
}
