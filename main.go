package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petuhovskiy/qsampler/internal/app"
	"github.com/petuhovskiy/qsampler/internal/conf"
	"github.com/petuhovskiy/qsampler/internal/loader"
	"github.com/petuhovskiy/qsampler/internal/log"
	"github.com/petuhovskiy/qsampler/internal/session"
	"github.com/petuhovskiy/qsampler/internal/wpool"
)

var opts wpool.Options

var rootCmd = &cobra.Command{
	Use:   "qsampler [flags] filename",
	Short: "qsampler asks questions from a file in weighted random order, press ENTER to reveal the answer.",
	Args:  cobra.ExactArgs(1),
	// errors are reported by main
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&opts.WithReplacement, "with-replacement", "r", false, "use sampling with replacement")
	rootCmd.Flags().BoolVarP(&opts.EqualWeights, "equal-weights", "e", false, "use equal weights")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, filename string) error {
	cfg, err := conf.ParseEnv()
	if err != nil {
		return fmt.Errorf("failed to parse config from env: %w", err)
	}
	undo, err := log.Globals(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer undo()

	ctx = log.With(ctx, zap.String("file", filename))

	items, err := loader.Load(filename)
	if err != nil {
		return err
	}

	base, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := base.Shutdown(shutdownCtx); err != nil {
			log.Warn(ctx, "shutdown failed", zap.Error(err))
		}
	}()

	if base.DB != nil {
		ctx = log.With(ctx, zap.String("session", cfg.Session), zap.Uint("run", base.Run))
		log.Info(ctx, "draw journal enabled")
	}

	pool, err := base.NewPool(items, opts)
	if err != nil {
		return err
	}
	log.Info(ctx, "questions loaded", zap.Int("count", pool.Len()))

	base.StartPrometheus()

	err = session.New(pool, os.Stdin, os.Stdout, base.Recorder).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// describe turns load errors into messages for the user.
func describe(err error) string {
	var (
		formatErr  *loader.FormatError
		missingErr *loader.MissingFieldError
		pathErr    *fs.PathError
	)
	switch {
	case errors.As(err, &missingErr):
		return fmt.Sprintf("Column %q is missing in record %d of the question file", missingErr.Field, missingErr.Record)
	case errors.As(err, &formatErr):
		return formatErr.Error()
	case errors.Is(err, fs.ErrNotExist) && errors.As(err, &pathErr):
		return fmt.Sprintf("File not found: %s", pathErr.Path)
	case errors.Is(err, wpool.ErrEmptyPool):
		return "The question file has no questions"
	default:
		return err.Error()
	}
}
