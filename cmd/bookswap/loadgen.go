package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookswap-hub/bookswap/shared/shell/telemetry"
)

var errInvalidLoadConfig = errors.New("rate and workers must be positive, users at least 2, four weights")

func newLoadgenCommand(root *rootOptions) *cobra.Command {
	cfg := loadConfig{Weights: [4]int{40, 30, 10, 20}}
	var (
		duration time.Duration
		weights  []int
	)

	cmd := &cobra.Command{
		Use:   "loadgen",
		Short: "Seed users and books, then run swap scenarios at a fixed rate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Rate <= 0 || cfg.Workers <= 0 || cfg.Users < 2 || len(weights) != len(cfg.Weights) {
				return errInvalidLoadConfig
			}
			copy(cfg.Weights[:], weights)

			appCfg, err := root.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			logger := telemetry.NewJSONLogger(os.Stdout, appCfg.Log.Level)

			a, err := newApp(ctx, appCfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = a.close() }()

			generator := NewLoadGenerator(a.catalog, a.negotiation, a.accounts, cfg, logger)
			if err = generator.Seed(ctx); err != nil {
				return err
			}

			return generator.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cfg.Rate, "rate", 30, "scenarios per second")
	flags.IntVar(&cfg.Workers, "workers", 16, "scenarios running at the same time")
	flags.IntVar(&cfg.Users, "users", 50, "users to register, at least 2")
	flags.IntVar(&cfg.BooksPerUser, "books-per-user", 3, "books each user lists")
	flags.IntSliceVar(&weights, "weights", cfg.Weights[:], "percent weights of propose,decide,withdraw,relist")
	flags.DurationVar(&duration, "duration", 0, "stop after this long, 0 runs until interrupted")

	return cmd
}
