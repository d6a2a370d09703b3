package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bookswap-hub/bookswap/shared/shell/httpapi"
	"github.com/bookswap-hub/bookswap/shared/shell/telemetry"
)

const (
	logMsgServing       = "bookswap: serving http"
	logMsgShuttingDown  = "bookswap: shutting down"
	logMsgSchemaEnsured = "bookswap: event store schema ensured"
	logMsgReleaseFailed = "bookswap: releasing resources failed"
	logAttrAddr         = "addr"
	logAttrAdapter      = "adapter"
	logAttrBlobBackend  = "blob_backend"
	logAttrErr          = "error"
	readHeaderTimeout   = 5 * time.Second
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var createSchema bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := telemetry.NewJSONLogger(os.Stdout, cfg.Log.Level)

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := a.close(); closeErr != nil {
					logger.Error(logMsgReleaseFailed, logAttrErr, closeErr.Error())
				}
			}()

			if createSchema && a.eventStore.Postgres != nil {
				if err = a.eventStore.Postgres.CreateSchema(ctx); err != nil {
					return err
				}
				logger.InfoContext(ctx, logMsgSchemaEnsured)
			}

			return a.serve(ctx)
		},
	}

	cmd.Flags().BoolVar(&createSchema, "create-schema", false, "create the events table before serving")

	return cmd
}

// serve runs the HTTP server until ctx is cancelled, then drains it within the shutdown timeout.
func (a *app) serve(ctx context.Context) error {
	api := httpapi.NewServer(
		httpapi.Dependencies{
			Catalog:     a.catalog,
			Negotiation: a.negotiation,
			Accounts:    a.accounts,
			Tokens:      a.tokens,
			Covers:      a.covers,
		},
		httpapi.WithServiceName(a.cfg.Telemetry.ServiceName),
		httpapi.WithMaxUploadBytes(a.cfg.HTTP.MaxUploadBytes),
		httpapi.WithAuthRateLimit(a.cfg.HTTP.AuthRatePerSecond, a.cfg.HTTP.AuthBurst),
		httpapi.WithMetrics(a.registry),
		httpapi.WithTracerProvider(a.tracerProvider),
		httpapi.WithContextualLogger(a.logger),
	)

	server := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       a.cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      a.cfg.HTTP.WriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		a.logger.InfoContext(groupCtx, logMsgServing,
			logAttrAddr, server.Addr,
			logAttrAdapter, a.cfg.Database.AdapterType,
			logAttrBlobBackend, a.cfg.Blob.Backend,
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		a.logger.InfoContext(groupCtx, logMsgShuttingDown)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(groupCtx), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
