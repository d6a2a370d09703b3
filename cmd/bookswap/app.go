package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/bookswap-hub/bookswap/features/accounts"
	"github.com/bookswap-hub/bookswap/features/bookcatalog"
	"github.com/bookswap-hub/bookswap/features/swapnegotiation"
	"github.com/bookswap-hub/bookswap/shared/shell"
	"github.com/bookswap-hub/bookswap/shared/shell/auth"
	"github.com/bookswap-hub/bookswap/shared/shell/blobstore"
	"github.com/bookswap-hub/bookswap/shared/shell/config"
	"github.com/bookswap-hub/bookswap/shared/shell/observable"
	"github.com/bookswap-hub/bookswap/shared/shell/telemetry"
)

const tracerName = "github.com/bookswap-hub/bookswap"

// app is the wired process: event store, collaborators and the three facades.
type app struct {
	cfg            config.Config
	logger         *slog.Logger
	registry       *prometheus.Registry
	tracerProvider *sdktrace.TracerProvider
	eventStore     config.EventStoreHandle
	covers         blobstore.Store
	tokens         *auth.Service
	catalog        *bookcatalog.Catalog
	negotiation    *swapnegotiation.Negotiation
	accounts       *accounts.Accounts

	closers []func() error
}

// instrumentation is handed to every observable wrapper.
type instrumentation struct {
	logger  shell.ContextualLogger
	metrics shell.MetricsCollector
	tracing shell.TracingCollector
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger, registry: prometheus.NewRegistry()}

	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tracerProvider, shutdownTracing, err := telemetry.NewTracerProvider(ctx, telemetry.TracerProviderConfig{
		ServiceName:  cfg.Telemetry.ServiceName,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		Insecure:     cfg.Telemetry.OTLPInsecure,
	})
	if err != nil {
		return nil, err
	}
	a.tracerProvider = tracerProvider
	a.closers = append(a.closers, shutdownTracing)

	inst := instrumentation{
		logger:  logger,
		metrics: telemetry.NewMetricsCollector(a.registry),
		tracing: telemetry.NewTracingCollector(tracerProvider.Tracer(tracerName)),
	}

	a.eventStore, err = config.OpenEventStore(ctx, cfg.Database, config.Observability{
		Logger:  inst.logger,
		Metrics: inst.metrics,
		Tracing: inst.tracing,
	})
	if err != nil {
		return nil, errors.Join(err, a.close())
	}
	a.closers = append(a.closers, func() error {
		a.eventStore.Close()
		return nil
	})

	if a.covers, err = a.openCovers(ctx); err != nil {
		return nil, errors.Join(err, a.close())
	}

	a.tokens, err = auth.NewService(
		cfg.Auth.JWTSecret,
		auth.WithTokenLifetime(cfg.Auth.TokenLifetime),
		auth.WithBcryptCost(cfg.Auth.BcryptCost),
	)
	if err != nil {
		return nil, errors.Join(err, a.close())
	}

	if err = a.wireFacades(inst); err != nil {
		return nil, errors.Join(err, a.close())
	}

	return a, nil
}

func (a *app) openCovers(ctx context.Context) (blobstore.Store, error) {
	switch a.cfg.Blob.Backend {
	case config.BlobBackendGCS:
		store, err := blobstore.NewGCSStore(ctx, a.cfg.Blob.GCSBucket, a.cfg.Blob.GCSCredentialsFile, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)

		return store, nil

	default:
		return blobstore.NewFSStore(a.cfg.Blob.UploadDir, a.logger)
	}
}

func (a *app) wireFacades(inst instrumentation) error {
	retry := shell.WithMaxAttempts(a.cfg.Database.MaxAppendAttempts)
	store := a.eventStore.Store

	catalogHandlers := bookcatalog.NewHandlers(store, retry)
	negotiationHandlers := swapnegotiation.NewHandlers(store, retry)
	accountHandlers := accounts.NewHandlers(store, retry)

	errs := make([]error, 0, 13)
	catalogHandlers.ListBook = observeCommand(catalogHandlers.ListBook, inst, &errs)
	catalogHandlers.ReviseBook = observeCommand(catalogHandlers.ReviseBook, inst, &errs)
	catalogHandlers.ChangeBookStatus = observeCommand(catalogHandlers.ChangeBookStatus, inst, &errs)
	catalogHandlers.DelistBook = observeCommand(catalogHandlers.DelistBook, inst, &errs)
	catalogHandlers.Bookshelf = observeQuery(catalogHandlers.Bookshelf, inst, &errs)
	catalogHandlers.BookDetails = observeQuery(catalogHandlers.BookDetails, inst, &errs)

	negotiationHandlers.ProposeSwap = observeCommand(negotiationHandlers.ProposeSwap, inst, &errs)
	negotiationHandlers.DecideSwap = observeCommand(negotiationHandlers.DecideSwap, inst, &errs)
	negotiationHandlers.WithdrawSwap = observeCommand(negotiationHandlers.WithdrawSwap, inst, &errs)
	negotiationHandlers.SwapList = observeQuery(negotiationHandlers.SwapList, inst, &errs)

	accountHandlers.RegisterUser = observeCommand(accountHandlers.RegisterUser, inst, &errs)
	accountHandlers.ReviseProfile = observeCommand(accountHandlers.ReviseProfile, inst, &errs)
	accountHandlers.UserAccount = observeQuery(accountHandlers.UserAccount, inst, &errs)

	if err := errors.Join(errs...); err != nil {
		return err
	}

	a.catalog = bookcatalog.NewCatalog(catalogHandlers, a.covers)
	a.negotiation = swapnegotiation.NewNegotiation(negotiationHandlers)
	a.accounts = accounts.NewAccounts(accountHandlers, a.tokens)

	return nil
}

// close releases everything in reverse order of acquisition.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil

	return errors.Join(errs...)
}

// observeCommand wraps the handler, falling back to the bare handler and recording the error.
func observeCommand[C shell.Command](
	handler shell.CoreCommandHandler[C],
	inst instrumentation,
	errs *[]error,
) shell.CoreCommandHandler[C] {

	wrapper, err := observable.NewCommandWrapper(
		handler,
		observable.WithCommandMetrics[C](inst.metrics),
		observable.WithCommandTracing[C](inst.tracing),
		observable.WithCommandContextualLogging[C](inst.logger),
	)
	if err != nil {
		*errs = append(*errs, err)
		return handler
	}

	return wrapper
}

// observeQuery wraps the handler, falling back to the bare handler and recording the error.
func observeQuery[Q shell.Query, R shell.QueryResult](
	handler shell.CoreQueryHandler[Q, R],
	inst instrumentation,
	errs *[]error,
) shell.CoreQueryHandler[Q, R] {

	wrapper, err := observable.NewQueryWrapper(
		handler,
		observable.WithQueryMetrics[Q, R](inst.metrics),
		observable.WithQueryTracing[Q, R](inst.tracing),
		observable.WithQueryContextualLogging[Q, R](inst.logger),
	)
	if err != nil {
		*errs = append(*errs, err)
		return handler
	}

	return wrapper
}
