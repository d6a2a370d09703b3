package config

import (
	"context"
	"errors"

	"github.com/bookswap-hub/bookswap/eventstore/memengine"
	"github.com/bookswap-hub/bookswap/eventstore/postgresengine"
	"github.com/bookswap-hub/bookswap/shared/shell"
)

// EventStoreHandle is an opened event store plus the function releasing its connections.
type EventStoreHandle struct {
	Store shell.EventStore
	// Postgres is nil for the memory adapter.
	Postgres *postgresengine.EventStore
	Close    func()
}

// Observability bundles the collectors handed to the engine.
type Observability struct {
	Logger  shell.ContextualLogger
	Metrics shell.MetricsCollector
	Tracing shell.TracingCollector
}

// OpenEventStore opens the engine selected by the adapter type.
// A replica DSN is only honored for the pgx.pool adapter.
func OpenEventStore(ctx context.Context, cfg DatabaseConfig, obs Observability) (EventStoreHandle, error) {
	if cfg.AdapterType == AdapterMemory {
		options := []memengine.Option{}
		if obs.Logger != nil {
			options = append(options, memengine.WithLogger(obs.Logger))
		}

		return EventStoreHandle{Store: memengine.NewEventStore(options...), Close: func() {}}, nil
	}

	options := []postgresengine.Option{postgresengine.WithTableName(cfg.EventsTable)}
	if obs.Logger != nil {
		options = append(options, postgresengine.WithContextualLogger(obs.Logger))
	}
	if obs.Metrics != nil {
		options = append(options, postgresengine.WithMetrics(obs.Metrics))
	}
	if obs.Tracing != nil {
		options = append(options, postgresengine.WithTracing(obs.Tracing))
	}

	switch cfg.AdapterType {
	case AdapterPGXPool:
		return openPGXPool(ctx, cfg, options)

	case AdapterSQLDB:
		db, err := NewSQLDB(ctx, cfg.DSN, cfg.MaxConnections)
		if err != nil {
			return EventStoreHandle{}, err
		}

		es, err := postgresengine.NewEventStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return EventStoreHandle{}, err
		}

		return EventStoreHandle{Store: es, Postgres: es, Close: func() { _ = db.Close() }}, nil

	case AdapterSQLX:
		db, err := NewSQLX(ctx, cfg.DSN, cfg.MaxConnections)
		if err != nil {
			return EventStoreHandle{}, err
		}

		es, err := postgresengine.NewEventStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return EventStoreHandle{}, err
		}

		return EventStoreHandle{Store: es, Postgres: es, Close: func() { _ = db.Close() }}, nil

	default:
		return EventStoreHandle{}, errors.Join(ErrUnknownAdapterType, errors.New(cfg.AdapterType))
	}
}

func openPGXPool(ctx context.Context, cfg DatabaseConfig, options []postgresengine.Option) (EventStoreHandle, error) {
	primary, err := NewPGXPool(ctx, cfg.DSN, cfg.MaxConnections)
	if err != nil {
		return EventStoreHandle{}, err
	}

	if cfg.ReplicaDSN == "" {
		es, esErr := postgresengine.NewEventStoreFromPGXPool(primary, options...)
		if esErr != nil {
			primary.Close()
			return EventStoreHandle{}, esErr
		}

		return EventStoreHandle{Store: es, Postgres: es, Close: primary.Close}, nil
	}

	replica, err := NewPGXPool(ctx, cfg.ReplicaDSN, cfg.MaxConnections)
	if err != nil {
		primary.Close()
		return EventStoreHandle{}, err
	}

	closeBoth := func() {
		replica.Close()
		primary.Close()
	}

	es, err := postgresengine.NewEventStoreFromPGXPoolAndReplica(primary, replica, options...)
	if err != nil {
		closeBoth()
		return EventStoreHandle{}, err
	}

	return EventStoreHandle{Store: es, Postgres: es, Close: closeBoth}, nil
}
