package shell

import (
	"context"

	"github.com/bookswap-hub/bookswap/eventstore"
)

// QueriesEvents is what query handlers need from an event store.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// AppendsEvents is the conditional append of an event store.
type AppendsEvents interface {
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		events ...eventstore.StorableEvent,
	) error
}

// EventStore is what command handlers need: query a dynamic event stream, decide, append.
// Both postgresengine.EventStore and memengine.EventStore implement it.
type EventStore interface {
	QueriesEvents
	AppendsEvents
}

// Command is implemented by all command types.
// CommandType must work on the zero value, the observable wrappers rely on that.
type Command interface {
	CommandType() string
}

// Query is implemented by all query types.
// QueryType must work on the zero value.
type Query interface {
	QueryType() string
}

// QueryResult is implemented by all projections.
// GetSequenceNumber returns the highest sequence number of the events the projection was built from.
type QueryResult interface {
	GetSequenceNumber() uint
}

// CoreCommandHandler processes a command: query, decide, append.
// Observability is added by wrapping it with observable.CommandWrapper.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// CoreQueryHandler processes a query: query, unmarshal, project.
// Observability is added by wrapping it with observable.QueryWrapper.
type CoreQueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
