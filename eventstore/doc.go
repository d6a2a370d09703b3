// Package eventstore provides the storage-agnostic building blocks of the bookswap event store:
// dynamic event stream filters, the StorableEvent DTO, consistency hints carried on the context,
// and the observability interfaces the engines report to.
//
// A "dynamic event stream" is whatever a Filter selects. Command handlers query it, decide,
// and append with the same Filter and the max sequence number they saw. The append succeeds
// only if no matching event was written in between, otherwise ErrConcurrencyConflict is returned.
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.SwapProposedEventType, core.SwapAcceptedEventType).
//		AndAnyPredicateOf(eventstore.P("SwapID", swapID.String())).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	// ... decide ...
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//
// Engines live in sub-packages: postgresengine for production, memengine for tests and local runs.
package eventstore
