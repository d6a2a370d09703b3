// Package postgresengine is the PostgreSQL engine of the event store.
//
// It works with pgxpool.Pool (optionally with a read replica), sql.DB and sqlx.DB.
// Appends are a single conditional INSERT: the rows are only written if the max sequence
// number of the events matching the Filter still equals the one the caller read.
// Appending several events therefore either writes all of them or none.
//
//	pool, _ := pgxpool.NewWithConfig(ctx, cfg)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(pool, postgresengine.WithLogger(slog.Default()))
//	_ = store.CreateSchema(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, swapAccepted, offeredBookSwapped, requestedBookSwapped)
package postgresengine
