package postgresengine_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/eventstore/postgresengine"
)

const testDSNEnv = "BOOKSWAP_TEST_DSN"

type engineFactory func(t *testing.T, dsn string, tableName string) *postgresengine.EventStore

func engineFactories() map[string]engineFactory {
	return map[string]engineFactory{
		"pgx.pool": func(t *testing.T, dsn string, tableName string) *postgresengine.EventStore {
			t.Helper()

			pool, err := pgxpool.New(context.Background(), dsn)
			require.NoError(t, err)
			t.Cleanup(pool.Close)

			es, err := postgresengine.NewEventStoreFromPGXPool(pool, postgresengine.WithTableName(tableName))
			require.NoError(t, err)

			return es
		},
		"sql.db": func(t *testing.T, dsn string, tableName string) *postgresengine.EventStore {
			t.Helper()

			db, err := sql.Open("postgres", dsn)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			es, err := postgresengine.NewEventStoreFromSQLDB(db, postgresengine.WithTableName(tableName))
			require.NoError(t, err)

			return es
		},
		"sqlx.db": func(t *testing.T, dsn string, tableName string) *postgresengine.EventStore {
			t.Helper()

			db, err := sqlx.Connect("postgres", dsn)
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			es, err := postgresengine.NewEventStoreFromSQLX(db, postgresengine.WithTableName(tableName))
			require.NoError(t, err)

			return es
		},
	}
}

func givenTestDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", testDSNEnv)
	}

	return dsn
}

func givenFreshEventStore(t *testing.T, ctx context.Context, factory engineFactory, dsn string) *postgresengine.EventStore {
	t.Helper()

	tableName := "events_test_" + uuid.NewString()[:8]
	es := factory(t, dsn, tableName)
	require.NoError(t, es.CreateSchema(ctx))

	t.Cleanup(func() {
		pool, err := pgxpool.New(context.Background(), dsn)
		if err != nil {
			return
		}
		defer pool.Close()

		_, _ = pool.Exec(context.Background(), fmt.Sprintf(`DROP TABLE IF EXISTS %q`, tableName))
	})

	return es
}

func bookEvent(t *testing.T, eventType string, bookID string) eventstore.StorableEvent {
	t.Helper()

	payload := fmt.Sprintf(`{"BookID":%q,"OwnerID":"u-1"}`, bookID)
	event, err := eventstore.BuildStorableEventWithEmptyMetadata(eventType, time.Now().UTC().Truncate(time.Microsecond), []byte(payload))
	require.NoError(t, err)

	return event
}

func filterForBook(bookID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookListed", "BookStatusChanged").
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}

//nolint:funlen
func Test_EventStore_AgainstPostgres(t *testing.T) {
	dsn := givenTestDSN(t)

	for name, factory := range engineFactories() {
		t.Run(name, func(t *testing.T) {
			t.Run("append_then_query_returns_events_with_sequence_numbers", func(t *testing.T) {
				// arrange
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				es := givenFreshEventStore(t, ctx, factory, dsn)
				filter := filterForBook("b-1")

				// act
				err := es.Append(ctx, filter, 0, bookEvent(t, "BookListed", "b-1"), bookEvent(t, "BookStatusChanged", "b-1"))
				require.NoError(t, err)
				events, maxSeq, queryErr := es.Query(ctx, filter)

				// assert
				require.NoError(t, queryErr)
				require.Len(t, events, 2)
				assert.Equal(t, "BookListed", events[0].EventType)
				assert.Less(t, events[0].SequenceNumber, events[1].SequenceNumber)
				assert.Equal(t, events[1].SequenceNumber, maxSeq)
			})

			t.Run("append_with_stale_sequence_number_conflicts_and_writes_nothing", func(t *testing.T) {
				// arrange
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				es := givenFreshEventStore(t, ctx, factory, dsn)
				filter := filterForBook("b-2")
				require.NoError(t, es.Append(ctx, filter, 0, bookEvent(t, "BookListed", "b-2")))

				// act
				err := es.Append(ctx, filter, 0, bookEvent(t, "BookStatusChanged", "b-2"), bookEvent(t, "BookStatusChanged", "b-2"))

				// assert
				assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
				events, _, queryErr := es.Query(ctx, filter)
				require.NoError(t, queryErr)
				assert.Len(t, events, 1)
			})

			t.Run("events_outside_the_filter_do_not_conflict", func(t *testing.T) {
				// arrange
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				es := givenFreshEventStore(t, ctx, factory, dsn)
				_, maxSeq, err := es.Query(ctx, filterForBook("b-3"))
				require.NoError(t, err)
				require.NoError(t, es.Append(ctx, filterForBook("b-4"), 0, bookEvent(t, "BookListed", "b-4")))

				// act
				err = es.Append(ctx, filterForBook("b-3"), maxSeq, bookEvent(t, "BookListed", "b-3"))

				// assert
				assert.NoError(t, err)
			})

			t.Run("concurrent_appends_on_the_same_stream_admit_exactly_one", func(t *testing.T) {
				// arrange
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				es := givenFreshEventStore(t, ctx, factory, dsn)
				filter := filterForBook("b-5")
				workers := 8
				errs := make([]error, workers)
				event := bookEvent(t, "BookListed", "b-5")
				var wg sync.WaitGroup

				// act
				for i := range workers {
					wg.Add(1)
					go func() {
						defer wg.Done()
						errs[i] = es.Append(ctx, filter, 0, event)
					}()
				}
				wg.Wait()

				// assert
				succeeded := 0
				for _, err := range errs {
					if err == nil {
						succeeded++
						continue
					}
					assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
				}
				assert.Equal(t, 1, succeeded)
			})
		})
	}
}
