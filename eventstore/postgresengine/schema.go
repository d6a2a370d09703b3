package postgresengine

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/bookswap-hub/bookswap/eventstore"
)

const logMsgSchemaCreated = "eventstore operation: schema created"

// schemaStatements returns the DDL for the events table and its indexes.
// The GIN index with jsonb_path_ops serves the payload @> predicates of the filters.
func (es *EventStore) schemaStatements() []sqlQueryString {
	table := pgx.Identifier{es.eventTableName}.Sanitize()
	eventTypeIndex := pgx.Identifier{es.eventTableName + "_event_type_idx"}.Sanitize()
	occurredAtIndex := pgx.Identifier{es.eventTableName + "_occurred_at_idx"}.Sanitize()
	payloadIndex := pgx.Identifier{es.eventTableName + "_payload_gin_idx"}.Sanitize()

	return []sqlQueryString{
		"CREATE TABLE IF NOT EXISTS " + table + ` (
	sequence_number BIGSERIAL PRIMARY KEY,
	event_type TEXT NOT NULL,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
	payload JSONB NOT NULL,
	metadata JSONB NOT NULL DEFAULT '{}'::jsonb
)`,
		"CREATE INDEX IF NOT EXISTS " + eventTypeIndex + " ON " + table + " (event_type)",
		"CREATE INDEX IF NOT EXISTS " + occurredAtIndex + " ON " + table + " (occurred_at)",
		"CREATE INDEX IF NOT EXISTS " + payloadIndex + " ON " + table + " USING gin (payload jsonb_path_ops)",
	}
}

// CreateSchema creates the events table and its indexes if they do not exist yet.
func (es *EventStore) CreateSchema(ctx context.Context) error {
	for _, statement := range es.schemaStatements() {
		if _, err := es.db.Exec(ctx, statement); err != nil {
			es.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, statement)

			return errors.Join(eventstore.ErrCreatingSchemaFailed, err)
		}
	}

	es.logInfo(ctx, logMsgSchemaCreated)

	return nil
}
