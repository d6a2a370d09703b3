package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrSerializationFailure means PostgreSQL aborted a SERIALIZABLE transaction
// because a concurrent transaction touched the same rows or predicates.
var ErrSerializationFailure = errors.New("serialization failure")

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlStateSerializationFailure || string(pqErr.Code) == sqlStateDeadlockDetected
	}

	return false
}

func classifyTxError(err error) error {
	if isSerializationFailure(err) {
		return errors.Join(ErrSerializationFailure, err)
	}

	return err
}

func execInStdTx(ctx context.Context, tx *sql.Tx, query string) (DBResult, error) {
	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return nil, classifyTxError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, classifyTxError(err)
	}

	return &fixedResult{rowsAffected: rowsAffected}, nil
}

type fixedResult struct {
	rowsAffected int64
}

func (f *fixedResult) RowsAffected() (int64, error) {
	return f.rowsAffected, nil
}
