package config

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the "postgres" driver for database/sql and sqlx
)

const (
	driverName               = "postgres"
	defaultMinConnections    = int32(2)
	defaultMaxConnLifetime   = time.Hour
	defaultMaxConnIdleTime   = time.Minute * 5
	defaultHealthCheckPeriod = time.Minute
	defaultConnectTimeout    = time.Second * 5
)

var ErrConnectingDatabaseFailed = errors.New("connecting to database failed")

// PGXPoolConfig parses dsn into a pool config with the pool tuning applied.
func PGXPoolConfig(dsn string, maxConnections int32) (*pgxpool.Config, error) {
	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrConnectingDatabaseFailed, err)
	}

	dbConfig.MaxConns = maxConnections
	dbConfig.MinConns = min(defaultMinConnections, maxConnections)
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

// NewPGXPool opens and pings a pgx pool.
func NewPGXPool(ctx context.Context, dsn string, maxConnections int32) (*pgxpool.Pool, error) {
	dbConfig, err := PGXPoolConfig(dsn, maxConnections)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, errors.Join(ErrConnectingDatabaseFailed, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Join(ErrConnectingDatabaseFailed, err)
	}

	return pool, nil
}

// NewSQLDB opens and pings a database/sql handle on lib/pq.
func NewSQLDB(ctx context.Context, dsn string, maxConnections int32) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Join(ErrConnectingDatabaseFailed, err)
	}

	configureSQLDB(db, maxConnections)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectingDatabaseFailed, err)
	}

	return db, nil
}

// NewSQLX opens and pings a sqlx handle on lib/pq.
func NewSQLX(ctx context.Context, dsn string, maxConnections int32) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, errors.Join(ErrConnectingDatabaseFailed, err)
	}

	configureSQLDB(db.DB, maxConnections)

	return db, nil
}

func configureSQLDB(db *sql.DB, maxConnections int32) {
	db.SetMaxOpenConns(int(maxConnections))
	db.SetMaxIdleConns(int(min(defaultMinConnections, maxConnections)))
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
}
