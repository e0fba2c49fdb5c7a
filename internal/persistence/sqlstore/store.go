// Package sqlstore implements the persistence repositories on SQLite or
// PostgreSQL. Queries are built with goqu and executed through sqlx.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/example/roombooking/internal/persistence"
	"github.com/example/roombooking/internal/persistence/sqlstore/migration"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Store owns the connection pool and hands out transaction-scoped repositories.
type Store struct {
	db      *sqlx.DB
	dialect migration.Dialect
	builder goqu.DialectWrapper
	retry   *RetryHelper
	mapper  *ErrorMapper
	logger  *slog.Logger
}

var _ persistence.UnitOfWork = (*Store)(nil)

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dialect, _ := cfg.dialect()
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sqlx.Open(cfg.Driver, cfg.dataSourceName())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	switch {
	case dialect == migration.DialectSQLite && cfg.inMemory():
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	case cfg.MaxOpenConns > 0:
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	builderName := "postgres"
	if dialect == migration.DialectSQLite {
		builderName = "sqlite3"
	}

	return &Store{
		db:      db,
		dialect: dialect,
		builder: goqu.Dialect(builderName),
		retry:   NewRetryHelper(cfg.Retry),
		mapper:  NewErrorMapper(),
		logger:  logger.With("component", "sqlstore", "driver", cfg.Driver),
	}, nil
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Dialect reports which SQL dialect the store speaks.
func (s *Store) Dialect() migration.Dialect {
	return s.dialect
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping tests the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrator returns a migration manager bound to this store.
func (s *Store) Migrator(logger *slog.Logger) (*migration.Manager, error) {
	if logger == nil {
		logger = s.logger
	}
	return migration.NewManager(migration.NewSQLExecutor(s.db, s.dialect), migration.Revisions(), logger)
}

// WithinTx runs fn in a read-write transaction. The whole transaction is
// retried when the database reports lock contention.
func (s *Store) WithinTx(ctx context.Context, fn func(persistence.Repositories) error) error {
	return s.retry.WithRetry(ctx, func() error {
		return s.runTx(ctx, nil, fn)
	})
}

// WithinReadTx runs fn in a transaction intended for reads only.
func (s *Store) WithinReadTx(ctx context.Context, fn func(persistence.Repositories) error) error {
	var opts *sql.TxOptions
	if s.dialect == migration.DialectPostgres {
		opts = &sql.TxOptions{ReadOnly: true}
	}
	return s.retry.WithRetry(ctx, func() error {
		return s.runTx(ctx, opts, fn)
	})
}

func (s *Store) runTx(ctx context.Context, opts *sql.TxOptions, fn func(persistence.Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", s.mapper.MapError(err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(newRepositories(s, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.WarnContext(ctx, "rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", s.mapper.MapError(err))
	}
	return nil
}
