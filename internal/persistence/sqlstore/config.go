package sqlstore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/roombooking/internal/persistence/sqlstore/migration"
)

// Config holds database connection settings.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string
	// DSN is the SQLite file path or a postgres connection string.
	DSN string

	// BusyTimeout sets how long SQLite waits for locks.
	BusyTimeout time.Duration
	// JournalMode sets the SQLite journal mode (WAL, DELETE, ...).
	JournalMode string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	Retry RetryConfig
}

// DefaultConfig returns a configuration for a local SQLite file.
func DefaultConfig() Config {
	return Config{
		Driver:          string(migration.DialectSQLite),
		DSN:             "roombooking.db",
		BusyTimeout:     5 * time.Second,
		JournalMode:     "WAL",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		Retry:           DefaultRetryConfig(),
	}
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	var problems []string
	if _, err := c.dialect(); err != nil {
		problems = append(problems, err.Error())
	}
	if strings.TrimSpace(c.DSN) == "" {
		problems = append(problems, "DSN cannot be empty")
	}
	if c.BusyTimeout < 0 {
		problems = append(problems, "busy timeout cannot be negative")
	}
	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 {
		problems = append(problems, "connection limits cannot be negative")
	}
	if c.MaxOpenConns > 0 && c.MaxIdleConns > c.MaxOpenConns {
		problems = append(problems, "max idle connections cannot exceed max open connections")
	}
	if len(problems) > 0 {
		return errors.New("invalid database configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func (c Config) dialect() (migration.Dialect, error) {
	switch migration.Dialect(c.Driver) {
	case migration.DialectSQLite:
		return migration.DialectSQLite, nil
	case migration.DialectPostgres:
		return migration.DialectPostgres, nil
	}
	return "", fmt.Errorf("unsupported driver %q", c.Driver)
}

func (c Config) inMemory() bool {
	return strings.Contains(c.DSN, ":memory:") || strings.Contains(c.DSN, "mode=memory")
}

// dataSourceName appends per-connection pragmas for SQLite.
func (c Config) dataSourceName() string {
	if migration.Dialect(c.Driver) != migration.DialectSQLite {
		return c.DSN
	}
	pragmas := []string{"_pragma=foreign_keys(1)"}
	if c.BusyTimeout > 0 {
		pragmas = append(pragmas, fmt.Sprintf("_pragma=busy_timeout(%d)", c.BusyTimeout.Milliseconds()))
	}
	if c.JournalMode != "" && !c.inMemory() {
		pragmas = append(pragmas, fmt.Sprintf("_pragma=journal_mode(%s)", strings.ToUpper(c.JournalMode)))
	}

	dsn := c.DSN
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}
