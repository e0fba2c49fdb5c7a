package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/example/roombooking/internal/persistence"
)

// ErrorMapper maps driver errors to persistence sentinels.
type ErrorMapper struct{}

// NewErrorMapper creates a new error mapper.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError wraps err with the matching persistence sentinel. The driver
// error stays in the chain.
func (em *ErrorMapper) MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", persistence.ErrNotFound, err)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		if sentinel := sqliteSentinel(sqliteErr.Code()); sentinel != nil {
			return fmt.Errorf("%w: %w", sentinel, err)
		}
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if sentinel := postgresSentinel(pqErr.Code); sentinel != nil {
			return fmt.Errorf("%w: %w", sentinel, err)
		}
	}
	return err
}

func sqliteSentinel(code int) error {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return persistence.ErrDuplicate
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return persistence.ErrForeignKey
	}
	switch code & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return persistence.ErrConstraint
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return persistence.ErrBusy
	}
	return nil
}

func postgresSentinel(code pq.ErrorCode) error {
	switch code {
	case "23505":
		return persistence.ErrDuplicate
	case "23503":
		return persistence.ErrForeignKey
	case "23502", "23514", "22P02":
		return persistence.ErrConstraint
	case "40001", "40P01", "55P03":
		return persistence.ErrBusy
	}
	return nil
}
