package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrMigrationFailed indicates that a revision script failed.
	ErrMigrationFailed = errors.New("migration execution failed")
	// ErrUnknownRevision indicates a target or recorded revision outside the chain.
	ErrUnknownRevision = errors.New("unknown revision")
	// ErrDuplicateRevision indicates two migrations share an identifier.
	ErrDuplicateRevision = errors.New("duplicate revision")
	// ErrBrokenChain indicates a down revision that points nowhere, a fork, or a cycle.
	ErrBrokenChain = errors.New("broken revision chain")
	// ErrWrongDirection indicates a target behind the current revision on upgrade or ahead on downgrade.
	ErrWrongDirection = errors.New("target is in the wrong direction")
	// ErrUnsupportedDialect indicates a revision without a script for the active dialect.
	ErrUnsupportedDialect = errors.New("unsupported dialect")
	// ErrVersionTableCorrupt indicates more than one row in schema_version.
	ErrVersionTableCorrupt = errors.New("schema_version table is corrupted")
)

// MigrationError wraps migration failures with the revision involved.
type MigrationError struct {
	Revision  string
	Operation string
	Err       error
}

func (e *MigrationError) Error() string {
	if e.Revision != "" {
		return fmt.Sprintf("migration %s: %s: %v", e.Revision, e.Operation, e.Err)
	}
	return fmt.Sprintf("migration: %s: %v", e.Operation, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// NewMigrationError creates a new MigrationError with context.
func NewMigrationError(revision, operation string, err error) *MigrationError {
	return &MigrationError{Revision: revision, Operation: operation, Err: err}
}

// DatabaseError wraps a failing statement.
type DatabaseError struct {
	Revision  string
	Query     string
	Operation string
	Err       error
}

func (e *DatabaseError) Error() string {
	if e.Revision != "" {
		return fmt.Sprintf("database error in migration %s during %s: %v", e.Revision, e.Operation, e.Err)
	}
	return fmt.Sprintf("database error during %s: %v", e.Operation, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(revision, query, operation string, err error) *DatabaseError {
	return &DatabaseError{Revision: revision, Query: query, Operation: operation, Err: err}
}
