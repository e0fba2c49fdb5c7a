package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a uniqueness constraint rejects a write.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrForeignKey is returned when a write references a missing parent row.
	ErrForeignKey = errors.New("persistence: foreign key violation")
	// ErrConstraint is returned for CHECK and NOT NULL violations.
	ErrConstraint = errors.New("persistence: constraint violation")
	// ErrBusy is returned when the database is locked by another writer.
	ErrBusy = errors.New("persistence: database busy")
)
