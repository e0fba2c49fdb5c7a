package application

import (
	"errors"
	"strings"

	"github.com/example/roombooking/internal/persistence"
	"github.com/example/roombooking/internal/validation"
)

func normalizeOptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// archiveState resolves the state a soft delete moves a record to.
func archiveState(override *string) (persistence.State, *ValidationError) {
	if override == nil {
		return persistence.StateArchived, nil
	}
	state, err := persistence.ParseState(strings.TrimSpace(*override))
	if err != nil {
		vErr := &ValidationError{}
		vErr.add("state", validation.MsgInvalidState)
		return "", vErr
	}
	if state == persistence.StateActive {
		vErr := &ValidationError{}
		vErr.add("state", "state must be archived or deleted")
		return "", vErr
	}
	return state, nil
}

// mapRepoError converts persistence failures into application errors.
func mapRepoError(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return &NotFoundError{Entity: entity, ID: id}
	case errors.Is(err, persistence.ErrForeignKey):
		vErr := &ValidationError{}
		vErr.add(strings.ToLower(entity), "references a missing record")
		return vErr
	case errors.Is(err, persistence.ErrConstraint):
		vErr := &ValidationError{}
		vErr.add(strings.ToLower(entity), "violates a data constraint")
		return vErr
	}
	return err
}
