package graph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/roombooking/internal/application"
	"github.com/example/roombooking/internal/auth"
)

// Error codes published in the extensions of a GraphQL error.
const (
	CodeValidation      = "VALIDATION"
	CodeConflict        = "CONFLICT"
	CodeNotFound        = "NOT_FOUND"
	CodeRejected        = "REJECTED"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeInternal        = "INTERNAL"
)

const internalMessage = "internal server error"

// Error is a resolver error carrying a stable code for clients.
type Error struct {
	Message string
	Code    string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Extensions exposes the code, and field messages for validation failures.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if len(e.Fields) > 0 {
		fields := make(map[string]interface{}, len(e.Fields))
		for k, v := range e.Fields {
			fields[k] = v
		}
		ext["fields"] = fields
	}
	return ext
}

// toError translates service and auth errors into client facing errors.
// Unexpected errors are logged and replaced with a generic message.
func toError(ctx context.Context, logger *slog.Logger, operation string, err error) *Error {
	var (
		validationErr *application.ValidationError
		conflictErr   *application.ConflictError
		notFoundErr   *application.NotFoundError
		rejectionErr  *application.RejectionError
	)
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return &Error{Message: "authentication required", Code: CodeUnauthenticated, cause: err}
	case errors.Is(err, auth.ErrForbidden):
		return &Error{Message: "You are not authorized to perform this action", Code: CodeForbidden, cause: err}
	case errors.As(err, &validationErr):
		return &Error{Message: validationErr.Error(), Code: CodeValidation, Fields: validationErr.FieldErrors, cause: err}
	case errors.As(err, &conflictErr):
		return &Error{Message: conflictErr.Error(), Code: CodeConflict, cause: err}
	case errors.As(err, &notFoundErr):
		return &Error{Message: notFoundErr.Error(), Code: CodeNotFound, cause: err}
	case errors.As(err, &rejectionErr):
		return &Error{Message: rejectionErr.Error(), Code: CodeRejected, cause: err}
	default:
		logger.ErrorContext(ctx, "unexpected resolver error", "operation", operation, "error", err)
		return &Error{Message: internalMessage, Code: CodeInternal, cause: err}
	}
}
