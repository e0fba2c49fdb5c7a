package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/example/roombooking/internal/validation"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("application: validation failed")
	// ErrConflict matches every *ConflictError.
	ErrConflict = errors.New("application: conflict")
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("application: not found")
	// ErrRejected matches every *RejectionError.
	ErrRejected = errors.New("application: rejected")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error lists the failing fields in a stable order.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	if len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + v.FieldErrors[field]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// check records fe when it is non-nil.
func (v *ValidationError) check(fe *validation.FieldError) {
	if fe != nil {
		v.add(fe.Field, fe.Message)
	}
}

// ConflictError reports a name that collides with an existing record.
type ConflictError struct {
	Entity string
	Name   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.Entity, e.Name)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NotFoundError reports a missing or inactive record.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RejectionError reports a request refused by a post-merge sanity check.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}
