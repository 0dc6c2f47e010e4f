package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrDependencyConflict = errors.New("dependency conflict")
)

// ValidationError names the first field that failed its check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports a delete blocked by rows that still reference the
// target. Kind is the entity being deleted, Dependents what still points at it.
type ConflictError struct {
	Kind       string
	Dependents string
	Err        error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("make sure you removed all %s using this %s first", e.Dependents, e.Kind)
}

func (e *ConflictError) Is(target error) bool { return target == ErrDependencyConflict }

func (e *ConflictError) Unwrap() error { return e.Err }
