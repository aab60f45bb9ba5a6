package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error for transport-layer mapping.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindForbidden       ErrorKind = "forbidden"
	KindInvalidState    ErrorKind = "invalid_state"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindUnavailable     ErrorKind = "unavailable"
)

// Error is a typed domain error. Every failure the engines can surface is one
// of these; infrastructure errors are wrapped before crossing the boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

// Error returns the error message.
func (e *Error) Error() string { return e.Message }

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// NewValidationError creates a validation error for malformed input.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewNotFoundError creates a not-found error for a missing entity.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewConflictError creates a conflict error (overlapping booking or a lost
// concurrent-update race).
func NewConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NewForbiddenError creates an authorization error.
func NewForbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NewInvalidStateError creates an error for a status transition outside the
// lifecycle table.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewUnauthenticatedError creates an error for an unresolvable credential.
func NewUnauthenticatedError(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// NewUnavailableError creates an error for an unreachable dependency.
func NewUnavailableError(msg string, cause error) *Error {
	return &Error{Kind: KindUnavailable, Message: msg, cause: cause}
}

// KindOf returns the domain error kind of err, or "" if err is not a domain
// error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
