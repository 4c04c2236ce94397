// internal/apperrors/errors.go
// Typed error taxonomy shared across services, repositories and the API layer.

package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch on category instead of
// on a specific message or sentinel.
type Kind string

const (
	InvalidInput        Kind = "invalid_input"
	NotFound            Kind = "not_found"
	WrongStatus         Kind = "wrong_status"
	AlreadyRecorded     Kind = "already_recorded"
	InvalidRoster       Kind = "invalid_roster"
	InvalidScore        Kind = "invalid_score"
	AuthorizationFailed Kind = "authorization_failed"
	Conflict            Kind = "conflict"
	TransientStore      Kind = "transient_store"
	FatalStore          Kind = "fatal_store"
	DeadlineExceeded    Kind = "deadline_exceeded"
	Cancelled           Kind = "cancelled"
)

// Error is the concrete error type returned by this module's packages.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, apperrors.New(SomeKind, "")) match on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an *Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an *Error carrying an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Newf formats Message with fmt.Sprintf.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind of err, defaulting to FatalStore for errors
// that did not originate in this module (raw driver/network errors that
// escaped a repository without being classified).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return FatalStore
}

// Is reports whether err (or any error it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Sentinel instances for use with errors.Is when no dynamic message is needed.
var (
	ErrNotFound            = New(NotFound, "resource not found")
	ErrInvalidInput        = New(InvalidInput, "invalid input")
	ErrWrongStatus         = New(WrongStatus, "tournament is not in the required status")
	ErrAlreadyRecorded     = New(AlreadyRecorded, "operation already applied")
	ErrInvalidRoster       = New(InvalidRoster, "invalid player roster")
	ErrInvalidScore        = New(InvalidScore, "invalid match score")
	ErrAuthorizationFailed = New(AuthorizationFailed, "not authorized to perform this action")
	ErrConflict            = New(Conflict, "conflicting concurrent modification")
	ErrTransientStore      = New(TransientStore, "transient storage failure")
	ErrFatalStore          = New(FatalStore, "storage failure")
	ErrDeadlineExceeded    = New(DeadlineExceeded, "deadline exceeded")
	ErrCancelled           = New(Cancelled, "operation cancelled")
)
