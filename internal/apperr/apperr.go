// Package apperr defines the typed failures returned by repositories and
// services.
//
// Every failure carries a Kind. Callers match on kind with errors.Is against
// the sentinel values:
//
//	if errors.Is(err, apperr.ErrNotFound) {
//	    ...
//	}
//
// Translating a Kind into an HTTP status is the job of the http package.
// Errors that are not *Error are treated as KindInternal.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindConflict        Kind = "conflict"
	KindUnauthenticated Kind = "unauthenticated"
	KindNotFound        Kind = "not_found"
	KindInternal        Kind = "internal"
)

// Error is a classified failure with a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, cause: err}
}

// Sentinels for errors.Is.
var (
	ErrValidation      = &Error{Kind: KindValidation, Message: "validation error"}
	ErrConflict        = &Error{Kind: KindConflict, Message: "conflict"}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "not authenticated"}
	ErrNotFound        = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInternal        = &Error{Kind: KindInternal, Message: "internal error"}
)

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Internal wraps an unexpected failure. The message is only ever logged.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, cause: err}
}

// KindOf returns the Kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message of a classified error.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
