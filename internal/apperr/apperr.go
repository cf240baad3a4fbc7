// Package apperr defines the error taxonomy shared by both services. Every
// error carries a Kind that maps to an HTTP status and a user-facing message
// in the service language; the wrapped cause is for logs only.
package apperr

import (
	stderrors "errors"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindConflict
	KindNotFound
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// HTTPStatus returns the status code written for errors of this kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is an application error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.cause.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Cause returns the wrapped internal error, if any.
func (e *Error) Cause() error { return e.cause }

// New returns an error of the given kind with no internal cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap annotates cause with a stack trace and attaches it to a new error of the given kind.
func Wrap(cause error, kind Kind, message string) *Error {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &Error{Kind: kind, Message: message, cause: cause}
}

func Validation(message string) *Error { return New(KindValidation, message) }

func Conflict(message string) *Error { return New(KindConflict, message) }

func NotFound(message string) *Error { return New(KindNotFound, message) }

// Auth is an authentication failure. The reason is kept for logging and is
// never part of the client message.
func Auth(message string, reason error) *Error { return Wrap(reason, KindAuth, message) }

// Forbidden is an authentication failure for a credential that was presented
// but did not verify.
func Forbidden(message string, reason error) *Error { return Wrap(reason, KindForbidden, message) }

func Upstream(message string, cause error) *Error { return Wrap(cause, KindUpstream, message) }

func Internal(message string, cause error) *Error { return Wrap(cause, KindInternal, message) }

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is an application error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
