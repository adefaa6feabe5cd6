// internal/app/system/apierrors/apierrors.go

// Package apierrors defines the tagged error variants used at the gateway
// boundary. Every error that crosses the boundary is one of these kinds;
// the dispatcher maps kinds to HTTP statuses exhaustively instead of
// matching on message text.
package apierrors

import (
	"errors"
	"net/http"
)

// Kind tags an error with its boundary classification.
type Kind int

const (
	KindValidation     Kind = iota // malformed envelope, unknown collection/operation
	KindAuthentication             // no resolvable identity
	KindAuthorization              // role/ownership/relationship check failed
	KindNotFound                   // referenced item absent
	KindConflict                   // optimistic concurrency check failed
	KindInternal                   // store failure, unexpected error
)

// Error is a classified error with a human-readable reason. Reasons are
// written for callers; they never carry stack traces or store internals.
type Error struct {
	Kind   Kind
	Reason string
	Err    error // optional cause, logged but never serialized
}

func (e *Error) Error() string { return e.Reason }

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status for the error's kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Validation returns a 400-class error.
func Validation(reason string) *Error {
	return &Error{Kind: KindValidation, Reason: reason}
}

// Authentication returns a 401-class error.
func Authentication(reason string) *Error {
	return &Error{Kind: KindAuthentication, Reason: reason}
}

// Authorization returns a 403-class error.
func Authorization(reason string) *Error {
	return &Error{Kind: KindAuthorization, Reason: reason}
}

// NotFound returns a 404-class error.
func NotFound(reason string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason}
}

// Conflict returns a 409-class error.
func Conflict(reason string) *Error {
	return &Error{Kind: KindConflict, Reason: reason}
}

// Internal wraps an unexpected error. The cause is kept for logging; the
// reason shown to callers is deliberately generic.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Reason: "internal error", Err: err}
}

// From classifies an arbitrary error. Already-classified errors pass
// through unchanged; anything else becomes an internal error.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// StatusFor returns the HTTP status From(err) would report.
func StatusFor(err error) int {
	return From(err).Status()
}
