// Package apperr defines the error taxonomy shared by every feature.
// Each error carries a Kind which the HTTP layer maps to a status code.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuth
	KindNotFound
)

// String returns a short name for the kind, used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a classified application error.
// Msg is safe to show to API callers; Err is the wrapped cause, if any.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg != "" {
		return e.Msg + ": " + e.Err.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports malformed or missing input.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

// Conflict reports a duplicate of a unique key.
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Msg: msg} }

// Auth reports bad credentials or a missing, invalid or expired token.
func Auth(msg string) *Error { return &Error{Kind: KindAuth, Msg: msg} }

// NotFound reports a resource that is absent or not owned by the caller.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

// Internal wraps an unexpected failure (storage, hashing, signing).
func Internal(err error) *Error { return &Error{Kind: KindInternal, Err: err} }

// KindOf returns the kind of the first *Error in err's chain.
// Unclassified errors are KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// PublicMessage returns the caller-facing message for err.
// Internal errors never expose their cause.
func PublicMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindInternal && ae.Msg != "" {
		return ae.Msg
	}
	return "internal server error"
}

// HTTPStatus maps err to its HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
