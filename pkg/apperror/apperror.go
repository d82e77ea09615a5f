// Package apperror defines the error taxonomy shared by services and the HTTP layer.
// Services return *Error values; the error middleware maps Kind to a status code.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindUnauthenticated
	KindConflict
)

// Error is a typed application error carrying a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to an HTTP status code. Conflicts are reported as 400.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error      { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error        { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *Error       { return &Error{Kind: KindForbidden, Message: msg} }
func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Message: msg} }
func Conflict(msg string) *Error        { return &Error{Kind: KindConflict, Message: msg} }

// Internal wraps an unexpected failure; the cause is kept for logging only.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Error interno del servidor", Err: err}
}

// WithDetails attaches structured details (e.g. field errors) to a copy of e.
func (e *Error) WithDetails(d any) *Error {
	cp := *e
	cp.Details = d
	return &cp
}

// As extracts an *Error from err. Untyped errors are wrapped as internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}
