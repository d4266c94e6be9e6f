// Package apperr defines the error taxonomy shared by all services. Handlers
// translate kinds into HTTP statuses at the route boundary; anything that is
// not an *Error is treated as internal and its message never reaches clients.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a classified application error.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Validation reports missing or malformed input.
func Validation(format string, args ...any) *Error { return newf(KindValidation, format, args...) }

// Auth reports bad credentials or a missing session.
func Auth(format string, args ...any) *Error { return newf(KindAuth, format, args...) }

// Forbidden reports a role that is not allowed to perform the operation.
func Forbidden(format string, args ...any) *Error { return newf(KindForbidden, format, args...) }

// NotFound reports an entity that does not exist.
func NotFound(format string, args ...any) *Error { return newf(KindNotFound, format, args...) }

// Conflict reports a uniqueness violation.
func Conflict(format string, args ...any) *Error { return newf(KindConflict, format, args...) }

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
