// Package apierrors defines the error kinds the recruitment services return.
// Each error carries the HTTP status it maps to, so handlers never have to
// guess.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindState        Kind = "state"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
)

var statusByKind = map[Kind]int{
	KindValidation:   http.StatusBadRequest,
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusConflict,
	KindState:        http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
}

// Overlap describes another active form whose window collides with a new one.
type Overlap struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type DefinedError struct {
	Kind       Kind      `json:"-"`
	StatusCode int       `json:"-"`
	Err        string    `json:"error"`
	Overlaps   []Overlap `json:"overlaps,omitempty"`

	cause error
}

func (e *DefinedError) Error() string {
	return e.Err
}

// Unwrap exposes the sentinel a DefinedError was built from.
func (e *DefinedError) Unwrap() error {
	return e.cause
}

func newDefined(kind Kind, cause error, msg string) *DefinedError {
	return &DefinedError{Kind: kind, StatusCode: statusByKind[kind], Err: msg, cause: cause}
}

func Validation(format string, args ...any) *DefinedError {
	return newDefined(KindValidation, nil, fmt.Sprintf(format, args...))
}

func Unauthorized(format string, args ...any) *DefinedError {
	return newDefined(KindUnauthorized, nil, fmt.Sprintf(format, args...))
}

func Forbidden(format string, args ...any) *DefinedError {
	return newDefined(KindForbidden, nil, fmt.Sprintf(format, args...))
}

func Conflict(msg string, overlaps []Overlap) *DefinedError {
	e := newDefined(KindConflict, nil, msg)
	e.Overlaps = overlaps
	return e
}

// WithCause attaches a sentinel so errors.Is can find it.
func (e *DefinedError) WithCause(cause error) *DefinedError {
	e.cause = cause
	return e
}

// Wrap tags a sentinel with a kind; errors.Is(result, sentinel) stays true.
func Wrap(kind Kind, sentinel error) *DefinedError {
	return newDefined(kind, sentinel, sentinel.Error())
}

// Wrapf is Wrap with a custom message.
func Wrapf(kind Kind, sentinel error, format string, args ...any) *DefinedError {
	return newDefined(kind, sentinel, fmt.Sprintf(format, args...))
}

// As extracts a DefinedError from err, if there is one.
func As(err error) (*DefinedError, bool) {
	var de *DefinedError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err is a DefinedError of the given kind.
func IsKind(err error, kind Kind) bool {
	de, ok := As(err)
	return ok && de.Kind == kind
}
