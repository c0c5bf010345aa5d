package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by services so handlers can pick an HTTP status
// without inspecting message text.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid input")
)

// statusError carries a user-facing message while matching one of the
// sentinels through errors.Is.
type statusError struct {
	kind error
	msg  string
}

func (e *statusError) Error() string { return e.msg }

func (e *statusError) Unwrap() error { return e.kind }

func NotFound(msg string) error { return &statusError{kind: ErrNotFound, msg: msg} }

func Conflict(msg string) error { return &statusError{kind: ErrConflict, msg: msg} }

func Conflictf(format string, args ...any) error {
	return &statusError{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func Invalid(msg string) error { return &statusError{kind: ErrInvalid, msg: msg} }

func Invalidf(format string, args ...any) error {
	return &statusError{kind: ErrInvalid, msg: fmt.Sprintf(format, args...)}
}
