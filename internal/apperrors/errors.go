// Package apperrors defines the failure kinds surfaced by the engagement core.
package apperrors

import (
	"errors"
	"fmt"
)

// Kinds. Conflict is an internal outcome of a lost uniqueness race and is
// resolved by the services before it reaches a caller.
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrConflict            = errors.New("conflict")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Error carries a kind, a human readable message and the underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, err error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, nil, format, args...)
}

func AlreadyExists(format string, args ...any) error {
	return newError(ErrAlreadyExists, nil, format, args...)
}

func InvalidOperation(format string, args ...any) error {
	return newError(ErrInvalidOperation, nil, format, args...)
}

func Conflict(err error, format string, args ...any) error {
	return newError(ErrConflict, err, format, args...)
}

// Upstream wraps an infrastructure failure. A nil err yields nil.
func Upstream(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return newError(ErrUpstreamUnavailable, err, format, args...)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsUpstreamUnavailable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

// Message returns the message without the wrapped cause.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
