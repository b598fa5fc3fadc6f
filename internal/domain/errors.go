package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals a request rejected before any engine call.
	ErrValidation = errors.New("validation failed")
	// ErrUpstreamUnavailable signals an unreachable or timed out search engine.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a duplicate resource.
	ErrConflict = errors.New("conflict")
)

// Kind classifies a structured error.
type Kind string

// Error kinds.
const (
	KindValidation          Kind = "validation"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
)

// Error is a structured error: a kind, an optional request field and a human-readable reason.
// It matches its kind's sentinel under errors.Is and unwraps to the cause, if any.
type Error struct {
	Kind   Kind
	Field  string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := e.sentinel().Error()
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is reports whether target is the sentinel of this error's kind.
func (e *Error) Is(target error) bool { return target == e.sentinel() }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindValidation:
		return ErrValidation
	case KindUpstreamUnavailable:
		return ErrUpstreamUnavailable
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	default:
		return errors.New(string(e.Kind))
	}
}

// NewValidation creates a validation error for the given request field.
func NewValidation(field, format string, args ...any) error {
	return &Error{Kind: KindValidation, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NewNotFound creates a not-found error.
func NewNotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Reason: fmt.Sprintf(format, args...)}
}

// NewConflict creates a conflict error.
func NewConflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Reason: fmt.Sprintf(format, args...)}
}

// NewUpstreamUnavailable wraps the last engine failure of an operation.
func NewUpstreamUnavailable(op string, cause error) error {
	return &Error{Kind: KindUpstreamUnavailable, Reason: op, Err: cause}
}

// AsError extracts a structured error from the chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
