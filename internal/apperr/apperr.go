package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers and the transport layer.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindUnauthorized
	KindNotFound
	KindConflict
	KindStorageUnavailable
	KindStorageCorrupt
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStorageUnavailable:
		return "storage_unavailable"
	case KindStorageCorrupt:
		return "storage_corrupt"
	default:
		return "unknown"
	}
}

// Error carries a kind plus a human-readable message. The message is surfaced
// to the caller verbatim; it never contains secrets.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a leaf error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds a leaf error with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a kind and message, keeping the chain intact.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from anywhere in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the outermost message, falling back to Error().
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}

func IsInvalidInput(err error) bool       { return KindOf(err) == KindInvalidInput }
func IsUnauthorized(err error) bool       { return KindOf(err) == KindUnauthorized }
func IsNotFound(err error) bool           { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool           { return KindOf(err) == KindConflict }
func IsStorageUnavailable(err error) bool { return KindOf(err) == KindStorageUnavailable }
func IsStorageCorrupt(err error) bool     { return KindOf(err) == KindStorageCorrupt }
