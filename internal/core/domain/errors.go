package domain

import (
	"errors"
	"strings"
)

// Kind classifies lifecycle failures so that adapters can map them to
// transport codes without inspecting messages.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindInvalidTransition Kind = "invalid_transition"
	KindConflict          Kind = "conflict"
	KindInvalidInput      Kind = "invalid_input"
	KindInternal          Kind = "internal"
)

// Error is a classified lifecycle error. Violations lists every failed
// precondition when more than one check applies.
type Error struct {
	Kind       Kind
	Message    string
	Violations []string
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Violations, "; ")
}

// Is matches errors of the same kind, so errors.Is(err, ErrConflict) works
// for any conflict regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Sentinels usable with errors.Is.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
)

func NotFound(msg string) error  { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Message: msg} }
func Conflict(msg string) error  { return &Error{Kind: KindConflict, Message: msg} }

// InvalidTransition reports a rejected state change. Violations are
// optional and attached verbatim.
func InvalidTransition(msg string, violations ...string) error {
	return &Error{Kind: KindInvalidTransition, Message: msg, Violations: violations}
}

// InvalidInput reports caller input that fails validation.
func InvalidInput(msg string, violations ...string) error {
	return &Error{Kind: KindInvalidInput, Message: msg, Violations: violations}
}

// KindOf returns the kind of a classified error, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ViolationsOf returns the violation list of a classified error.
func ViolationsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Violations
	}
	return nil
}
