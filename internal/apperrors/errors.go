// Package apperrors defines the domain error taxonomy shared by the
// repository, handler and transport layers. Every error raised inside a
// request carries a Kind that the HTTP boundary translates to a status code.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error.
type Kind int

const (
	// KindInternal is the fallback for unexpected failures (500).
	KindInternal Kind = iota
	// KindValidation marks malformed or out-of-range input (400).
	KindValidation
	// KindAuthentication marks a missing, invalid or expired credential (401).
	KindAuthentication
	// KindPermissionDenied marks cross-tenant or role violations (403).
	KindPermissionDenied
	// KindNotFound marks an id that does not resolve (404).
	KindNotFound
	// KindDuplicate marks a uniqueness violation on a business key (409).
	KindDuplicate
)

// Error is a kinded domain error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotFound reports a missing record.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// PermissionDenied reports a tenant or role violation.
func PermissionDenied(message string) *Error {
	return New(KindPermissionDenied, message)
}

// Validation reports malformed input.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Authentication reports a credential failure.
func Authentication(message string) *Error {
	return New(KindAuthentication, message)
}

// Duplicate reports a business-key uniqueness violation.
func Duplicate(message string) *Error {
	return New(KindDuplicate, message)
}

// Internal reports an unexpected failure.
func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf extracts the kind of err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf extracts the user-facing message of err.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
