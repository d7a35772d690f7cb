package gameerr

import (
	"errors"
	"fmt"
)

// Error is the engine error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable reason code
	Message  string            // Internal message (for logs)
	Metadata map[string]string // Additional context
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Kind returns the failure class of the error.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// New creates a simple engine error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates an engine error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// WithMetadata creates an engine error carrying metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// Wrap creates an engine error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// UnknownCard returns the error reported when a card identifier is not in the catalog.
func UnknownCard(cardID string) *Error {
	return WithMetadata(CodeUnknownCard, fmt.Sprintf("card %q not found in catalog", cardID),
		map[string]string{"card_id": cardID})
}

// Illegal returns an IllegalAction-class error with a formatted message.
func Illegal(code Code, format string, args ...any) *Error {
	return Newf(code, format, args...)
}

// Invariant returns an InvariantViolation error.
func Invariant(format string, args ...any) *Error {
	return Newf(CodeInvariantViolation, format, args...)
}

// CodeOf extracts the reason code from err, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// KindOf extracts the failure class from err.
func KindOf(err error) Kind {
	return CodeOf(err).Kind()
}

// IsIllegalAction reports whether err is a recoverable rejection.
func IsIllegalAction(err error) bool {
	return err != nil && KindOf(err) == KindIllegalAction
}

// IsUnknownCard reports whether err is a catalog/setup lookup failure.
func IsUnknownCard(err error) bool {
	return err != nil && KindOf(err) == KindUnknownCard
}

// IsInvariantViolation reports whether err is an internal engine fault.
func IsInvariantViolation(err error) bool {
	return err != nil && KindOf(err) == KindInvariantViolation
}
