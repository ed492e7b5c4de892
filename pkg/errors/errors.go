// Package errors provides structured error types for stackmover.
//
// Every failure the engine can raise is fatal for the run that raised it, so
// errors carry a machine-readable [Code] rather than a retry hint. The CLI and
// the HTTP API both switch on codes to decide how to present a failure.
//
// # Error Codes
//
// Engine codes mirror the failure modes of a rearrangement run:
//   - MALFORMED_INPUT: missing separator, bad integers, wrong token counts, truncated drawings
//   - OUT_OF_BOUNDS: a procedure references a stack outside [1, N]
//   - INSUFFICIENT_STACK_SIZE: a procedure moves more items than its source holds
//   - EMPTY_STACK: a snapshot found a stack with nothing on it
//
// The remaining codes cover the surfaces around the engine (flags, files,
// requests).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedInput, "procedure %d: expected 3 integers", n)
//	if errors.Is(err, errors.ErrCodeMalformedInput) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedInput, strconvErr, "parse count %q", field)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Engine errors
	ErrCodeMalformedInput        Code = "MALFORMED_INPUT"
	ErrCodeOutOfBounds           Code = "OUT_OF_BOUNDS"
	ErrCodeInsufficientStackSize Code = "INSUFFICIENT_STACK_SIZE"
	ErrCodeEmptyStack            Code = "EMPTY_STACK"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidMode  Code = "INVALID_MODE"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsEngineError reports whether err carries one of the four codes a
// rearrangement run can fail with.
func IsEngineError(err error) bool {
	switch GetCode(err) {
	case ErrCodeMalformedInput, ErrCodeOutOfBounds, ErrCodeInsufficientStackSize, ErrCodeEmptyStack:
		return true
	}
	return false
}
