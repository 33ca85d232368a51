// Package errors provides structured error types for treesearch.
//
// Search outcomes (success, cutoff, failure) are ordinary values and never
// errors. This package covers everything else: malformed input, invalid
// search parameters, unreadable files and cancelled runs.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *NOT_FOUND: Resource not found
//   - CANCELED, TIMEOUT: Run aborted before an outcome was reached
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidLimit, "depth limit must be >= 0, got %d", limit)
//	if errors.Is(err, errors.ErrCodeInvalidLimit) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCanceled, ctx.Err(), "search stopped at depth %d", limit)
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidLimit   Code = "INVALID_LIMIT"
	ErrCodeInvalidProblem Code = "INVALID_PROBLEM"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidTree    Code = "INVALID_TREE"
	ErrCodeInvalidGraph   Code = "INVALID_GRAPH"
	ErrCodeInvalidGoal    Code = "INVALID_GOAL"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Aborted runs
	ErrCodeCanceled Code = "CANCELED"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// FromContext converts a context error into a coded error. Deadline
// expiry maps to ErrCodeTimeout, everything else to ErrCodeCanceled.
// Returns nil when err is nil.
func FromContext(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	code := ErrCodeCanceled
	if errors.Is(err, context.DeadlineExceeded) {
		code = ErrCodeTimeout
	}
	return Wrap(code, err, format, args...)
}
