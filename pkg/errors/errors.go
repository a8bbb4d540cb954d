// Package errors provides structured error types for mzsvg.
//
// Every failure surfaced by the rendering core, the pipeline and the CLI is
// an *Error carrying a machine-readable [Code]. Callers branch on the code
// with [Is] and show [UserMessage] to people.
//
// # Error Codes
//
// Codes follow a loose naming convention:
//   - INVALID_*: input validation failures
//   - *_NOT_FOUND / FILE_*: missing resources
//   - geometry codes (DEGENERATE_SCALE, MALFORMED_RANGE) raised by the
//     coordinate engine
//   - chart state codes (AXIS_NOT_INITIALIZED, CHART_FINISHED)
//   - RASTERIZE_FAILED for PNG/PDF conversion
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDegenerateScale, "domain %v has zero size", r)
//	if errors.Is(err, errors.ErrCodeDegenerateScale) {
//	    // Handle degenerate axis
//	}
//
//	err := errors.Wrap(errors.ErrCodeRasterize, origErr, "png conversion")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidRange  Code = "INVALID_RANGE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Geometry errors
	ErrCodeDegenerateScale Code = "DEGENERATE_SCALE"
	ErrCodeMalformedRange  Code = "MALFORMED_RANGE"

	// Chart state errors
	ErrCodeAxisNotInitialized Code = "AXIS_NOT_INITIALIZED"
	ErrCodeChartFinished      Code = "CHART_FINISHED"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// External collaborators
	ErrCodeRasterize Code = "RASTERIZE_FAILED"
	ErrCodeCache     Code = "CACHE_ERROR"

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
// The code is printed once for a run of wrapped errors sharing it.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.chain())
}

func (e *Error) chain() string {
	if e.Cause == nil {
		return e.Message
	}
	if inner, ok := e.Cause.(*Error); ok && inner.Code == e.Code {
		return e.Message + ": " + inner.chain()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
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
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		if e.Cause == nil {
			return false
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
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
