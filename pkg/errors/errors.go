// Package errors provides structured error types for the T-NURCC mesh library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, pipeline, and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes follow the validation taxonomy of the mesh operations: every
// fallible call returns a typed failure to its direct caller, with no local
// recovery and no retries. A failed construction aborts the whole build; a
// failed subdivision leaves the mesh partially mutated and unusable.
//
// Panics are reserved for violated internal invariants (an unpopulated
// connection slot, a point missing where the topology guarantees it). Those
// are bugs in the mesh subsystem and are never caught.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingFace, "edge %d borders only one face", id)
//	if errors.Is(err, errors.ErrCodeMissingFace) {
//	    // Handle a one-sided edge left after construction
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedFace, origErr, "refine face %d", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Construction errors (input-shape validation)
	ErrCodeNonRectangularFace Code = "NON_RECTANGULAR_FACE"
	ErrCodeEdgeTripleFace     Code = "EDGE_TRIPLE_FACE"
	ErrCodeMissingFace        Code = "MISSING_FACE"
	ErrCodeIncompleteFaceEdge Code = "INCOMPLETE_FACE_EDGE"

	// Edge-pairing errors
	ErrCodeBadConnectionConditions Code = "BAD_CONNECTION_CONDITIONS"

	// Subdivision and edge-split errors
	ErrCodeMalformedFace Code = "MALFORMED_FACE"

	// Conversion errors
	ErrCodeMalformedMesh Code = "MALFORMED_MESH"

	// Input validation errors (meshio / CLI boundary)
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

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
