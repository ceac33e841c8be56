// Package objerrors provides structured error handling for the pooling
// runtime with rich context, stack traces, and error categorization.
//
// # Overview
//
// The objerrors package extends Go's standard error handling with:
//   - Error categorization through ErrorType
//   - Structured context with key-value details
//   - Automatic stack trace capture
//   - Error wrapping with cause preservation
//
// # Basic Usage
//
//	// Create a new error
//	err := objerrors.New(objerrors.ErrorTypeDuplicate, "object is already a list member")
//
//	// Add context
//	err = err.WithDetail("object_id", id).
//	         WithDetail("list", "free")
//
//	// Wrap existing errors
//	if err := pool.Expand(n); err != nil {
//	    return objerrors.Wrap(err, objerrors.ErrorTypeInternal, "expansion failed").
//	        WithDetail("type", pool.Name())
//	}
//
// All pool errors are programmer errors and unrecoverable at the point of
// call; there is no retry machinery anywhere in this module. The taxonomy
// exists so callers can locate the offending call site, not to drive
// recovery strategies.
package objerrors

import (
	"errors"
	"runtime"

	stringpool "github.com/martinwells/objects/pkg/strings"
)

// ErrorType represents the category of error, used for error handling and
// test assertions.
type ErrorType string

const (
	// ErrorTypeInternal represents internal runtime errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeDuplicate represents a keyed-list add of an object that is
	// already a live member of that list
	ErrorTypeDuplicate ErrorType = "duplicate_membership"
	// ErrorTypeUnknownPool represents a release of an object whose type has
	// no registered pool
	ErrorTypeUnknownPool ErrorType = "unknown_pool"
	// ErrorTypeInvariant represents an impossible internal list state,
	// treated as a fatal assertion
	ErrorTypeInvariant ErrorType = "list_invariant"
)

// Error represents a structured error with context, providing rich debugging
// information for locating the offending call site.
//
// Fields:
//   - Type: Categorizes the error
//   - Message: Human-readable error description
//   - Cause: The underlying error that caused this error
//   - Details: Key-value pairs providing additional context
//   - Stack: Call stack at the point of error creation
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack, capturing
// the function name, file path, and line number for debugging.
type StackFrame struct {
	Function string // Fully qualified function name
	File     string // Source file path
	Line     int    // Line number in source file
}

// Error implements the error interface, returning a formatted error message
// that includes the error type, message, and cause (if present).
func (e *Error) Error() string {
	if e.Cause != nil {
		return stringpool.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return stringpool.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error, enabling compatibility with errors.Is
// and errors.As for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error, providing additional
// context for debugging. This method can be chained for adding multiple
// details.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message, automatically
// capturing the call stack at the point of creation.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context, preserving the
// original error as the cause. If the error is already a structured Error,
// its stack trace is preserved. Returns nil if the input error is nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type, useful for test
// assertions and conditional handling of programmer errors.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// captureStack captures the current call stack up to maxFrames deep,
// skipping the specified number of frames from the top.
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
