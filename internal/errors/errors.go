// Package errors provides structured error types for taskweave with
// category, code, and exit-status information.
//
// Every fatal condition in the tool maps to one of a small set of error
// codes. Errors carry the process exit status to use when they reach
// main, which is how formatter failures propagate the external tool's
// own exit code unchanged.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeTool       ErrorType = "tool"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes used across the tool.
const (
	CodeStandardTooLow = "TW_STD_TOO_LOW"
	CodeIOFailure      = "TW_IO_FAILURE"
	CodeToolNotFound   = "TW_TOOL_NOT_FOUND"
	CodeToolFailed     = "TW_TOOL_FAILED"
	CodeInvalidConfig  = "TW_INVALID_CONFIG"
)

// TaskweaveError is a structured error type with context.
type TaskweaveError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Path    string
	// Exit is the process exit status this error should produce.
	// Zero means "unset"; ExitCode() falls back to 1.
	Exit int
}

// Error implements the error interface.
func (e *TaskweaveError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *TaskweaveError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison by type and code.
func (e *TaskweaveError) Is(target error) bool {
	var t *TaskweaveError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithPath adds file location information.
func (e *TaskweaveError) WithPath(path string) *TaskweaveError {
	e.Path = path

	return e
}

// ExitCode returns the process exit status for this error.
func (e *TaskweaveError) ExitCode() int {
	if e.Exit > 0 {
		return e.Exit
	}

	return 1
}

// NewStandardTooLowError reports that the configured compiler standard is
// below the required minimum. Current may be zero when the profile does not
// configure a standard at all.
func NewStandardTooLowError(current, required int) *TaskweaveError {
	msg := fmt.Sprintf("compiler standard c++%d is below the required minimum c++%d", current, required)
	if current == 0 {
		msg = fmt.Sprintf("compiler standard is not configured; c++%d or newer is required", required)
	}

	return &TaskweaveError{
		Type:    ErrorTypeValidation,
		Code:    CodeStandardTooLow,
		Message: msg,
	}
}

// NewIOError wraps a filesystem failure during artifact generation.
func NewIOError(op string, cause error) *TaskweaveError {
	return &TaskweaveError{
		Type:    ErrorTypeIO,
		Code:    CodeIOFailure,
		Message: op + " failed",
		Cause:   cause,
	}
}

// NewToolNotFoundError reports that an external executable is absent from
// the search path. Always exits 1.
func NewToolNotFoundError(tool string) *TaskweaveError {
	return &TaskweaveError{
		Type:    ErrorTypeTool,
		Code:    CodeToolNotFound,
		Message: fmt.Sprintf("%s not found in PATH", tool),
		Exit:    1,
	}
}

// NewToolExecutionError reports that an external tool ran and failed.
// The tool's own exit status is propagated unchanged.
func NewToolExecutionError(tool string, exitCode int, cause error) *TaskweaveError {
	return &TaskweaveError{
		Type:    ErrorTypeTool,
		Code:    CodeToolFailed,
		Message: fmt.Sprintf("%s failed with code %d", tool, exitCode),
		Cause:   cause,
		Exit:    exitCode,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string) *TaskweaveError {
	return &TaskweaveError{
		Type:    ErrorTypeConfig,
		Code:    CodeInvalidConfig,
		Message: message,
	}
}
