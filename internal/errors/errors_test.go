package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardTooLowError(t *testing.T) {
	err := NewStandardTooLowError(17, 20)

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, CodeStandardTooLow, err.Code)
	assert.Contains(t, err.Error(), "c++17")
	assert.Contains(t, err.Error(), "c++20")
	assert.Equal(t, 1, err.ExitCode())
}

func TestStandardTooLowError_Unconfigured(t *testing.T) {
	err := NewStandardTooLowError(0, 20)

	assert.Contains(t, err.Error(), "not configured")
	assert.Contains(t, err.Error(), "c++20")
}

func TestToolNotFoundError(t *testing.T) {
	err := NewToolNotFoundError("clang-format")

	assert.Equal(t, ErrorTypeTool, err.Type)
	assert.Equal(t, 1, err.ExitCode())
	assert.Contains(t, err.Error(), "clang-format not found in PATH")
}

func TestToolExecutionError_PropagatesExitCode(t *testing.T) {
	cause := fmt.Errorf("exit status 3")
	err := NewToolExecutionError("clang-format", 3, cause)

	assert.Equal(t, 3, err.ExitCode())
	assert.ErrorIs(t, err, &TaskweaveError{Type: ErrorTypeTool, Code: CodeToolFailed})
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIOError_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewIOError("write toolchain file", cause)

	require.ErrorContains(t, err, "write toolchain file failed")
	assert.ErrorIs(t, err, &TaskweaveError{Type: ErrorTypeIO, Code: CodeIOFailure})
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestTaskweaveError_AsFromWrappedChain(t *testing.T) {
	inner := NewToolExecutionError("clang-format", 2, nil)
	wrapped := fmt.Errorf("format run: %w", inner)

	var terr *TaskweaveError
	require.True(t, errors.As(wrapped, &terr))
	assert.Equal(t, 2, terr.ExitCode())
}

func TestTaskweaveError_WithPath(t *testing.T) {
	err := NewIOError("create directory", nil).WithPath("/tmp/build/generators")

	assert.Contains(t, err.Error(), "/tmp/build/generators")
}

func TestExitCode_DefaultsToOne(t *testing.T) {
	err := &TaskweaveError{Type: ErrorTypeInternal, Message: "boom"}

	assert.Equal(t, 1, err.ExitCode())
}
