package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := New(ErrorTypeValidation, "snapshot is required")
	assert.Equal(t, "validation error: snapshot is required", err.Error())

	cause := stderrors.New("file missing")
	wrapped := Wrap(ErrorTypeStorage, "failed to load result", cause)
	assert.Equal(t, "storage error: failed to load result: file missing", wrapped.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("underlying")
	wrapped := Wrap(ErrorTypeStorage, "load failed", cause)
	assert.ErrorIs(t, wrapped, cause)
}

func TestError_Display(t *testing.T) {
	err := New(ErrorTypeConfig, "invalid output format").
		WithSolutions("Use json, table or markdown", "Check the output.format config key")

	display := err.Display()
	assert.Contains(t, display, "Error: invalid output format")
	assert.Contains(t, display, "Solutions:")
	assert.Contains(t, display, "Use json, table or markdown")
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeValidation, "bad input")
	assert.True(t, IsType(err, ErrorTypeValidation))
	assert.False(t, IsType(err, ErrorTypeStorage))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeValidation))
}
