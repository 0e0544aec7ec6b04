//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrParse)
	assert.NotEqual(t, ErrValidation, ErrPermission)
	assert.NotEqual(t, ErrValidation, ErrNotFound)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "invalid glob",
		Location: "/repo/tailwind.config.js:4:5",
		Field:    "content[1]",
		Context:  map[string]string{"Pattern": "./a/[b", "Format": "js"},
		Hint:     "Close the bracket expression",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Location: /repo/tailwind.config.js:4:5")
	assert.Contains(t, output, "Field: content[1]")
	assert.Contains(t, output, "Pattern: ./a/[b")
	assert.Contains(t, output, "invalid glob")
	assert.Contains(t, output, "Hint: Close the bracket expression")
	assert.Less(t, strings.Index(output, "Format:"), strings.Index(output, "Pattern:"), "context keys are sorted")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError(
		"darkMode must be one of media, class, selector",
		"/repo/tailwind.config.js",
		"darkMode",
		"Use \"class\" for manual toggling",
	)

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "darkMode", detail.Field)
}

func TestConstructorsCarrySentinels(t *testing.T) {
	assert.ErrorIs(t, NewParseError("m", "l", "h"), ErrParse)
	assert.ErrorIs(t, NewNotFoundError("m", "l", "h"), ErrNotFound)
	assert.ErrorIs(t, NewPermissionError("m", "l", "h"), ErrPermission)
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "schema check failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "schema check failed")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil", err: nil, wantCode: ExitSuccess},
		{name: "validation", err: Wrap(ErrValidation, "x"), wantCode: ExitValidationError},
		{name: "parse", err: NewParseError("x", "", ""), wantCode: ExitValidationError},
		{name: "permission", err: Wrap(ErrPermission, "x"), wantCode: ExitPermissionDenied},
		{name: "not found", err: fmt.Errorf("loading: %w", NewNotFoundError("x", "", "")), wantCode: ExitNotFound},
		{name: "explicit exit error", err: NewExitError(errors.New("boom"), 7), wantCode: 7},
		{name: "other", err: errors.New("boom"), wantCode: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("boom")
	exitErr := NewExitError(inner, ExitNotFound)

	assert.Equal(t, "boom", exitErr.Error())
	assert.ErrorIs(t, exitErr, inner)
	assert.False(t, exitErr.Printed)
	assert.Equal(t, "exit code 3", (&ExitError{Code: 3}).Error())
}
