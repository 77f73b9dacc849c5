package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidRange, "tile size x: min %g exceeds max %g", 5.0, 2.0)

	if err.Code != ErrCodeInvalidRange {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidRange)
	}

	if err.Message != "tile size x: min 5 exceeds max 2" {
		t.Errorf("Message = %v, want %v", err.Message, "tile size x: min 5 exceeds max 2")
	}

	expected := "INVALID_RANGE: tile size x: min 5 exceeds max 2"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("host refused")
	err := Wrap(ErrCodeExternal, cause, "create box")

	if err.Code != ErrCodeExternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeExternal)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	if got := err.Error(); got != "EXTERNAL: create box: host refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidRange, "test"),
			code:     ErrCodeInvalidRange,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidRange, "test"),
			code:     ErrCodeExternal,
			expected: false,
		},
		{
			name:     "outer code",
			err:      Wrap(ErrCodeExternal, New(ErrCodeInvalidRange, "inner"), "outer"),
			code:     ErrCodeExternal,
			expected: true,
		},
		{
			name:     "inner code",
			err:      Wrap(ErrCodeExternal, New(ErrCodeInvalidRange, "inner"), "outer"),
			code:     ErrCodeInvalidRange,
			expected: true,
		},
		{
			name:     "joined errors",
			err:      errors.Join(errors.New("plain"), New(ErrCodeExternal, "write")),
			code:     ErrCodeExternal,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("layout: %w", Wrap(ErrCodeExternal, New(ErrCodeInvalidDimension, "negative"), "sync")),
			code:     ErrCodeInvalidDimension,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidRange,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidRange,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodePresetNotFound, "test"),
			expected: ErrCodePresetNotFound,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "wrapped plain cause",
			err:      Wrap(ErrCodeExternal, errors.New("no such object"), "delete tile"),
			expected: "delete tile: no such object",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
