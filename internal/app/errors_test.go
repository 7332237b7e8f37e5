package app

import (
	"errors"
	"fmt"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "op only",
			err:      &OperationError{Op: "dump"},
			expected: "dump",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "open", Target: "/path/file.txt"},
			expected: "open /path/file.txt",
		},
		{
			name:     "op, target, and context",
			err:      &OperationError{Op: "open", Target: "/path/file.txt", Context: "permission denied"},
			expected: "open /path/file.txt (permission denied)",
		},
		{
			name:     "full error chain",
			err:      &OperationError{Op: "run script", Target: "a.lua", Context: "startup", Err: errors.New("syntax error")},
			expected: "run script a.lua (startup): syntax error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.err.Error(); result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestOperationError_WithContext(t *testing.T) {
	err := NewOperationError("open", "/path/file.txt", nil).WithContext("startup")
	if err.Context != "startup" {
		t.Errorf("expected context 'startup', got '%s'", err.Context)
	}

	var nilErr *OperationError
	if nilErr.WithContext("x") != nil {
		t.Error("expected nil result for nil receiver")
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	inner := errors.New("inner error")
	err := NewOperationError("open", "file.txt", inner)

	if err.Unwrap() != inner {
		t.Error("Unwrap() did not return inner error")
	}

	var nilErr *OperationError
	if nilErr.Unwrap() != nil {
		t.Error("expected nil from Unwrap() on nil receiver")
	}
}

func TestOperationError_Is(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := NewOperationError("open", "file.txt", sentinel)

	if !errors.Is(err, sentinel) {
		t.Error("expected errors.Is to match wrapped sentinel")
	}
	if !errors.Is(err, err) {
		t.Error("expected errors.Is to match itself")
	}
	if errors.Is(err, NewOperationError("open", "file.txt", sentinel)) {
		t.Error("expected distinct wrappers not to match")
	}

	var nilErr *OperationError
	if nilErr.Is(sentinel) {
		t.Error("expected nil receiver not to match")
	}
}

func TestInitError(t *testing.T) {
	inner := errors.New("no tty")
	err := &InitError{Component: "backend", Err: inner}

	if err.Error() != "init backend: no tty" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected InitError to unwrap")
	}
}

func TestIsQuit(t *testing.T) {
	if !IsQuit(ErrQuit) {
		t.Error("expected ErrQuit to be a quit")
	}
	if !IsQuit(fmt.Errorf("loop: %w", ErrQuit)) {
		t.Error("expected wrapped ErrQuit to be a quit")
	}
	if IsQuit(ErrNoBackend) || IsQuit(nil) {
		t.Error("expected other errors not to be a quit")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{ErrQuit, ErrAlreadyRunning, ErrNotRunning, ErrNoBackend}
	for i, a := range sentinels {
		if a.Error() == "" {
			t.Errorf("sentinel %d has empty message", i)
		}
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("expected %v and %v to be distinct", a, b)
			}
		}
	}
}
