// Package apperrors provides tests for application error types.
package apperrors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--end"),
			expected: "invalid value 42 for flag --end",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestInvalidInputError(t *testing.T) {
	t.Parallel()
	err := error(InvalidInputError{Modulus: 1, Reason: "modulus must be >= 2"})

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("InvalidInputError should match ErrInvalidInput")
	}
	if !strings.Contains(err.Error(), "invalid modulus 1") {
		t.Errorf("unexpected message %q", err.Error())
	}

	wrapped := fmt.Errorf("analyze: %w", err)
	var target InvalidInputError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should find InvalidInputError through wrapping")
	}
	if target.Modulus != 1 {
		t.Errorf("Modulus = %d, want 1", target.Modulus)
	}
}

func TestIOError(t *testing.T) {
	t.Parallel()

	t.Run("nil cause yields nil", func(t *testing.T) {
		t.Parallel()
		if err := NewIOError("save cache", "/tmp/x", nil); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("unwraps to cause", func(t *testing.T) {
		t.Parallel()
		err := NewIOError("load cache", "/tmp/x", os.ErrNotExist)
		if !errors.Is(err, os.ErrNotExist) {
			t.Error("IOError should unwrap to its cause")
		}
		if !strings.Contains(err.Error(), "load cache /tmp/x") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("message without path", func(t *testing.T) {
		t.Parallel()
		err := IOError{Op: "render", Cause: errors.New("boom")}
		if err.Error() != "render: boom" {
			t.Errorf("got %q", err.Error())
		}
	})
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "sweep", Limit: 5 * time.Second}
	want := `operation "sweep" timed out after 5s`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	err := ValidationError{Field: "end", Message: "must be greater than start"}
	want := `validation error for "end": must be greater than start`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		format   string
		args     []any
		expected string
		isNil    bool
	}{
		{name: "nil error returns nil", err: nil, format: "context", isNil: true},
		{name: "simple wrap", err: errors.New("root"), format: "loading", expected: "loading: root"},
		{name: "formatted wrap", err: errors.New("root"), format: "modulus %d", args: []any{7}, expected: "modulus 7: root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := WrapError(tt.err, tt.format, tt.args...)
			if tt.isNil {
				if got != nil {
					t.Errorf("expected nil, got %v", got)
				}
				return
			}
			if got.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got.Error())
			}
			if !errors.Is(got, tt.err) {
				t.Error("wrapped error should match the original with errors.Is")
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped canceled", fmt.Errorf("sweep: %w", context.Canceled), true},
		{"other", errors.New("other"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"validation", ValidationError{Field: "start"}, ExitErrorConfig},
		{"invalid input", fmt.Errorf("x: %w", InvalidInputError{Modulus: 0}), ExitErrorConfig},
		{"timeout", TimeoutError{Operation: "sweep"}, ExitErrorTimeout},
		{"deadline", fmt.Errorf("sweep: %w", context.DeadlineExceeded), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"io", NewIOError("save", "p", errors.New("disk full")), ExitErrorIO},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleSweepError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		wantCode int
		contains string
	}{
		{"nil", nil, ExitSuccess, ""},
		{"timeout", context.DeadlineExceeded, ExitErrorTimeout, "timed out"},
		{"canceled", context.Canceled, ExitErrorCanceled, "canceled"},
		{"io", NewIOError("save cache", "data/8", errors.New("read-only")), ExitErrorIO, "read-only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleSweepError(tt.err, time.Second, &buf, noColors{})
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if tt.contains == "" && buf.Len() != 0 {
				t.Errorf("expected no output, got %q", buf.String())
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output %q should contain %q", buf.String(), tt.contains)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"success":  ExitSuccess,
		"generic":  ExitErrorGeneric,
		"timeout":  ExitErrorTimeout,
		"config":   ExitErrorConfig,
		"io":       ExitErrorIO,
		"canceled": ExitErrorCanceled,
	}
	seen := make(map[int]string)
	for name, code := range codes {
		if other, ok := seen[code]; ok {
			t.Errorf("exit code %d shared by %s and %s", code, name, other)
		}
		seen[code] = name
	}
	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
}
