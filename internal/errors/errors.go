package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the sweep timed out.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorIO       = 5   // Indicates a cache, chart or export I/O failure.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrInvalidInput is the sentinel wrapped by every InvalidInputError so that
// callers can test with errors.Is without knowing the concrete type.
var ErrInvalidInput = errors.New("invalid input")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InvalidInputError reports a modulus that violates the analyzer precondition
// (m >= 2). The sweep never produces one, but the analyzer still checks.
type InvalidInputError struct {
	// Modulus is the rejected value.
	Modulus uint64
	// Reason explains which precondition failed.
	Reason string
}

// Error returns a formatted message describing the rejected modulus.
func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid modulus %d: %s", e.Modulus, e.Reason)
}

// Unwrap exposes ErrInvalidInput to errors.Is.
func (e InvalidInputError) Unwrap() error { return ErrInvalidInput }

// IOError wraps a filesystem failure with the operation and path involved.
// Cache, chart and export failures are all reported through it and are fatal.
type IOError struct {
	// Op names the failed operation (e.g. "save cache", "render chart").
	Op string
	// Path is the file or directory the operation touched.
	Path string
	// Cause is the underlying error.
	Cause error
}

// Error returns a formatted message describing the I/O failure.
func (e IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e IOError) Unwrap() error { return e.Cause }

// NewIOError builds an IOError, returning nil when cause is nil.
func NewIOError(op, path string, cause error) error {
	if cause == nil {
		return nil
	}
	return IOError{Op: op, Path: path, Cause: cause}
}

// TimeoutError represents a sweep timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error onto the process exit code.
func ExitCodeFor(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		timeoutErr    TimeoutError
		ioErr         IOError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &configErr), errors.As(err, &validationErr), errors.Is(err, ErrInvalidInput):
		return ExitErrorConfig
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &ioErr):
		return ExitErrorIO
	default:
		return ExitErrorGeneric
	}
}

// ColorProvider supplies the escape sequences used when printing errors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleSweepError prints a human-readable description of err and returns
// the matching exit code. A nil error prints nothing.
//
// Parameters:
//   - err: The error returned by the sweep pipeline.
//   - duration: How long the run lasted before failing.
//   - out: The writer for the message.
//   - colors: Color escape provider.
//
// Returns:
//   - int: The exit code for err.
func HandleSweepError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sSweep timed out after %s.%s\n", colors.Yellow(), duration.Round(time.Millisecond), colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sSweep canceled by user.%s\n", colors.Yellow(), colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
