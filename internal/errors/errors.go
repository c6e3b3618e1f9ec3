package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for gridsmoke.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0 // Every session succeeded (including a zero-session run).
	ExitErrorFailures = 1 // One or more sessions failed or timed out.
	ExitErrorConfig   = 2 // Malformed arguments or environment; no session was launched.
)

// ConfigError represents a user configuration error, such as an unknown
// browser kind or a malformed session count. It indicates that the run
// cannot start; no remote session is opened when a ConfigError is raised.
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

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce ConfigError
	return errors.As(err, &ce)
}

// SessionError tags a failure with the identifier of the remote session it
// occurred in, so every reported failure is traceable to a specific session
// on the grid. It preserves the underlying cause for chain inspection.
type SessionError struct {
	// SessionID is the opaque identifier assigned by the remote grid.
	SessionID string
	// Cause is the underlying error that failed the session.
	Cause error
}

// Error returns a message combining the session identifier and the cause.
func (e SessionError) Error() string {
	return fmt.Sprintf("session %s failed due to %v", e.SessionID, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e SessionError) Unwrap() error { return e.Cause }

// StepError identifies which scripted-interaction step failed. Step failures
// are terminal for their session; they are never retried.
type StepError struct {
	// Step is the name of the interaction step that failed (e.g. "navigate").
	Step string
	// Cause is the underlying error.
	Cause error
}

// Error returns a message combining the step name and the cause.
func (e StepError) Error() string {
	return fmt.Sprintf("step %q: %v", e.Step, e.Cause)
}

// Unwrap returns the underlying cause of the StepError.
func (e StepError) Unwrap() error { return e.Cause }

// AssertionError represents a mismatch between an expected and an observed
// page state. Both values are carried for diagnostics.
type AssertionError struct {
	// What names the asserted property (e.g. "title", "input value").
	What string
	// Expected is the literal the scenario expected.
	Expected string
	// Actual is the value actually observed on the page.
	Actual string
}

// Error returns a formatted message carrying both the expected and the
// actual value.
func (e AssertionError) Error() string {
	return fmt.Sprintf("%s mismatch: expected %q, got %q", e.What, e.Expected, e.Actual)
}

// NotFoundError reports that no element matched a selector, either on an
// immediate find or after a bounded poll.
type NotFoundError struct {
	// Selector is the selector that matched nothing.
	Selector string
	// Waited is how long the locate polled before giving up; zero for an
	// immediate find.
	Waited time.Duration
}

// Error returns a formatted message describing the failed locate.
func (e NotFoundError) Error() string {
	if e.Waited > 0 {
		return fmt.Sprintf("element %q not found after polling for %s", e.Selector, e.Waited)
	}
	return fmt.Sprintf("element %q not found", e.Selector)
}

// TimeoutError represents a session exceeding its per-session budget. It
// captures the operation name and the duration limit that was exceeded.
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

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
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

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
