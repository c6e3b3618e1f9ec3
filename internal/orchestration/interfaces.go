package orchestration

import (
	"context"
	"time"

	apperrors "github.com/webgrid/gridsmoke/internal/errors"
)

// SessionResult encapsulates the terminal outcome of a single session task.
// It is the shared domain type between orchestration and presentation layers.
type SessionResult struct {
	// Index is the 0-based ordinal of the session task.
	Index int
	// Duration is the task's total execution time, from the end of its
	// stagger delay to its terminal outcome.
	Duration time.Duration
	// Err is nil for a successful session; otherwise the labeled failure.
	Err error
}

// RunSummary is the aggregate of a whole run, computed after every session
// task reached a terminal outcome. Immutable once computed.
type RunSummary struct {
	// Total is the number of session tasks launched.
	Total int
	// Failed is the number of tasks that reached a failure outcome.
	Failed int
}

// Succeeded returns the number of successful tasks.
func (s RunSummary) Succeeded() int { return s.Total - s.Failed }

// ExitCode maps the summary onto the process exit contract: zero when every
// session succeeded, non-zero otherwise.
func (s RunSummary) ExitCode() int {
	if s.Failed > 0 {
		return apperrors.ExitErrorFailures
	}
	return apperrors.ExitSuccess
}

// SessionRunner executes one session task from acquisition through teardown.
// Implementations must be safe for concurrent use: the orchestrator invokes
// RunSession from every task goroutine.
type SessionRunner interface {
	// RunSession runs one full session lifecycle. The context carries the
	// per-session deadline; a nil return is a success.
	RunSession(ctx context.Context) error
}

// SessionRunnerFunc is a function adapter that implements SessionRunner.
type SessionRunnerFunc func(ctx context.Context) error

// RunSession calls the underlying function.
func (f SessionRunnerFunc) RunSession(ctx context.Context) error { return f(ctx) }

// Reporter receives run progress. The orchestrator serializes all calls, so
// implementations need no internal locking; they are invoked the moment each
// event happens, not batched at the end.
type Reporter interface {
	// SessionStarted is called when a task's stagger delay elapses and its
	// actual work begins.
	SessionStarted(index int)
	// SessionFinished is called as each task reaches a terminal outcome.
	SessionFinished(result SessionResult)
	// Summary is called once, after every task has resolved.
	Summary(summary RunSummary)
}

// NullReporter is a no-op Reporter for quiet mode and tests.
type NullReporter struct{}

// SessionStarted discards the event.
func (NullReporter) SessionStarted(int) {}

// SessionFinished discards the event.
func (NullReporter) SessionFinished(SessionResult) {}

// Summary discards the event.
func (NullReporter) Summary(RunSummary) {}

// MultiReporter fans events out to several reporters in order.
type MultiReporter []Reporter

// SessionStarted forwards the event to every reporter.
func (m MultiReporter) SessionStarted(index int) {
	for _, r := range m {
		r.SessionStarted(index)
	}
}

// SessionFinished forwards the event to every reporter.
func (m MultiReporter) SessionFinished(result SessionResult) {
	for _, r := range m {
		r.SessionFinished(result)
	}
}

// Summary forwards the event to every reporter.
func (m MultiReporter) Summary(summary RunSummary) {
	for _, r := range m {
		r.Summary(summary)
	}
}
