package orchestration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/webgrid/gridsmoke/internal/errors"
)

// Orchestrator owns one run: it launches exactly Count session tasks as
// independent concurrent units, staggers their start times, bounds each with
// the per-session timeout, collects every terminal outcome, and produces the
// RunSummary.
type Orchestrator struct {
	// Count is the number of session tasks to launch.
	Count int
	// Stagger is the launch-delay increment: task i begins its work only
	// after waiting i*Stagger from the start of the batch. This smooths the
	// connection load on the remote endpoint; it is a scheduling delay, not
	// a concurrency limit.
	Stagger time.Duration
	// SessionTimeout bounds each task's total execution. Exceeding it fails
	// that task alone; siblings are unaffected.
	SessionTimeout time.Duration
	// Runner executes one session lifecycle per task.
	Runner SessionRunner
	// Reporter receives progress events; nil means NullReporter.
	Reporter Reporter
}

// Run executes the whole batch and blocks until every session task has
// reached a terminal outcome. The returned summary satisfies
// Succeeded()+Failed == Total for every interleaving.
//
// A panic inside one task is recovered and converted into that task's
// failure outcome; it never crashes the orchestrator or sibling tasks.
func (o *Orchestrator) Run(ctx context.Context) RunSummary {
	reporter := o.Reporter
	if reporter == nil {
		reporter = NullReporter{}
	}

	var failed atomic.Int64
	// Serializes reporter callbacks so each event prints as one line.
	var mu sync.Mutex

	var g errgroup.Group
	for i := 0; i < o.Count; i++ {
		index := i
		g.Go(func() error {
			o.runTask(ctx, index, &failed, reporter, &mu)
			return nil
		})
	}
	g.Wait()

	summary := RunSummary{Total: o.Count, Failed: int(failed.Load())}
	mu.Lock()
	reporter.Summary(summary)
	mu.Unlock()
	return summary
}

// runTask executes one session task: stagger, bounded run, exactly one tally
// update, and one immediate progress report.
func (o *Orchestrator) runTask(ctx context.Context, index int, failed *atomic.Int64, reporter Reporter, mu *sync.Mutex) {
	start := time.Now()
	err := o.waitStagger(ctx, index)
	if err == nil {
		mu.Lock()
		reporter.SessionStarted(index)
		mu.Unlock()

		start = time.Now()
		err = o.runBounded(ctx, index)
	}
	duration := time.Since(start)

	if err != nil {
		failed.Add(1)
	}
	mu.Lock()
	reporter.SessionFinished(SessionResult{Index: index, Duration: duration, Err: err})
	mu.Unlock()
}

// waitStagger delays task index by index*Stagger from the batch start.
func (o *Orchestrator) waitStagger(ctx context.Context, index int) error {
	delay := time.Duration(index) * o.Stagger
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// runBounded runs one session under the per-session deadline, recovering any
// panic into an error so a fault in one task cannot take down the run.
func (o *Orchestrator) runBounded(ctx context.Context, index int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected fault in session #%d: %v", index, r)
		}
	}()

	taskCtx := ctx
	if o.SessionTimeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, o.SessionTimeout)
		defer cancel()
	}

	err = o.Runner.RunSession(taskCtx)

	// When the task's own deadline expired, label the failure as a timeout
	// rather than surfacing a bare context error.
	if err != nil && apperrors.IsContextError(err) && ctx.Err() == nil && taskCtx.Err() != nil {
		err = apperrors.TimeoutError{Operation: "session", Limit: o.SessionTimeout}
	}
	return err
}
