package scenario

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/webgrid/gridsmoke/internal/errors"
	"github.com/webgrid/gridsmoke/internal/logging"
	"github.com/webgrid/gridsmoke/internal/webdriver"
)

// tracerName identifies interaction spans. Without an SDK installed the
// tracer is a no-op.
const tracerName = "gridsmoke/scenario"

// Run carries the mutable state of one interaction execution between steps.
// It is owned by a single goroutine for its whole lifetime.
type Run struct {
	// Session is the open remote session the steps act on.
	Session webdriver.Session
	// Log receives best-effort diagnostics; step outcomes never travel
	// through it.
	Log logging.Logger
	// Poll is the policy for polled locates.
	Poll PollPolicy
	// Elem is the primary element located by the most recent locate step,
	// available to subsequent assert and mutate steps.
	Elem webdriver.Element
}

// StepFunc executes one interaction step against the run state. A nil return
// means "continue"; any error is terminal for the interaction.
type StepFunc func(ctx context.Context, run *Run) error

// Step is one named entry in a scenario's fixed step sequence.
type Step struct {
	// Name identifies the step in errors and trace spans (e.g. "navigate").
	Name string
	// Message is the human-readable progress text emitted over the
	// telemetry side channel before the step runs.
	Message string
	// Do performs the step.
	Do StepFunc
}

// Scenario is a fixed ordered sequence of steps executed against one open
// session. Any step's failure is terminal: no retry of a step, no skipping.
type Scenario struct {
	// Name is the registry name of the scenario.
	Name string
	// Steps is the ordered step sequence.
	Steps []Step
	// Poll overrides the default polled-locate policy when non-zero.
	Poll PollPolicy
}

// Execute runs the scenario's steps in order against the open session.
//
// Progress messages and the final success/failure marker are emitted over
// the telemetry side channel; both are best-effort and never mask the real
// step outcome. The returned error, if any, identifies the failing step.
func (s Scenario) Execute(ctx context.Context, sess webdriver.Session, log logging.Logger) error {
	if log == nil {
		log = logging.NopLogger{}
	}
	run := &Run{Session: sess, Log: log, Poll: s.Poll.withDefaults()}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "interaction",
		trace.WithAttributes(attribute.String("scenario", s.Name)))
	defer span.End()

	for _, step := range s.Steps {
		sendMessage(ctx, sess, log, step.Message)

		stepCtx, stepSpan := tracer.Start(ctx, "step:"+step.Name)
		err := step.Do(stepCtx, run)
		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()
			span.SetStatus(codes.Error, err.Error())

			sendMessage(ctx, sess, log, "Step "+step.Name+" failed.")
			setStatus(ctx, sess, log, StatusFailure)
			return apperrors.StepError{Step: step.Name, Cause: err}
		}
		stepSpan.End()
	}

	setStatus(ctx, sess, log, StatusSuccess)
	return nil
}
