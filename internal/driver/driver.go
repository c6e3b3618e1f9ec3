// Package driver owns one session's lifecycle: acquire a remote session with
// the declared capabilities, execute the scripted interaction against it, and
// release the session on every exit path.
package driver

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/webgrid/gridsmoke/internal/errors"
	"github.com/webgrid/gridsmoke/internal/logging"
	"github.com/webgrid/gridsmoke/internal/scenario"
	"github.com/webgrid/gridsmoke/internal/webdriver"
)

// closeGrace bounds the teardown call once the session's own context is
// already cancelled or expired.
const closeGrace = 10 * time.Second

// Driver runs the scripted interaction inside freshly acquired remote
// sessions. One Driver serves every session task of a run; all per-session
// state lives in the session handle, so a Driver is safe for concurrent use.
type Driver struct {
	// Client opens sessions against the grid.
	Client webdriver.Client
	// Browser is the kind every session requests.
	Browser webdriver.Browser
	// Scenario is the interaction executed in each session.
	Scenario scenario.Scenario
	// Metadata is attached to the capabilities for identification on the
	// remote side (e.g. name and build).
	Metadata map[string]string
	// StrictMetadata makes a metadata-attachment failure fatal instead of
	// merely logged.
	StrictMetadata bool
	// Log receives teardown and telemetry diagnostics.
	Log logging.Logger
}

// RunSession acquires one remote session, executes the scenario, and
// guarantees the session is released exactly once regardless of outcome.
// Interaction failures come back wrapped with the remote session identifier
// so every reported failure is traceable on the grid.
func (d *Driver) RunSession(ctx context.Context) error {
	log := d.Log
	if log == nil {
		log = logging.NopLogger{}
	}

	caps := d.Browser.Capabilities()
	if err := caps.AttachMetadata(d.Metadata); err != nil {
		if d.StrictMetadata {
			return apperrors.WrapError(err, "attaching session metadata")
		}
		log.Warn("session metadata not attached", logging.Err(err))
	}

	ctx, span := otel.Tracer("gridsmoke/driver").Start(ctx, "session",
		trace.WithAttributes(attribute.String("browser", d.Browser.String())))
	defer span.End()

	sess, err := d.Client.NewSession(ctx, caps)
	if err != nil {
		return apperrors.WrapError(err, "opening session")
	}
	span.SetAttributes(attribute.String("session.id", sess.ID()))

	// The interaction's context may be cancelled or expired by the time the
	// session is released; teardown still has to reach the grid.
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeGrace)
		defer cancel()
		if err := sess.Close(closeCtx); err != nil {
			log.Warn("session teardown failed",
				logging.String("session_id", sess.ID()), logging.Err(err))
		}
	}()

	if err := d.Scenario.Execute(ctx, sess, log); err != nil {
		return apperrors.SessionError{SessionID: sess.ID(), Cause: err}
	}
	return nil
}
