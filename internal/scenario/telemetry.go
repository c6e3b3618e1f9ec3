package scenario

import (
	"context"

	"github.com/webgrid/gridsmoke/internal/logging"
	"github.com/webgrid/gridsmoke/internal/webdriver"
)

// Telemetry cookie names consumed by the grid's session-metadata observers.
// The cookies are pure telemetry, not interaction state.
const (
	cookieMessage = "webgrid:message"
	cookieStatus  = "webgrid:metadata.session:status"
)

// Final status markers written to the status cookie.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// sendMessage emits a rolling human-readable progress message over the
// telemetry side channel. Best-effort: a delivery failure is logged and
// never surfaces into the step outcome.
func sendMessage(ctx context.Context, sess webdriver.Session, log logging.Logger, message string) {
	if message == "" {
		return
	}
	if err := sess.AddCookie(ctx, cookieMessage, message); err != nil {
		log.Warn("telemetry message not delivered",
			logging.String("message", message), logging.Err(err))
	}
}

// setStatus emits the final status marker over the telemetry side channel.
// Best-effort, like sendMessage.
func setStatus(ctx context.Context, sess webdriver.Session, log logging.Logger, status string) {
	if err := sess.AddCookie(ctx, cookieStatus, status); err != nil {
		log.Warn("telemetry status not delivered",
			logging.String("status", status), logging.Err(err))
	}
}
