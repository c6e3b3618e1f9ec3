package cli

import (
	"fmt"
	"io"

	"github.com/webgrid/gridsmoke/internal/config"
	"github.com/webgrid/gridsmoke/internal/format"
	"github.com/webgrid/gridsmoke/internal/orchestration"
	"github.com/webgrid/gridsmoke/internal/ui"
)

// PrintRunBanner displays the run configuration before the batch starts.
//
// Parameters:
//   - cfg: The run configuration.
//   - out: The writer for standard output.
func PrintRunBanner(cfg config.RunConfig, out io.Writer) {
	fmt.Fprintf(out, "Running %s%d%s sessions against '%s%s%s'\n",
		ui.ColorAccent(), cfg.SessionCount, ui.ColorReset(),
		ui.ColorAccent(), cfg.Endpoint, ui.ColorReset())
	fmt.Fprintf(out, "Browser: %s%s%s, scenario: %s%s%s, per-session timeout: %s%s%s.\n",
		ui.ColorAccent(), cfg.Browser, ui.ColorReset(),
		ui.ColorAccent(), cfg.Scenario, ui.ColorReset(),
		ui.ColorAccent(), cfg.PerSessionTimeout, ui.ColorReset())
}

// Reporter prints one line per session outcome as it resolves, plus the
// final summary line. It optionally animates a spinner between events; the
// orchestrator serializes calls, so no internal locking is needed.
type Reporter struct {
	out      io.Writer
	total    int
	sp       Spinner
	running  int
	finished int
}

// NewReporter creates a CLI reporter writing report lines to out. sp may be
// nil to disable the spinner (quiet mode or a non-interactive stdout).
func NewReporter(out io.Writer, total int, sp Spinner) *Reporter {
	r := &Reporter{out: out, total: total, sp: sp}
	if r.sp != nil && total > 0 {
		r.sp.UpdateSuffix(r.suffix())
		r.sp.Start()
	}
	return r
}

// suffix renders the spinner status text.
func (r *Reporter) suffix() string {
	return fmt.Sprintf(" %d running, %d/%d finished", r.running, r.finished, r.total)
}

// SessionStarted records that a task's stagger elapsed and work began.
func (r *Reporter) SessionStarted(int) {
	r.running++
	if r.sp != nil {
		r.sp.UpdateSuffix(r.suffix())
	}
}

// SessionFinished prints the one-line report for a resolved session.
func (r *Reporter) SessionFinished(result orchestration.SessionResult) {
	if r.sp != nil {
		r.sp.Stop()
	}
	if result.Err == nil {
		fmt.Fprintf(r.out, "Session #%d %sfinished%s in %s%s%s.\n",
			result.Index, ui.ColorSuccess(), ui.ColorReset(),
			ui.ColorAccent(), format.ExecutionDuration(result.Duration), ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "Session #%d %sfailed%s: %v\n",
			result.Index, ui.ColorError(), ui.ColorReset(), result.Err)
	}
	r.running--
	r.finished++
	if r.sp != nil && r.finished < r.total {
		r.sp.UpdateSuffix(r.suffix())
		r.sp.Start()
	}
}

// Summary prints the final tally line.
func (r *Reporter) Summary(summary orchestration.RunSummary) {
	if r.sp != nil {
		r.sp.Stop()
	}
	color := ui.ColorSuccess()
	if summary.Failed > 0 {
		color = ui.ColorError()
	}
	fmt.Fprintf(r.out, "All sessions finished. %s%d / %d succeeded%s.\n",
		color, summary.Succeeded(), summary.Total, ui.ColorReset())
}
