package config

import (
	"fmt"
	"io"
	"strconv"
	"time"

	apperrors "github.com/webgrid/gridsmoke/internal/errors"
	"github.com/webgrid/gridsmoke/internal/webdriver"
)

// EnvPrefix is the prefix for supplementary gridsmoke environment variables.
// The bare TIMEOUT variable is intentionally unprefixed; it predates the
// prefixed knobs and external tooling depends on its exact name.
const EnvPrefix = "GRIDSMOKE_"

const (
	// DefaultTimeoutSeconds is the per-session timeout applied when the
	// TIMEOUT environment variable is unset.
	DefaultTimeoutSeconds = 600
	// DefaultStagger is the fixed launch-delay increment between session
	// indices. A scheduling delay only, not a concurrency limit.
	DefaultStagger = 25 * time.Millisecond
	// DefaultScenario is the scripted interaction run when GRIDSMOKE_SCENARIO
	// is unset.
	DefaultScenario = "search"
)

// RunConfig holds the immutable configuration of one smoke run. It is
// constructed once by ParseConfig before any session starts and is shared
// read-only by every concurrent session task.
type RunConfig struct {
	// Endpoint is the address of the remote grid.
	Endpoint string
	// SessionCount is the number of independent sessions to launch.
	SessionCount int
	// Browser is the resolved browser kind for every session.
	Browser webdriver.Browser
	// PerSessionTimeout bounds each session's total execution, from session
	// creation through interaction completion.
	PerSessionTimeout time.Duration
	// Scenario names the scripted interaction to run.
	Scenario string
	// Stagger is the per-index launch delay increment.
	Stagger time.Duration
	// StrictMetadata makes a metadata-attachment failure fatal for the
	// session instead of merely logged.
	StrictMetadata bool
	// MetricsAddr, when non-empty, enables a prometheus listener on that
	// address for the duration of the run.
	MetricsAddr string
	// TUI enables the live dashboard instead of plain report lines.
	TUI bool
	// Quiet suppresses the spinner and configuration banner; report and
	// summary lines are always printed.
	Quiet bool
	// Verbose enables debug-level structured logging.
	Verbose bool
}

// Usage writes the CLI usage line.
func Usage(programName string, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <endpoint> <count> [browser]\n", programName)
	fmt.Fprintf(w, "  endpoint  address of the remote grid (e.g. http://localhost:4444)\n")
	fmt.Fprintf(w, "  count     number of sessions to launch (non-negative integer)\n")
	fmt.Fprintf(w, "  browser   firefox (default), chrome or safari\n")
}

// ParseConfig builds a RunConfig from positional arguments and the
// environment. All validation happens here: malformed input of any kind is a
// ConfigError, raised before a single session task is launched.
//
// Positional arguments: <endpoint> <count> [browser].
// Environment: TIMEOUT (integer seconds, default 600) plus the GRIDSMOKE_
// prefixed overrides listed in env.go.
func ParseConfig(args []string) (RunConfig, error) {
	if len(args) < 2 || len(args) > 3 {
		return RunConfig{}, apperrors.NewConfigError("expected <endpoint> <count> [browser], got %d argument(s)", len(args))
	}

	cfg := RunConfig{
		Endpoint: args[0],
		Scenario: DefaultScenario,
		Stagger:  DefaultStagger,
	}

	count, err := strconv.Atoi(args[1])
	if err != nil || count < 0 {
		return RunConfig{}, apperrors.NewConfigError("count must be a non-negative integer, got %q", args[1])
	}
	cfg.SessionCount = count

	browserName := "firefox"
	if len(args) == 3 {
		browserName = args[2]
	}
	browser, err := webdriver.ParseBrowser(browserName)
	if err != nil {
		return RunConfig{}, err
	}
	cfg.Browser = browser

	timeout, err := timeoutFromEnv()
	if err != nil {
		return RunConfig{}, err
	}
	cfg.PerSessionTimeout = timeout

	if err := applyEnvOverrides(&cfg); err != nil {
		return RunConfig{}, err
	}
	if cfg.Stagger < 0 {
		return RunConfig{}, apperrors.NewConfigError("stagger must not be negative, got %s", cfg.Stagger)
	}
	return cfg, nil
}
