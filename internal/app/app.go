// Package app ties configuration, the session driver, the orchestrator and
// the reporting surfaces together into the gridsmoke executable.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/webgrid/gridsmoke/internal/cli"
	"github.com/webgrid/gridsmoke/internal/config"
	"github.com/webgrid/gridsmoke/internal/driver"
	apperrors "github.com/webgrid/gridsmoke/internal/errors"
	"github.com/webgrid/gridsmoke/internal/logging"
	"github.com/webgrid/gridsmoke/internal/metrics"
	"github.com/webgrid/gridsmoke/internal/orchestration"
	"github.com/webgrid/gridsmoke/internal/scenario"
	"github.com/webgrid/gridsmoke/internal/tui"
	"github.com/webgrid/gridsmoke/internal/ui"
	"github.com/webgrid/gridsmoke/internal/webdriver"
)

// ClientFactory builds the grid client for a run. The returned closer
// releases the client's transport resources.
type ClientFactory func(endpoint string, timeout time.Duration) (webdriver.Client, func() error)

// Application represents one configured gridsmoke invocation.
type Application struct {
	Config    config.RunConfig
	ErrWriter io.Writer

	newClient ClientFactory
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithClientFactory substitutes the grid client construction, used by tests
// to run against a fake grid.
func WithClientFactory(f ClientFactory) AppOption {
	return func(a *Application) { a.newClient = f }
}

// New creates an Application by parsing command-line arguments and the
// environment. Configuration errors are reported on errWriter together with
// the usage text.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.newClient == nil {
		app.newClient = func(endpoint string, timeout time.Duration) (webdriver.Client, func() error) {
			c := webdriver.NewHTTPClient(endpoint, timeout)
			return c, c.Close
		}
	}

	programName := "gridsmoke"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(cmdArgs)
	if err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n\n", err)
		config.Usage(programName, errWriter)
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the configured smoke run and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	cfg := a.Config

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := logging.NewLogger(a.ErrWriter, "gridsmoke")
	ui.InitTheme(false)

	sc, err := scenario.ByName(cfg.Scenario)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	client, closeClient := a.newClient(cfg.Endpoint, cfg.PerSessionTimeout)
	defer func() {
		if cErr := closeClient(); cErr != nil {
			log.Warn("closing grid client", logging.Err(cErr))
		}
	}()

	drv := &driver.Driver{
		Client:   client,
		Browser:  cfg.Browser,
		Scenario: sc,
		Metadata: map[string]string{
			"name":  "gridsmoke",
			"build": fmt.Sprintf("%s-%s", Version, uuid.NewString()),
		},
		StrictMetadata: cfg.StrictMetadata,
		Log:            log,
	}

	orch := &orchestration.Orchestrator{
		Count:          cfg.SessionCount,
		Stagger:        cfg.Stagger,
		SessionTimeout: cfg.PerSessionTimeout,
		Runner:         drv,
	}

	recorder := metrics.NewRecorder()
	if cfg.MetricsAddr != "" {
		metrics.Serve(cfg.MetricsAddr, recorder, log)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if cfg.TUI {
		return tui.Run(ctx, cfg, Version, func(ctx context.Context, rep orchestration.Reporter) orchestration.RunSummary {
			orch.Reporter = orchestration.MultiReporter{rep, recorder}
			return orch.Run(ctx)
		})
	}

	return a.runCLI(ctx, out, orch, recorder)
}

// runCLI executes the run with plain line-based reporting.
func (a *Application) runCLI(ctx context.Context, out io.Writer, orch *orchestration.Orchestrator, recorder *metrics.Recorder) int {
	cfg := a.Config

	if !cfg.Quiet {
		cli.PrintRunBanner(cfg, out)
	}

	var sp cli.Spinner
	if !cfg.Quiet && cli.IsTerminal(os.Stderr) {
		sp = cli.NewTerminalSpinner()
	}

	reporter := cli.NewReporter(out, cfg.SessionCount, sp)
	orch.Reporter = orchestration.MultiReporter{reporter, recorder}

	summary := orch.Run(ctx)
	return summary.ExitCode()
}
