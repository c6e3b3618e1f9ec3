// Package tui renders a live bubbletea dashboard for a smoke run: one line
// per resolved session, running counters, and a host load gauge.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/webgrid/gridsmoke/internal/config"
	apperrors "github.com/webgrid/gridsmoke/internal/errors"
	"github.com/webgrid/gridsmoke/internal/format"
	"github.com/webgrid/gridsmoke/internal/orchestration"
	"github.com/webgrid/gridsmoke/internal/sysmon"
)

// RunFunc executes the whole smoke run, streaming events to the given
// reporter, and returns the final summary.
type RunFunc func(context.Context, orchestration.Reporter) orchestration.RunSummary

type (
	sessionStartedMsg  struct{ Index int }
	sessionFinishedMsg struct{ Result orchestration.SessionResult }
	summaryMsg         struct{ Summary orchestration.RunSummary }
	runCompleteMsg     struct{}
	tickMsg            time.Time
	sysStatsMsg        sysmon.Snapshot
	contextCancelledMsg struct{}
)

// Layout constants.
const (
	chromeHeight = 4 // header + panel borders + footer
	minLogLines  = 3
	tickInterval = 500 * time.Millisecond
)

// Model is the root bubbletea model for the dashboard.
type Model struct {
	keymap  KeyMap
	spin    spinner.Model
	lines   []string
	scroll  int

	total    int
	running  int
	finished int
	failed   int

	width  int
	height int

	startTime time.Time
	elapsed   time.Duration
	sys       sysmon.Snapshot

	done     bool
	exitCode int

	ctx     context.Context
	cancel  context.CancelFunc
	cfg     config.RunConfig
	version string
	run     RunFunc
	ref     *programRef
}

// NewModel creates a dashboard model for one run.
func NewModel(parentCtx context.Context, cfg config.RunConfig, version string, run RunFunc) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	return Model{
		keymap:    DefaultKeyMap(),
		spin:      sp,
		total:     cfg.SessionCount,
		startTime: time.Now(),
		exitCode:  apperrors.ExitSuccess,
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		version:   version,
		run:       run,
		ref:       &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		tickCmd(),
		startRunCmd(m.ctx, m.ref, m.run),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionStartedMsg:
		m.running++
		return m, nil

	case sessionFinishedMsg:
		m.running--
		m.finished++
		m.appendLine(resultLine(msg.Result))
		if msg.Result.Err != nil {
			m.failed++
		}
		return m, nil

	case summaryMsg:
		m.exitCode = msg.Summary.ExitCode()
		line := fmt.Sprintf("All sessions finished. %d / %d succeeded.",
			msg.Summary.Succeeded(), msg.Summary.Total)
		if msg.Summary.Failed > 0 {
			m.appendLine(errorStyle.Render(line))
		} else {
			m.appendLine(successStyle.Render(line))
		}
		return m, nil

	case runCompleteMsg:
		m.done = true
		m.elapsed = time.Since(m.startTime)
		return m, nil

	case tickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysCmd(), tickCmd())

	case sysStatsMsg:
		m.sys = sysmon.Snapshot(msg)
		return m, nil

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case contextCancelledMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.scroll < len(m.lines)-1 {
			m.scroll++
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil
	}
	return m, nil
}

// appendLine records a report line stamped with the wall-clock time.
func (m *Model) appendLine(line string) {
	stamp := lineTimeStyle.Render(time.Now().Format("15:04:05"))
	m.lines = append(m.lines, stamp+" "+line)
	m.scroll = 0
}

// resultLine renders the one-line report for a resolved session.
func resultLine(r orchestration.SessionResult) string {
	if r.Err != nil {
		return errorStyle.Render(fmt.Sprintf("Session #%d failed: %v", r.Index, r.Err))
	}
	return fmt.Sprintf("Session #%d finished in %s.",
		r.Index, successStyle.Render(format.ExecutionDuration(r.Duration)))
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.viewHeader()
	body := m.viewBody()
	footer := m.viewFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) viewHeader() string {
	elapsed := m.elapsed
	if !m.done {
		elapsed = time.Since(m.startTime)
	}

	left := titleStyle.Render("gridsmoke") + " " + versionStyle.Render(m.version)
	mid := fmt.Sprintf("%s  %d running  %d/%d finished  %d failed",
		m.statusIndicator(), m.running, m.finished, m.total, m.failed)
	right := gaugeStyle.Render(fmt.Sprintf("cpu %.0f%%  mem %.0f%%  go %d  %s",
		m.sys.CPUPercent, m.sys.MemPercent, m.sys.Goroutines, elapsed.Round(time.Second)))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right) - 4
	if gap < 2 {
		gap = 2
	}
	pad := lipgloss.NewStyle().Width(gap / 2).Render("")
	return headerStyle.Render(left + pad + mid + pad + right)
}

func (m Model) statusIndicator() string {
	if m.done {
		if m.failed > 0 {
			return errorStyle.Render("✗ done")
		}
		return successStyle.Render("✓ done")
	}
	return m.spin.View() + accentStyle.Render("running")
}

func (m Model) viewBody() string {
	visible := m.height - chromeHeight
	if visible < minLogLines {
		visible = minLogLines
	}

	end := len(m.lines) - m.scroll
	if end < 0 {
		end = 0
	}
	start := end - visible
	if start < 0 {
		start = 0
	}

	window := make([]string, 0, visible)
	window = append(window, m.lines[start:end]...)
	for len(window) < visible {
		window = append(window, "")
	}

	return panelStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, window...))
}

func (m Model) viewFooter() string {
	help := footerKeyStyle.Render("q") + footerDescStyle.Render(" quit  ") +
		footerKeyStyle.Render("↑/↓") + footerDescStyle.Render(" scroll")
	target := dimStyle.Render(fmt.Sprintf("%s · %s · %s",
		m.cfg.Endpoint, m.cfg.Browser, m.cfg.Scenario))
	gap := m.width - lipgloss.Width(help) - lipgloss.Width(target) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + help + lipgloss.NewStyle().Width(gap).Render("") + target
}

// Run is the public entry point for the TUI mode. It creates the bubbletea
// program, runs it, and returns the process exit code.
func Run(ctx context.Context, cfg config.RunConfig, version string, run RunFunc) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, cfg, version, run)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the bridge can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorFailures
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd launches the smoke run in the background and reports back
// when every session has resolved.
func startRunCmd(ctx context.Context, ref *programRef, run RunFunc) tea.Cmd {
	return func() tea.Msg {
		run(ctx, &Reporter{ref: ref})
		return runCompleteMsg{}
	}
}

// tickCmd schedules the next host gauge refresh.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// sampleSysCmd reads host load off the UI thread.
func sampleSysCmd() tea.Cmd {
	return func() tea.Msg {
		return sysStatsMsg(sysmon.Sample())
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextCancelledMsg{}
	}
}
