package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/webgrid/gridsmoke/internal/orchestration"
)

// programRef is a shared reference to the tea.Program. Bubbletea copies the
// model on every Update, so the bridge needs a pointer that survives copies
// for its goroutines to send messages through.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Reporter forwards orchestration events to the dashboard as bubbletea
// messages.
type Reporter struct {
	ref *programRef
}

var _ orchestration.Reporter = (*Reporter)(nil)

// SessionStarted forwards a task start to the dashboard.
func (t *Reporter) SessionStarted(index int) {
	t.ref.Send(sessionStartedMsg{Index: index})
}

// SessionFinished forwards a resolved task to the dashboard.
func (t *Reporter) SessionFinished(result orchestration.SessionResult) {
	t.ref.Send(sessionFinishedMsg{Result: result})
}

// Summary forwards the run summary to the dashboard.
func (t *Reporter) Summary(summary orchestration.RunSummary) {
	t.ref.Send(summaryMsg{Summary: summary})
}
