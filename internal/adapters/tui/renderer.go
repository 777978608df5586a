package tui

import (
	"context"
	"math"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/lift/internal/core/ports"
)

// progressStep is the smallest fraction change forwarded for an unchanged
// status text. Downloads report every chunk.
const progressStep = 0.005

// Renderer wraps the Bubble Tea model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error

	mu        sync.Mutex
	last      MsgProgress
	sent      bool
	coalesced int
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnPlanEmit forwards the dependency tree to the TUI.
func (r *Renderer) OnPlanEmit(plan string) {
	r.program.Send(MsgPlan{Plan: plan})
}

// OnTaskStart forwards task start events to the TUI.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.program.Send(MsgTaskStart{
		SpanID:    spanID,
		ParentID:  parentID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnTaskComplete forwards task completion events to the TUI.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(MsgTaskComplete{
		SpanID:  spanID,
		EndTime: endTime,
		Err:     err,
	})
}

// OnProgress forwards a status update to the TUI. Updates that neither
// change the text nor move the bar by progressStep are dropped.
func (r *Renderer) OnProgress(text string, fraction float64) {
	msg := MsgProgress{Text: text, Fraction: fraction}

	r.mu.Lock()
	if r.sent && msg.Text == r.last.Text && fraction < 1 &&
		math.Abs(fraction-r.last.Fraction) < progressStep {
		r.coalesced++
		r.mu.Unlock()
		return
	}
	r.last, r.sent = msg, true
	r.mu.Unlock()

	r.program.Send(msg)
}

// OnPackageInstalled forwards a package completion to the TUI.
func (r *Renderer) OnPackageInstalled() {
	r.program.Send(MsgPackageInstalled{})
}

// Interrupted reports whether the user quit the TUI.
func (r *Renderer) Interrupted() bool {
	return r.model.Interrupted
}

// Coalesced returns how many progress updates were dropped.
func (r *Renderer) Coalesced() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.coalesced
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
