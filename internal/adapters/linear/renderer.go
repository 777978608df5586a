// Package linear renders installer progress as plain lines for pipes and CI.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/lift/internal/ui/output"
	"go.trai.ch/lift/internal/ui/style"
)

// DefaultInterval is the minimum time between two lines of the same step.
const DefaultInterval = time.Second

// Renderer implements ports.Renderer with chronological lines. Status
// updates go to stdout, task lifecycle lines to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	// Now and Interval throttle repeated updates of one step.
	Now      func() time.Time
	Interval time.Duration

	mu        sync.Mutex
	tasks     map[string]taskState
	lastStep  string
	lastText  string
	lastPrint time.Time
	installed int
}

type taskState struct {
	name      string
	startTime time.Time
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer returns a Renderer. Nil writers mean stdout and stderr.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Renderer{
		stdout:   stdout,
		stderr:   stderr,
		output:   output.NewWithProfile(stderr, output.ColorProfileANSI),
		Now:      time.Now,
		Interval: DefaultInterval,
		tasks:    make(map[string]taskState),
	}
}

// Start does nothing.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop prints the number of installed packages, if any.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.installed > 0 {
		_, _ = fmt.Fprintf(r.stdout, "%s Installed %d package(s)\n", style.Check, r.installed)
	}
	return nil
}

// Wait does nothing.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the dependency tree.
func (r *Renderer) OnPlanEmit(plan string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintln(r.stderr, r.output.String("Dependency tree:").Bold().String())
	for _, line := range strings.Split(strings.TrimRight(plan, "\n"), "\n") {
		_, _ = fmt.Fprintln(r.stderr, r.output.String("  "+line).Faint().String())
	}
}

// OnTaskStart records the task; nothing is printed until it completes.
func (r *Renderer) OnTaskStart(spanID, _, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = taskState{name: name, startTime: startTime}
}

// OnTaskComplete prints failed tasks.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)

	if err == nil {
		return
	}
	symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n",
		symbol, task.name, endTime.Sub(task.startTime).Round(time.Millisecond), err)
}

// OnProgress prints the status line. Updates that only change the
// parenthesised detail of the current step are throttled to Interval.
func (r *Renderer) OnProgress(text string, fraction float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if text == r.lastText {
		return
	}
	step, _, _ := strings.Cut(text, " (")
	now := r.Now()
	if step == r.lastStep && fraction < 1 && now.Sub(r.lastPrint) < r.Interval {
		return
	}

	r.lastStep, r.lastText, r.lastPrint = step, text, now
	_, _ = fmt.Fprintf(r.stdout, "[%3d%%] %s\n", percent(fraction), text)
}

// OnPackageInstalled counts installed packages.
func (r *Renderer) OnPackageInstalled() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.installed++
}

func percent(fraction float64) int {
	switch {
	case fraction <= 0:
		return 0
	case fraction >= 1:
		return 100
	}
	return int(fraction * 100)
}
