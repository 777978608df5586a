// Package tui renders installer progress as an interactive Bubble Tea view.
package tui

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/lift/internal/ui/output"
	"go.trai.ch/lift/internal/ui/style"
)

const (
	// DefaultVisibleTasks is the number of task rows shown below the bar.
	DefaultVisibleTasks = 8

	maxBarWidth = 60
	barPadding  = 4
)

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	// StatusRunning indicates the task is executing.
	StatusRunning TaskStatus = "Running"
	// StatusDone indicates the task completed successfully.
	StatusDone TaskStatus = "Done"
	// StatusError indicates the task failed.
	StatusError TaskStatus = "Error"
)

// TaskNode is one row of the task list.
type TaskNode struct {
	Name     string
	Status   TaskStatus
	Depth    int
	Started  time.Time
	Finished time.Time
	Err      error
}

// Model is the TUI state.
type Model struct {
	Title     string
	Plan      string
	Status    string
	Fraction  float64
	Installed int

	Tasks   []*TaskNode
	SpanMap map[string]*TaskNode

	Bar          progress.Model
	Spinner      spinner.Model
	Output       *termenv.Output
	Width        int
	VisibleTasks int
	DisableTick  bool
	// Interrupted is set when the user quits before the operation ends.
	Interrupted bool
}

// NewModel creates a model that renders to w. A nil w means stderr.
func NewModel(w io.Writer, title string) Model {
	if w == nil {
		w = os.Stderr
	}

	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		Title:   title,
		SpanMap: make(map[string]*TaskNode),
		Bar: progress.New(
			progress.WithSolidFill(string(style.Accent)),
			progress.WithColorProfile(out.Profile),
			progress.WithWidth(maxBarWidth),
		),
		Spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(taskRunningStyle),
		),
		Output:       out,
		VisibleTasks: DefaultVisibleTasks,
	}
}

// WithDisableTick returns a copy of m whose spinner does not animate.
//
//nolint:gocritic // hugeParam ignored
func (m Model) WithDisableTick() Model {
	m.DisableTick = true
	return m
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	if m.DisableTick {
		return nil
	}
	return m.Spinner.Tick
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // one case per message type
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.Interrupted = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Bar.Width = min(maxBarWidth, max(msg.Width-barPadding, 1))

	case spinner.TickMsg:
		if m.DisableTick {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case MsgPlan:
		m.Plan = msg.Plan

	case MsgTaskStart:
		node := &TaskNode{
			Name:    msg.Name,
			Status:  StatusRunning,
			Started: msg.StartTime,
		}
		if parent, ok := m.SpanMap[msg.ParentID]; ok {
			node.Depth = parent.Depth + 1
		}
		m.SpanMap[msg.SpanID] = node
		m.Tasks = append(m.Tasks, node)

	case MsgTaskComplete:
		node, ok := m.SpanMap[msg.SpanID]
		if !ok {
			return m, nil
		}
		node.Finished = msg.EndTime
		node.Err = msg.Err
		node.Status = StatusDone
		if msg.Err != nil {
			node.Status = StatusError
		}

	case MsgProgress:
		m.Status = msg.Text
		m.Fraction = clamp(msg.Fraction)

	case MsgPackageInstalled:
		m.Installed++
	}

	return m, nil
}

// Failed returns the first failed task, if any.
func (m *Model) Failed() *TaskNode {
	for _, task := range m.Tasks {
		if task.Status == StatusError {
			return task
		}
	}
	return nil
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
