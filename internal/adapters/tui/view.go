package tui

import (
	"fmt"
	"strings"

	"go.trai.ch/lift/internal/ui/style"
)

// View renders the title, the status line, the progress bar and the most
// recent tasks.
func (m *Model) View() string {
	var b strings.Builder

	title := titleStyle
	if m.Failed() != nil {
		title = failureTitleStyle
	}
	b.WriteString(title.Render(m.Title) + "\n\n")

	status := m.Status
	if status == "" {
		status = "Preparing..."
	}
	b.WriteString(statusStyle.Render(status) + "\n")
	b.WriteString(m.Bar.ViewAs(m.Fraction) + "\n\n")

	for _, task := range m.visibleTasks() {
		b.WriteString(m.renderTaskRow(task) + "\n")
	}

	if m.Installed > 0 {
		b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("%s %d package(s) installed", style.Package, m.Installed)) + "\n")
	}
	return b.String()
}

// visibleTasks returns the last VisibleTasks rows. A failed task stays
// visible even when it scrolled out.
func (m *Model) visibleTasks() []*TaskNode {
	limit := m.VisibleTasks
	if limit <= 0 || len(m.Tasks) <= limit {
		return m.Tasks
	}

	rows := m.Tasks[len(m.Tasks)-limit:]
	if failed := m.Failed(); failed != nil {
		for _, row := range rows {
			if row == failed {
				return rows
			}
		}
		return append([]*TaskNode{failed}, rows[1:]...)
	}
	return rows
}

func (m *Model) renderTaskRow(task *TaskNode) string {
	indent := strings.Repeat("  ", task.Depth)

	switch task.Status {
	case StatusDone:
		return indent + taskDoneStyle.Render(style.Check+" "+task.Name)
	case StatusError:
		row := indent + taskErrorStyle.Render(style.Cross+" "+task.Name)
		if task.Err != nil {
			row += "\n" + indent + "  " + mutedStyle.Render(task.Err.Error())
		}
		return row
	default:
		icon := style.Dot
		if !m.DisableTick {
			icon = m.Spinner.View()
		}
		return indent + taskRunningStyle.Render(icon+" "+task.Name)
	}
}
