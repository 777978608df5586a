package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples the operation's event stream from presentation,
// allowing the same events to drive either a rich TUI or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called with the rendered dependency tree before execution.
	OnPlanEmit(plan string)

	// OnTaskStart is called when a task begins execution.
	// parentID is empty for the root task.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskComplete is called when a task finishes; err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)

	// OnProgress is called for every status message with the overall fraction.
	OnProgress(text string, fraction float64)

	// OnPackageInstalled is called once per installed package.
	OnPackageInstalled()
}
