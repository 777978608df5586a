package tui

import "time"

// MsgPlan carries the rendered dependency tree of an operation.
type MsgPlan struct {
	Plan string
}

// MsgTaskStart indicates a task span has started.
type MsgTaskStart struct {
	SpanID    string
	ParentID  string
	Name      string
	StartTime time.Time
}

// MsgTaskComplete indicates a task span has finished.
type MsgTaskComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}

// MsgProgress updates the status line and the overall progress.
type MsgProgress struct {
	Text     string
	Fraction float64
}

// MsgPackageInstalled is sent once per installed package.
type MsgPackageInstalled struct{}
