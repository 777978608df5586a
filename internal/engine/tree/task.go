package tree

import (
	"context"

	"go.trai.ch/lift/internal/core/domain"
)

// Ordering places a dependency before or after the task that declares it.
type Ordering int

const (
	// Pre dependencies run first; their results become the task's inputs.
	Pre Ordering = iota
	// Post dependencies run after the task; their results are discarded.
	Post
)

func (o Ordering) String() string {
	if o == Post {
		return "Post"
	}
	return "Pre"
}

// Messenger receives the progress messages of a task.
type Messenger func(domain.TaskMessage)

// Dependency pairs a task with its ordering relative to the declaring task.
type Dependency struct {
	Ordering Ordering
	Task     Task
}

// PreTask declares a Pre dependency.
func PreTask(t Task) Dependency {
	return Dependency{Ordering: Pre, Task: t}
}

// PostTask declares a Post dependency.
func PostTask(t Task) Dependency {
	return Dependency{Ordering: Post, Task: t}
}

// Task is a unit of installer work.
//
// Execute receives the results of the Pre dependencies in declaration order.
// When a Pre dependency returned Break, inputs ends with that Break and the
// remaining Pre dependencies were not run.
type Task interface {
	Execute(ctx context.Context, inputs []domain.TaskParam, state *domain.Installation, m Messenger) (domain.TaskParam, error)

	// Dependencies is evaluated once, when the tree is built.
	Dependencies() []Dependency

	// Name identifies the task and its parameters in diagnostics.
	Name() string
}
