package tree

import (
	"context"
	"strings"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
)

// DependencyTree is a task together with the trees of its dependencies.
type DependencyTree struct {
	task     Task
	children []child
	tracer   ports.Tracer
}

type child struct {
	ordering Ordering
	tree     *DependencyTree
}

type options struct {
	tracer ports.Tracer
}

// Option configures Build.
type Option func(*options)

// WithTracer wraps the execution of every node in a span named after its task.
func WithTracer(tracer ports.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// Build resolves the dependencies of task recursively. It fails with
// domain.ErrCycleDetected when a task depends on one of its ancestors.
func Build(task Task, opts ...Option) (*DependencyTree, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return build(task, nil, o.tracer)
}

func build(task Task, path []string, tracer ports.Tracer) (*DependencyTree, error) {
	name := task.Name()
	for _, ancestor := range path {
		if ancestor == name {
			return nil, buildCycleError(path, name)
		}
	}
	path = append(path, name)

	deps := task.Dependencies()
	t := &DependencyTree{
		task:     task,
		children: make([]child, 0, len(deps)),
		tracer:   tracer,
	}
	for _, dep := range deps {
		sub, err := build(dep.Task, path, tracer)
		if err != nil {
			return nil, err
		}
		t.children = append(t.children, child{ordering: dep.Ordering, tree: sub})
	}
	return t, nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []string, name string) error {
	start := 0
	for i, ancestor := range path {
		if ancestor == name {
			start = i
			break
		}
	}
	cycle := strings.Join(append(path[start:len(path):len(path)], name), " -> ")
	return zerr.With(domain.ErrCycleDetected, "cycle", cycle)
}

// Task returns the task at the root of t.
func (t *DependencyTree) Task() Task {
	return t.task
}

// Size returns the number of nodes in t.
func (t *DependencyTree) Size() int {
	n := 1
	for _, c := range t.children {
		n += c.tree.Size()
	}
	return n
}

// Execute runs the Pre dependencies, the task itself and then the Post
// dependencies, strictly in order. Every dependency and the task are one equal
// unit of this node's progress. The first error aborts the run and is returned
// unchanged.
func (t *DependencyTree) Execute(ctx context.Context, state *domain.Installation, m Messenger) (domain.TaskParam, error) {
	if m == nil {
		m = func(domain.TaskMessage) {}
	}
	if t.tracer == nil {
		return t.execute(ctx, state, m)
	}

	ctx, span := t.tracer.Start(ctx, t.task.Name())
	defer span.End()

	result, err := t.execute(ctx, state, m)
	if err != nil {
		span.RecordError(err)
		return result, err
	}
	if result.IsBreak() {
		span.SetAttribute("result", "break")
	}
	return result, nil
}

func (t *DependencyTree) execute(ctx context.Context, state *domain.Installation, m Messenger) (domain.TaskParam, error) {
	total := float64(len(t.children) + 1)
	pre := 0
	for _, c := range t.children {
		if c.ordering == Pre {
			pre++
		}
	}

	inputs := make([]domain.TaskParam, 0, pre)
	for slot, c := range t.dependencies(Pre) {
		result, err := c.tree.Execute(ctx, state, rescale(m, slot, total))
		if err != nil {
			return domain.TaskParam{}, err
		}
		inputs = append(inputs, result)
		if result.IsBreak() {
			break
		}
	}

	result, err := t.task.Execute(ctx, inputs, state, rescale(m, pre, total))
	if err != nil {
		return domain.TaskParam{}, err
	}
	if result.IsBreak() {
		return result, nil
	}

	for i, c := range t.dependencies(Post) {
		discarded, err := c.tree.Execute(ctx, state, rescale(m, pre+1+i, total))
		if err != nil {
			return domain.TaskParam{}, err
		}
		if discarded.IsBreak() {
			break
		}
	}

	return result, nil
}

func (t *DependencyTree) dependencies(ordering Ordering) []child {
	out := make([]child, 0, len(t.children))
	for _, c := range t.children {
		if c.ordering == ordering {
			out = append(out, c)
		}
	}
	return out
}

// rescale maps a local fraction into the given slot of total equal units.
func rescale(m Messenger, slot int, total float64) Messenger {
	offset := float64(slot) / total
	return func(msg domain.TaskMessage) {
		if msg.Kind == domain.TaskDisplayMessage {
			msg.Progress = msg.Progress/total + offset
		}
		m(msg)
	}
}
