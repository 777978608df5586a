package tree_test

import (
	"context"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
)

// journal records the order in which fake tasks run.
type journal struct {
	order  []string
	inputs map[string][]domain.TaskParam
}

func newJournal() *journal {
	return &journal{inputs: make(map[string][]domain.TaskParam)}
}

func (j *journal) ran(name string) bool {
	for _, n := range j.order {
		if n == name {
			return true
		}
	}
	return false
}

// fakeTask is a configurable tree.Task.
type fakeTask struct {
	name     string
	deps     func() []tree.Dependency
	result   domain.TaskParam
	err      error
	progress []float64
	extra    []domain.TaskMessage
	journal  *journal
}

func (f *fakeTask) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	_ *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	if f.journal != nil {
		f.journal.order = append(f.journal.order, f.name)
		f.journal.inputs[f.name] = inputs
	}
	for _, p := range f.progress {
		m(domain.DisplayMessage(f.name, p))
	}
	for _, msg := range f.extra {
		m(msg)
	}
	return f.result, f.err
}

func (f *fakeTask) Dependencies() []tree.Dependency {
	if f.deps == nil {
		return nil
	}
	return f.deps()
}

func (f *fakeTask) Name() string {
	return f.name
}

// leaf returns a task without dependencies that reports completion.
func leaf(j *journal, name string) *fakeTask {
	return &fakeTask{name: name, journal: j, progress: []float64{1}}
}

func with(t *fakeTask, deps ...tree.Dependency) *fakeTask {
	t.deps = func() []tree.Dependency { return deps }
	return t
}

// collect returns a messenger appending every progress value to dst.
func collect(dst *[]float64) tree.Messenger {
	return func(msg domain.TaskMessage) {
		if msg.Kind == domain.TaskDisplayMessage {
			*dst = append(*dst, msg.Progress)
		}
	}
}
