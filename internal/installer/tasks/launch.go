package tasks

import (
	"context"
	"path/filepath"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
)

// LaunchOnExit selects the first shortcut of the first installed package to
// be started when the installer exits.
type LaunchOnExit struct{}

// NewLaunchOnExit returns the launch selection task.
func NewLaunchOnExit() *LaunchOnExit {
	return &LaunchOnExit{}
}

// Execute sets Installation.LauncherPath. Missing metadata leaves it unset.
func (t *LaunchOnExit) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	_ tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)

	if len(state.Manifest.Packages) == 0 {
		return domain.NoneParam(), nil
	}
	dir, err := state.Path()
	if err != nil {
		return domain.TaskParam{}, err
	}
	desc, err := state.Package(state.Manifest.Packages[0].Name)
	if err != nil || len(desc.Shortcuts) == 0 {
		return domain.NoneParam(), nil
	}

	state.LauncherPath = filepath.Join(dir, filepath.FromSlash(desc.Shortcuts[0].RelativePath))
	return domain.NoneParam(), nil
}

// Dependencies returns nothing.
func (t *LaunchOnExit) Dependencies() []tree.Dependency {
	return nil
}

// Name identifies the task.
func (t *LaunchOnExit) Name() string {
	return "LaunchOnExitTask"
}
