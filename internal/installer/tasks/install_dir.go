package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/zerr"
)

// VerifyInstallDir creates the install directory. A clean install requires
// the directory to be empty.
type VerifyInstallDir struct {
	clean bool
}

// NewVerifyInstallDir returns the install directory check.
func NewVerifyInstallDir(clean bool) *VerifyInstallDir {
	return &VerifyInstallDir{clean: clean}
}

// Execute creates and inspects the directory.
func (t *VerifyInstallDir) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)

	m(domain.DisplayMessage("Polling installation directory...", 0))

	dir, err := state.Path()
	if err != nil {
		return domain.TaskParam{}, err
	}
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.TaskParam{}, zerr.With(zerr.Wrap(err, domain.ErrInstallDirCreateFailed.Error()), "path", dir)
	}

	if t.clean {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return domain.TaskParam{}, zerr.With(zerr.Wrap(err, domain.ErrInstallDirCreateFailed.Error()), "path", dir)
		}
		if len(entries) != 0 {
			return domain.TaskParam{}, zerr.With(domain.ErrInstallDirNotEmpty, "path", dir)
		}
	}

	return domain.NoneParam(), nil
}

// Dependencies returns nothing.
func (t *VerifyInstallDir) Dependencies() []tree.Dependency {
	return nil
}

// Name identifies the task.
func (t *VerifyInstallDir) Name() string {
	return fmt.Sprintf("VerifyInstallDirTask (with clean-install = %t)", t.clean)
}

// RemoveTargetDir wipes a previous install before a repair. The maintenance
// tool survives when the install predates this session.
type RemoveTargetDir struct{}

// NewRemoveTargetDir returns the wipe task.
func NewRemoveTargetDir() *RemoveTargetDir {
	return &RemoveTargetDir{}
}

// Execute clears the manifest packages and the directory contents.
func (t *RemoveTargetDir) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)

	m(domain.DisplayMessage("Removing previous install...", 0.1))

	state.Manifest.Packages = []domain.LocalInstallation{}

	dir, err := state.Path()
	if err != nil {
		return domain.TaskParam{}, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return domain.TaskParam{}, zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", dir)
	}

	if !state.PreexistingInstall {
		if err := os.RemoveAll(dir); err != nil {
			return domain.TaskParam{}, zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", dir)
		}
		return domain.NoneParam(), nil
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), domain.ToolName) {
			continue
		}
		target := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(target); err != nil {
			return domain.TaskParam{}, zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", target)
		}
	}

	return domain.NoneParam(), nil
}

// Dependencies returns nothing.
func (t *RemoveTargetDir) Dependencies() []tree.Dependency {
	return nil
}

// Name identifies the task.
func (t *RemoveTargetDir) Name() string {
	return "RemoveTargetDirTask"
}
