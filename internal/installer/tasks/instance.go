package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/zerr"
)

// EnsureOnlyInstance fails when another maintenance tool or an installed
// executable is running.
type EnsureOnlyInstance struct {
	svc *Services
}

// NewEnsureOnlyInstance returns the single instance check.
func NewEnsureOnlyInstance(svc *Services) *EnsureOnlyInstance {
	return &EnsureOnlyInstance{svc: svc}
}

// Execute inspects the process table.
func (t *EnsureOnlyInstance) Execute(
	ctx context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	_ tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)

	procs, err := t.svc.Processes.List(ctx)
	if err != nil {
		t.svc.Logger.Warn(fmt.Sprintf("unable to list processes: %v", err))
		return domain.NoneParam(), nil
	}

	for _, p := range procs {
		if p.PID == t.svc.PID {
			continue
		}
		exe := filepath.ToSlash(p.Exe)
		if exe == "" {
			exe = p.Name
		}

		if isTool(exe) {
			return domain.TaskParam{}, zerr.With(domain.ErrToolAlreadyRunning, "pid", p.PID)
		}
		for _, pkg := range state.Manifest.Packages {
			for _, file := range pkg.Files {
				if exe == file || strings.HasSuffix(exe, "/"+file) {
					return domain.TaskParam{}, zerr.With(
						zerr.With(domain.ErrApplicationRunning, "pid", p.PID), "file", file)
				}
			}
		}
	}

	return domain.NoneParam(), nil
}

func isTool(exe string) bool {
	return strings.HasSuffix(exe, domain.ToolName) || strings.HasSuffix(exe, domain.ToolName+".exe")
}

// Dependencies returns nothing.
func (t *EnsureOnlyInstance) Dependencies() []tree.Dependency {
	return nil
}

// Name identifies the task.
func (t *EnsureOnlyInstance) Name() string {
	return "EnsureOnlyInstanceTask"
}
