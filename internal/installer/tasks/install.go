package tasks

import (
	"context"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
)

// InstallPlan describes the end state an install operation reaches.
type InstallPlan struct {
	// Items are the packages to install or update.
	Items []string
	// UninstallItems are installed packages that were deselected.
	UninstallItems []string
	// Fresh requires an empty directory and installs the maintenance tool.
	Fresh bool
	// Repair wipes the previous install first.
	Repair bool
	// DesktopShortcuts also creates desktop shortcuts for every item.
	DesktopShortcuts bool
	// LaunchOnExit starts the first installed package when the installer exits.
	LaunchOnExit bool
}

// Install is the root task of an install operation. New packages are
// installed before deselected ones are removed.
type Install struct {
	svc  *Services
	plan InstallPlan
}

// NewInstall returns the root install task.
func NewInstall(svc *Services, plan InstallPlan) *Install {
	return &Install{svc: svc, plan: plan}
}

// Execute reports completion; the work happens in the dependencies.
func (t *Install) Execute(
	_ context.Context,
	_ []domain.TaskParam,
	_ *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	m(domain.DisplayMessage("Wrapping up...", 0))
	m(domain.DisplayMessage("Installation complete", 1))
	return domain.NoneParam(), nil
}

// Dependencies lists every step of the install as a Pre dependency.
func (t *Install) Dependencies() []tree.Dependency {
	deps := []tree.Dependency{
		tree.PreTask(NewEnsureOnlyInstance(t.svc)),
	}
	if t.plan.Repair {
		deps = append(deps, tree.PreTask(NewRemoveTargetDir()))
	}
	deps = append(deps, tree.PreTask(NewVerifyInstallDir(t.plan.Fresh)))

	for _, item := range t.plan.Items {
		deps = append(deps, tree.PreTask(NewInstallPackage(t.svc, item)))
	}
	if t.plan.DesktopShortcuts {
		for _, item := range t.plan.Items {
			deps = append(deps, tree.PreTask(NewInstallDesktopShortcut(t.svc, item, true)))
		}
	}
	for _, item := range t.plan.UninstallItems {
		deps = append(deps, tree.PreTask(NewUninstallPackage(t.svc, item, false)))
	}

	if t.plan.Fresh {
		deps = append(deps,
			tree.PreTask(NewSaveExecutable(t.svc)),
			tree.PreTask(NewInstallGlobalShortcuts(t.svc)),
		)
	}
	if t.plan.LaunchOnExit {
		deps = append(deps, tree.PreTask(NewLaunchOnExit()))
	}
	return deps
}

// Name identifies the task.
func (t *Install) Name() string {
	return "InstallTask"
}

// Uninstall is the root task that removes every listed package.
type Uninstall struct {
	svc   *Services
	items []string
}

// NewUninstall returns the root uninstall task.
func NewUninstall(svc *Services, items []string) *Uninstall {
	return &Uninstall{svc: svc, items: items}
}

// Execute reports completion.
func (t *Uninstall) Execute(
	_ context.Context,
	_ []domain.TaskParam,
	_ *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	m(domain.DisplayMessage("Wrapping up...", 0))
	m(domain.DisplayMessage("Uninstall complete", 1))
	return domain.NoneParam(), nil
}

// Dependencies uninstalls each package.
func (t *Uninstall) Dependencies() []tree.Dependency {
	deps := make([]tree.Dependency, 0, len(t.items))
	for _, item := range t.items {
		deps = append(deps, tree.PreTask(NewUninstallPackage(t.svc, item, false)))
	}
	return deps
}

// Name identifies the task.
func (t *Uninstall) Name() string {
	return "UninstallTask"
}
