package tasks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/zerr"
)

// packageShortcuts builds the launcher descriptors of a configured package.
// Shortcuts start the maintenance tool, which launches the package executable.
func packageShortcuts(dir string, pkg *domain.PackageDescription) []domain.Shortcut {
	tool := filepath.Join(dir, domain.ToolFileName())
	out := make([]domain.Shortcut, 0, len(pkg.Shortcuts))
	for _, s := range pkg.Shortcuts {
		exe := filepath.Join(dir, filepath.FromSlash(s.RelativePath))
		out = append(out, domain.Shortcut{
			Name:        s.Name,
			Description: s.Description,
			Target:      tool,
			Args:        fmt.Sprintf("--launcher \"%s\"", exe),
			WorkingDir:  dir,
			ExePath:     exe,
		})
	}
	return out
}

// InstallShortcuts creates the configured shortcuts of a package.
type InstallShortcuts struct {
	svc  *Services
	name string
}

// NewInstallShortcuts returns the shortcut task for the named package.
func NewInstallShortcuts(svc *Services, name string) *InstallShortcuts {
	return &InstallShortcuts{svc: svc, name: name}
}

// Execute returns the paths of the created shortcuts.
func (t *InstallShortcuts) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)

	m(domain.DisplayMessage(fmt.Sprintf("Generating shortcuts for package %q...", t.name), 0))

	dir, err := state.Path()
	if err != nil {
		return domain.TaskParam{}, err
	}
	pkg, err := state.Package(t.name)
	if err != nil {
		return domain.TaskParam{}, err
	}

	created := []string{}
	for _, s := range packageShortcuts(dir, pkg) {
		p, err := t.svc.Shortcuts.Create(s)
		if err != nil {
			return domain.TaskParam{}, zerr.With(zerr.Wrap(err, domain.ErrShortcutFailed.Error()), "shortcut", s.Name)
		}
		if p != "" {
			created = append(created, p)
		}
	}

	return domain.GeneratedShortcutsParam(created), nil
}

// Dependencies returns nothing.
func (t *InstallShortcuts) Dependencies() []tree.Dependency {
	return nil
}

// Name identifies the task.
func (t *InstallShortcuts) Name() string {
	return fmt.Sprintf("InstallShortcutsTask (for %q)", t.name)
}

// UninstallShortcuts deletes the shortcuts recorded for a package.
type UninstallShortcuts struct {
	svc      *Services
	name     string
	optional bool
}

// NewUninstallShortcuts returns the shortcut removal task for the named package.
func NewUninstallShortcuts(svc *Services, name string, optional bool) *UninstallShortcuts {
	return &UninstallShortcuts{svc: svc, name: name, optional: optional}
}

// Execute removes every recorded shortcut, logging failures.
func (t *UninstallShortcuts) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)

	pkg, ok := state.Manifest.Find(t.name)
	if !ok {
		if t.optional {
			return domain.NoneParam(), nil
		}
		return domain.TaskParam{}, zerr.With(domain.ErrPackageNotInstalled, "package", t.name)
	}

	m(domain.DisplayMessage(fmt.Sprintf("Uninstalling shortcuts for package %q...", t.name), 0))

	total := len(pkg.Shortcuts)
	for i, shortcut := range pkg.Shortcuts {
		m(domain.DisplayMessage(fmt.Sprintf("Deleting shortcut %s (%d of %d)", shortcut, i+1, total),
			float64(i)/float64(total)))
		t.svc.Logger.Info(fmt.Sprintf("Deleting shortcut %s", shortcut))
		if err := os.Remove(shortcut); err != nil {
			t.svc.Logger.Error(zerr.With(zerr.Wrap(err, "failed to delete shortcut"), "path", shortcut))
		}
	}

	return domain.NoneParam(), nil
}

// Dependencies returns nothing.
func (t *UninstallShortcuts) Dependencies() []tree.Dependency {
	return nil
}

// Name identifies the task.
func (t *UninstallShortcuts) Name() string {
	return fmt.Sprintf("UninstallShortcutsTask (for %q, optional = %t)", t.name, t.optional)
}

// InstallDesktopShortcut creates desktop shortcuts for an installed package
// and adds them to its manifest entry.
type InstallDesktopShortcut struct {
	svc       *Services
	name      string
	shouldRun bool
}

// NewInstallDesktopShortcut returns the desktop shortcut task. It does nothing
// unless shouldRun is set.
func NewInstallDesktopShortcut(svc *Services, name string, shouldRun bool) *InstallDesktopShortcut {
	return &InstallDesktopShortcut{svc: svc, name: name, shouldRun: shouldRun}
}

// Execute creates the shortcuts.
func (t *InstallDesktopShortcut) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)
	if !t.shouldRun {
		return domain.GeneratedShortcutsParam([]string{}), nil
	}

	m(domain.DisplayMessage(fmt.Sprintf("Generating desktop shortcuts for package %q...", t.name), 0))

	dir, err := state.Path()
	if err != nil {
		return domain.TaskParam{}, err
	}
	pkg, err := state.Package(t.name)
	if err != nil {
		return domain.TaskParam{}, err
	}

	created := []string{}
	for _, s := range packageShortcuts(dir, pkg) {
		p, err := t.svc.Shortcuts.CreateDesktop(s)
		if err != nil {
			return domain.TaskParam{}, zerr.With(zerr.Wrap(err, domain.ErrShortcutFailed.Error()), "shortcut", s.Name)
		}
		if p != "" {
			created = append(created, p)
		}
	}

	if installed, ok := state.Manifest.Find(t.name); ok {
		installed.Shortcuts = append(installed.Shortcuts, created...)
	}

	return domain.GeneratedShortcutsParam(created), nil
}

// Dependencies saves the manifest when shortcuts are created.
func (t *InstallDesktopShortcut) Dependencies() []tree.Dependency {
	if !t.shouldRun {
		return nil
	}
	return []tree.Dependency{
		tree.PostTask(NewSaveDatabase(t.svc)),
	}
}

// Name identifies the task.
func (t *InstallDesktopShortcut) Name() string {
	return fmt.Sprintf("InstallDesktopShortcutTask (for %q, should-run = %t)", t.name, t.shouldRun)
}

// InstallGlobalShortcuts creates the maintenance tool shortcut.
type InstallGlobalShortcuts struct {
	svc *Services
}

// NewInstallGlobalShortcuts returns the global shortcut task.
func NewInstallGlobalShortcuts(svc *Services) *InstallGlobalShortcuts {
	return &InstallGlobalShortcuts{svc: svc}
}

// Execute creates the shortcut and records it in the manifest.
func (t *InstallGlobalShortcuts) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)

	m(domain.DisplayMessage("Generating global shortcut...", 0))

	dir, err := state.Path()
	if err != nil {
		return domain.TaskParam{}, err
	}

	app := state.Attributes.Name
	p, err := t.svc.Shortcuts.Create(domain.Shortcut{
		Name: app + " Maintenance Tool",
		Description: fmt.Sprintf(
			"Launch the %s Maintenance Tool to update, modify and uninstall the application.", app),
		Target:     filepath.Join(dir, domain.ToolFileName()),
		WorkingDir: dir,
	})
	if err != nil {
		return domain.TaskParam{}, zerr.Wrap(err, domain.ErrShortcutFailed.Error())
	}
	if p != "" {
		state.Manifest.Shortcuts = append(state.Manifest.Shortcuts, p)
	}

	return domain.NoneParam(), nil
}

// Dependencies saves the manifest afterwards.
func (t *InstallGlobalShortcuts) Dependencies() []tree.Dependency {
	return []tree.Dependency{
		tree.PostTask(NewSaveDatabase(t.svc)),
	}
}

// Name identifies the task.
func (t *InstallGlobalShortcuts) Name() string {
	return "InstallGlobalShortcutsTask"
}

// UninstallGlobalShortcuts deletes every global shortcut.
type UninstallGlobalShortcuts struct {
	svc *Services
}

// NewUninstallGlobalShortcuts returns the global shortcut removal task.
func NewUninstallGlobalShortcuts(svc *Services) *UninstallGlobalShortcuts {
	return &UninstallGlobalShortcuts{svc: svc}
}

// Execute pops and deletes the shortcuts. A shortcut that cannot be deleted
// fails the task; one that is already gone does not.
func (t *UninstallGlobalShortcuts) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 0)

	m(domain.DisplayMessage("Uninstalling global shortcut...", 0))

	for n := len(state.Manifest.Shortcuts); n > 0; n = len(state.Manifest.Shortcuts) {
		shortcut := state.Manifest.Shortcuts[n-1]
		state.Manifest.Shortcuts = state.Manifest.Shortcuts[:n-1]

		t.svc.Logger.Info(fmt.Sprintf("Deleting shortcut %s", shortcut))
		if err := os.Remove(shortcut); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return domain.TaskParam{}, zerr.With(zerr.Wrap(err, domain.ErrShortcutRemoveFailed.Error()), "path", shortcut)
		}
	}

	return domain.NoneParam(), nil
}

// Dependencies saves the manifest afterwards.
func (t *UninstallGlobalShortcuts) Dependencies() []tree.Dependency {
	return []tree.Dependency{
		tree.PostTask(NewSaveDatabase(t.svc)),
	}
}

// Name identifies the task.
func (t *UninstallGlobalShortcuts) Name() string {
	return "UninstallGlobalShortcutsTask"
}
