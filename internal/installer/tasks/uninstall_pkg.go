package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/zerr"
)

// UninstallPackage removes a package's files and its manifest entry. When
// optional, a package that is not installed is not an error.
type UninstallPackage struct {
	svc      *Services
	name     string
	optional bool
}

// NewUninstallPackage returns the uninstall task for the named package.
func NewUninstallPackage(svc *Services, name string, optional bool) *UninstallPackage {
	return &UninstallPackage{svc: svc, name: name, optional: optional}
}

// Execute deletes files first and then directories, deepest first. Individual
// deletion failures are logged.
func (t *UninstallPackage) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 1)

	dir, err := state.Path()
	if err != nil {
		return domain.TaskParam{}, err
	}

	pkg, ok := state.Manifest.Remove(t.name)
	if !ok {
		if t.optional {
			return domain.NoneParam(), nil
		}
		return domain.TaskParam{}, zerr.With(domain.ErrPackageNotInstalled, "package", t.name)
	}

	m(domain.DisplayMessage(fmt.Sprintf("Uninstalling package %q...", t.name), 0))

	var files, dirs []string
	for _, name := range pkg.Files {
		info, err := os.Lstat(filepath.Join(dir, filepath.FromSlash(name)))
		if err == nil && info.IsDir() {
			dirs = append(dirs, name)
		} else {
			files = append(files, name)
		}
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		return depth(dirs[i]) > depth(dirs[j])
	})

	total := len(pkg.Files)
	for i, name := range append(files, dirs...) {
		m(domain.DisplayMessage(fmt.Sprintf("Deleting %s (%d of %d)", name, i+1, total), float64(i)/float64(total)))

		target := filepath.Join(dir, filepath.FromSlash(name))
		t.svc.Logger.Info(fmt.Sprintf("Deleting %s", target))
		if err := os.Remove(target); err != nil {
			t.svc.Logger.Error(zerr.With(zerr.Wrap(err, "failed to delete file"), "path", target))
		}
	}

	return domain.NoneParam(), nil
}

func depth(name string) int {
	return strings.Count(filepath.ToSlash(name), "/")
}

// Dependencies removes the package's shortcuts first and saves the manifest after.
func (t *UninstallPackage) Dependencies() []tree.Dependency {
	return []tree.Dependency{
		tree.PreTask(NewUninstallShortcuts(t.svc, t.name, t.optional)),
		tree.PostTask(NewSaveDatabase(t.svc)),
	}
}

// Name identifies the task.
func (t *UninstallPackage) Name() string {
	return fmt.Sprintf("UninstallPackageTask (for %q, optional = %t)", t.name, t.optional)
}
