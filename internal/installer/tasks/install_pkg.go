package tasks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/zerr"
)

// InstallPackage extracts a downloaded archive into the install directory and
// records the new package in the manifest.
type InstallPackage struct {
	svc  *Services
	name string
}

// NewInstallPackage returns the install task for the named package.
func NewInstallPackage(svc *Services, name string) *InstallPackage {
	return &InstallPackage{svc: svc, name: name}
}

// Execute extracts the archive. A Break from the download means the package
// is current and nothing is done.
func (t *InstallPackage) Execute(
	_ context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	if n := len(inputs); n > 0 && inputs[n-1].IsBreak() {
		return domain.NoneParam(), nil
	}
	mustInputs(t.Name(), inputs, 3)
	contents := mustKind(t.Name(), inputs, 0, domain.ParamFileContents)
	mustKind(t.Name(), inputs, 1, domain.ParamNone)
	shortcuts := mustKind(t.Name(), inputs, 2, domain.ParamGeneratedShortcuts)

	m(domain.DisplayMessage(fmt.Sprintf("Installing package %q...", t.name), 0))

	dir, err := state.Path()
	if err != nil {
		return domain.TaskParam{}, err
	}
	pkg, err := state.Package(t.name)
	if err != nil {
		return domain.TaskParam{}, err
	}

	archive, err := t.svc.Archives.Open(contents.File.Name, contents.Contents)
	if err != nil {
		return domain.TaskParam{}, zerr.With(err, "file", contents.File.Name)
	}

	ex := newExtraction(dir, t.svc.Logger.Info)
	err = archive.Walk(func(index, total int, name string, r io.Reader) error {
		if total > 0 {
			m(domain.DisplayMessage(fmt.Sprintf("Extracting %s (%d of %d)", name, index+1, total),
				float64(index)/float64(total)))
		} else {
			m(domain.DisplayMessage(fmt.Sprintf("Extracting %s (%d of ??)", name, index+1), 0))
		}
		return ex.extract(name, r)
	})
	if err != nil {
		return domain.TaskParam{}, err
	}

	state.Manifest.Packages = append(state.Manifest.Packages, domain.LocalInstallation{
		Name:      pkg.Name,
		Version:   contents.Version,
		Files:     ex.files,
		Shortcuts: append([]string{}, shortcuts.Shortcuts...),
		Checksums: ex.checksums,
	})

	m(domain.PackageInstalledMessage())
	return domain.NoneParam(), nil
}

// Dependencies downloads the package, removes any previous version, creates
// its shortcuts and finally saves the manifest.
func (t *InstallPackage) Dependencies() []tree.Dependency {
	return []tree.Dependency{
		tree.PreTask(NewDownloadPackage(t.svc, t.name)),
		tree.PreTask(NewUninstallPackage(t.svc, t.name, true)),
		tree.PreTask(NewInstallShortcuts(t.svc, t.name)),
		tree.PostTask(NewSaveDatabase(t.svc)),
	}
}

// Name identifies the task.
func (t *InstallPackage) Name() string {
	return fmt.Sprintf("InstallPackageTask (for %q)", t.name)
}

// extraction writes archive entries below dir and tracks what it created.
type extraction struct {
	dir       string
	info      func(string)
	files     []string
	seen      map[string]bool
	checksums map[string]string
}

func newExtraction(dir string, info func(string)) *extraction {
	return &extraction{
		dir:       dir,
		info:      info,
		files:     []string{},
		seen:      make(map[string]bool),
		checksums: make(map[string]string),
	}
}

func (e *extraction) record(name string) {
	if !e.seen[name] {
		e.seen[name] = true
		e.files = append(e.files, name)
	}
}

// extract writes one entry. name uses forward slashes.
func (e *extraction) extract(name string, r io.Reader) error {
	name = path.Clean(name)
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return zerr.With(domain.ErrUnsafeArchivePath, "entry", name)
	}

	var parents []string
	for parent := path.Dir(name); parent != "."; parent = path.Dir(parent) {
		parents = append(parents, parent)
	}
	for i := len(parents) - 1; i >= 0; i-- {
		if !e.seen[parents[i]] {
			e.info(fmt.Sprintf("Creating dir: %s", parents[i]))
		}
		e.record(parents[i])
	}
	if len(parents) > 0 {
		if err := os.MkdirAll(filepath.Join(e.dir, filepath.FromSlash(parents[0])), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "path", parents[0])
		}
	}

	e.info(fmt.Sprintf("Creating file: %s", name))
	e.record(name)

	target := filepath.Join(e.dir, filepath.FromSlash(name))
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, domain.ExecutablePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "path", name)
	}
	defer func() { _ = f.Close() }()

	h := xxhash.New()
	if _, err := io.Copy(io.MultiWriter(f, h), r); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExtractFailed.Error()), "path", name)
	}
	e.checksums[name] = domain.FormatChecksum(h.Sum64())
	return nil
}
