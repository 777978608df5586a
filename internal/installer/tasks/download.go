package tasks

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/zerr"
)

// DownloadPackage fetches a resolved file into memory. It returns Break when
// the installed copy already has the resolved version.
type DownloadPackage struct {
	svc  *Services
	name string
}

// NewDownloadPackage returns the download task for the named package.
func NewDownloadPackage(svc *Services, name string) *DownloadPackage {
	return &DownloadPackage{svc: svc, name: name}
}

// Execute streams the file and reports byte progress.
func (t *DownloadPackage) Execute(
	ctx context.Context,
	inputs []domain.TaskParam,
	state *domain.Installation,
	m tree.Messenger,
) (domain.TaskParam, error) {
	mustInputs(t.Name(), inputs, 1)
	file := mustKind(t.Name(), inputs, 0, domain.ParamAuthenticatedFile)

	if installed, ok := state.Manifest.Find(t.name); ok && installed.Version.Equal(file.Version) {
		t.svc.Logger.Info(fmt.Sprintf("%q is already up to date.", t.name))
		return domain.BreakParam(), nil
	}

	if file.File.RequiresAuthorization && !file.HasToken {
		return domain.TaskParam{}, zerr.With(domain.ErrUnauthorized, "package", t.name)
	}

	m(domain.DisplayMessage(fmt.Sprintf("Downloading package %q...", t.name), 0))

	var (
		buf        bytes.Buffer
		downloaded uint64
	)
	err := t.svc.Fetcher.Stream(ctx, file.File.URL, file.Token, func(chunk []byte, size uint64) {
		buf.Write(chunk)
		downloaded += uint64(len(chunk))

		progress := 0.0
		if size > 0 {
			progress = float64(downloaded) / float64(size)
		}
		m(domain.DisplayMessage(fmt.Sprintf("Downloading %s (%s of %s)...",
			t.name, humanize.Bytes(downloaded), humanize.Bytes(size)), progress))
	})
	if err != nil {
		return domain.TaskParam{}, zerr.With(err, "package", t.name)
	}

	return domain.FileContentsParam(file.Version, file.File, buf.Bytes()), nil
}

// Dependencies checks authorization, which resolves the package.
func (t *DownloadPackage) Dependencies() []tree.Dependency {
	return []tree.Dependency{
		tree.PreTask(NewCheckAuthorization(t.svc, t.name)),
	}
}

// Name identifies the task.
func (t *DownloadPackage) Name() string {
	return fmt.Sprintf("DownloadPackageTask (for %q)", t.name)
}
