package tasks_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports/mocks"
	"go.trai.ch/lift/internal/installer/tasks"
	"go.uber.org/mock/gomock"
)

// harness wires tasks.Services to mocks and a temporary install directory.
type harness struct {
	ctrl      *gomock.Controller
	svc       *tasks.Services
	state     *domain.Installation
	dir       string
	sources   *mocks.MockSourceRegistry
	source    *mocks.MockReleaseSource
	fetcher   *mocks.MockFetcher
	auth      *mocks.MockAuthenticator
	archives  *mocks.MockArchiveOpener
	shortcuts *mocks.MockShortcutCreator
	processes *mocks.MockProcessLister
	store     *mocks.MockManifestStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	h := &harness{
		ctrl:      ctrl,
		dir:       t.TempDir(),
		sources:   mocks.NewMockSourceRegistry(ctrl),
		source:    mocks.NewMockReleaseSource(ctrl),
		fetcher:   mocks.NewMockFetcher(ctrl),
		auth:      mocks.NewMockAuthenticator(ctrl),
		archives:  mocks.NewMockArchiveOpener(ctrl),
		shortcuts: mocks.NewMockShortcutCreator(ctrl),
		processes: mocks.NewMockProcessLister(ctrl),
		store:     mocks.NewMockManifestStore(ctrl),
	}
	h.svc = tasks.NewServices(h.sources, h.fetcher, h.auth, h.archives, h.shortcuts, h.processes, h.store, logger)
	h.svc.PID = 1

	exe := filepath.Join(t.TempDir(), "lift")
	if err := os.WriteFile(exe, []byte("binary"), 0o600); err != nil {
		t.Fatalf("failed to write fake executable: %v", err)
	}
	h.svc.Executable = func() (string, error) { return exe, nil }

	h.state = domain.NewInstallation(domain.BaseAttributes{Name: "yuzu"})
	h.state.InstallPath = h.dir
	h.state.Config = &domain.Config{
		Packages: []domain.PackageDescription{{
			Name: "pkgA",
			Source: domain.PackageSource{
				Name:  "github",
				Match: `^pkgA-#PLATFORM#\.zip$`,
			},
			Shortcuts: []domain.PackageShortcut{{Name: "Package A", RelativePath: "bin/a"}},
		}},
	}
	return h
}

// entry is one file of a fake archive.
type entry struct {
	name string
	data string
}

// archiveOf returns a mock archive walking the given entries.
func archiveOf(ctrl *gomock.Controller, entries ...entry) *mocks.MockArchive {
	a := mocks.NewMockArchive(ctrl)
	a.EXPECT().Walk(gomock.Any()).DoAndReturn(
		func(fn func(index, total int, name string, r io.Reader) error) error {
			for i, e := range entries {
				if err := fn(i, len(entries), e.name, strings.NewReader(e.data)); err != nil {
					return err
				}
			}
			return nil
		}).AnyTimes()
	return a
}
