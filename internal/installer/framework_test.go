package installer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports/mocks"
	"go.trai.ch/lift/internal/installer"
	"go.trai.ch/lift/internal/installer/tasks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	fw       *installer.Framework
	svc      *tasks.Services
	loader   *mocks.MockConfigLoader
	launcher *mocks.MockLauncher
	store    *mocks.MockManifestStore
	fetcher  *mocks.MockFetcher
	exe      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		launcher: mocks.NewMockLauncher(ctrl),
		store:    mocks.NewMockManifestStore(ctrl),
		fetcher:  mocks.NewMockFetcher(ctrl),
		exe:      filepath.Join(t.TempDir(), "maintenancetool"),
	}
	f.svc = tasks.NewServices(
		mocks.NewMockSourceRegistry(ctrl),
		f.fetcher,
		mocks.NewMockAuthenticator(ctrl),
		mocks.NewMockArchiveOpener(ctrl),
		mocks.NewMockShortcutCreator(ctrl),
		mocks.NewMockProcessLister(ctrl),
		f.store,
		logger,
	)
	f.svc.Executable = func() (string, error) { return f.exe, nil }

	attrs := domain.BaseAttributes{Name: "yuzu", TargetURL: "https://example.com/config.toml"}
	f.fw = installer.New(attrs, f.svc, f.loader, f.launcher)
	return f
}

func config(newTool *string) *domain.Config {
	return &domain.Config{
		NewTool:  newTool,
		Packages: []domain.PackageDescription{{Name: "pkgA"}, {Name: "pkgB"}},
	}
}

func TestFramework_SetInstallDirLoadsManifest(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	manifest := domain.NewManifest()
	manifest.Packages = append(manifest.Packages, domain.LocalInstallation{Name: "pkgA", Version: domain.NewNumber(1)})
	f.store.EXPECT().Exists(dir).Return(true)
	f.store.EXPECT().Load(dir).Return(&manifest, nil)

	require.NoError(t, f.fw.SetInstallDir(dir))

	status := f.fw.Status()
	assert.True(t, status.PreexistingInstall)
	assert.Equal(t, dir, status.InstallPath)
	assert.Equal(t, []string{"pkgA"}, status.Database.Names())
}

func TestFramework_LoadConfigIsCached(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadConfig(gomock.Any(), "https://example.com/config.toml").Return(config(nil), nil).Times(1)

	for range 3 {
		cfg, err := f.fw.LoadConfig(context.Background())
		require.NoError(t, err)
		assert.Len(t, cfg.Packages, 2)
	}
}

func TestFramework_Packages(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	manifest := domain.NewManifest()
	manifest.Packages = append(manifest.Packages, domain.LocalInstallation{Name: "pkgB"})
	f.store.EXPECT().Exists(dir).Return(true)
	f.store.EXPECT().Load(dir).Return(&manifest, nil)
	f.loader.EXPECT().LoadConfig(gomock.Any(), gomock.Any()).Return(config(nil), nil)
	require.NoError(t, f.fw.SetInstallDir(dir))

	pkgs, err := f.fw.Packages(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	assert.False(t, pkgs[0].Installed)
	assert.True(t, pkgs[1].Installed)
}

func TestFramework_InstallValidatesSelection(t *testing.T) {
	f := newFixture(t)

	err := f.fw.Install(context.Background(), installer.InstallOptions{}, nil)
	require.ErrorIs(t, err, domain.ErrNoPackagesSelected)

	f.loader.EXPECT().LoadConfig(gomock.Any(), gomock.Any()).Return(config(nil), nil)
	err = f.fw.Install(context.Background(), installer.InstallOptions{Items: []string{"ghost"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package could not be found")
}

func TestFramework_UninstallThenShutdown(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	manifest := domain.NewManifest()
	manifest.Packages = append(manifest.Packages, domain.LocalInstallation{Name: "pkgA"})
	f.store.EXPECT().Exists(dir).Return(true)
	f.store.EXPECT().Load(dir).Return(&manifest, nil)
	require.NoError(t, f.fw.SetInstallDir(dir))

	f.store.EXPECT().Save(dir, gomock.Any()).Return(nil).AnyTimes()
	f.store.EXPECT().Remove(dir).Return(nil)

	var last domain.TaskMessage
	err := f.fw.Uninstall(context.Background(), func(m domain.TaskMessage) { last = m })
	require.NoError(t, err)
	assert.InDelta(t, 1.0, last.Progress, 1e-9)

	status := f.fw.Status()
	assert.Empty(t, status.Database.Packages)

	f.launcher.EXPECT().BurnOnExit(dir).Return(nil)
	require.NoError(t, f.fw.Shutdown())
}

func TestFramework_ShutdownStartsLauncherTarget(t *testing.T) {
	f := newFixture(t)
	f.fw.SetLauncher("/opt/yuzu/yuzu")
	f.launcher.EXPECT().Spawn("/opt/yuzu/yuzu").Return(nil)

	require.NoError(t, f.fw.Shutdown())
	assert.True(t, f.fw.Status().IsLauncher)
}

func TestFramework_UpdateUpdater(t *testing.T) {
	f := newFixture(t)
	tool := "https://example.com/maintenancetool"
	f.loader.EXPECT().LoadConfig(gomock.Any(), gomock.Any()).Return(config(&tool), nil)
	f.fetcher.EXPECT().Stream(gomock.Any(), tool, "", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, fn func([]byte, uint64)) error {
			fn([]byte("new binary"), 10)
			return nil
		})

	dir := filepath.Dir(f.exe)
	next := filepath.Join(dir, domain.NewToolFileName())
	f.launcher.EXPECT().Spawn(next, "--swap", f.exe).Return(nil)

	var texts []string
	err := f.fw.UpdateUpdater(context.Background(), []string{"install", "pkgA"}, func(m domain.TaskMessage) {
		texts = append(texts, m.Text)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Downloading self-update (10 B of 10 B)..."}, texts)

	data, err := os.ReadFile(next)
	require.NoError(t, err)
	assert.Equal(t, "new binary", string(data))

	args, ok, err := installer.RestoreArgs(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"install", "pkgA"}, args)
}

func TestFramework_UpdateUpdaterWithoutNewTool(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadConfig(gomock.Any(), gomock.Any()).Return(config(nil), nil)

	err := f.fw.UpdateUpdater(context.Background(), nil, nil)
	require.ErrorIs(t, err, domain.ErrNoUpdaterAvailable)
}

func TestFramework_Verify(t *testing.T) {
	f := newFixture(t)
	verifier := mocks.NewMockInstallVerifier(gomock.NewController(t))

	_, err := f.fw.Verify(verifier)
	require.ErrorIs(t, err, domain.ErrNoInstallPath)

	dir := t.TempDir()
	f.store.EXPECT().Exists(dir).Return(false)
	require.NoError(t, f.fw.SetInstallDir(dir))

	want := []domain.FileIssue{{Path: "stray", Kind: domain.IssueUntracked}}
	verifier.EXPECT().Verify(dir, gomock.Any()).Return(want, nil)

	issues, err := f.fw.Verify(verifier)
	require.NoError(t, err)
	assert.Equal(t, want, issues)
}
