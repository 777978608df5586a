package app_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lift/internal/adapters/archive"
	"go.trai.ch/lift/internal/adapters/config"
	"go.trai.ch/lift/internal/adapters/detector"
	"go.trai.ch/lift/internal/adapters/logger"
	"go.trai.ch/lift/internal/adapters/store"
	"go.trai.ch/lift/internal/adapters/telemetry"
	"go.trai.ch/lift/internal/app"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports/mocks"
	"go.trai.ch/lift/internal/installer"
	"go.trai.ch/lift/internal/installer/tasks"
	"go.uber.org/mock/gomock"
)

const (
	configURL = "https://example.com/config.toml"

	bootstrap = `name = "yuzu"
target_url = "https://example.com/config.toml"
`

	remoteConfig = `
[[packages]]
name = "pkgA"
default = true

[packages.source]
name = "github"
match = "^pkgA.zip$"

[packages.source.config]
repo = "yuzu-emu/pkgA"
`
)

type fixture struct {
	app      *app.App
	log      *logger.Logger
	exe      string
	dir      string
	fetcher  *mocks.MockFetcher
	launcher *mocks.MockLauncher
	verifier *mocks.MockInstallVerifier
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	logs     *bytes.Buffer
	boot     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	f := &fixture{
		dir:      t.TempDir(),
		fetcher:  mocks.NewMockFetcher(ctrl),
		launcher: mocks.NewMockLauncher(ctrl),
		verifier: mocks.NewMockInstallVerifier(ctrl),
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		logs:     &bytes.Buffer{},
	}
	f.exe = filepath.Join(f.dir, domain.ToolFileName())

	f.boot = filepath.Join(t.TempDir(), "bootstrap.toml")
	require.NoError(t, os.WriteFile(f.boot, []byte(bootstrap), 0o600))

	f.log = logger.New()
	f.log.SetOutput(f.logs)
	t.Cleanup(func() { _ = f.log.Close() })

	svc := tasks.NewServices(
		mocks.NewMockSourceRegistry(ctrl),
		f.fetcher,
		mocks.NewMockAuthenticator(ctrl),
		archive.NewOpener(),
		mocks.NewMockShortcutCreator(ctrl),
		mocks.NewMockProcessLister(ctrl),
		store.NewStore(),
		f.log,
	)
	svc.Executable = func() (string, error) { return f.exe, nil }

	f.app = app.New(config.NewLoader(f.fetcher, f.log), f.log, svc, f.launcher, f.verifier, telemetry.NewOTelTracer(telemetry.TaskScope)).
		WithOutput(f.stdout, f.stderr).
		WithEnvironment(detector.Environment{}).
		WithSleep(func(time.Duration) {})
	return f
}

func (f *fixture) init(t *testing.T, opts app.InitOptions) {
	t.Helper()
	opts.Bootstrap = f.boot
	require.NoError(t, f.app.Init(opts))
}

// installed writes a manifest with pkgA owning bin/a next to the executable.
func (f *fixture) installed(t *testing.T) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(f.dir, "bin"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "bin", "a"), []byte("a"), 0o600))

	manifest := domain.NewManifest()
	manifest.Packages = append(manifest.Packages, domain.LocalInstallation{
		Name:    "pkgA",
		Version: domain.NewNumber(1),
		Files:   []string{"bin/a", "bin"},
	})
	require.NoError(t, store.NewStore().Save(f.dir, &manifest))
}

func TestApp_InitFreshInstall(t *testing.T) {
	f := newFixture(t)
	f.init(t, app.InitOptions{})

	status := f.app.Framework().Status()
	assert.Empty(t, status.InstallPath)
	assert.False(t, status.PreexistingInstall)
	assert.Equal(t, "yuzu", f.app.Framework().Attributes().Name)
	assert.Contains(t, f.logs.String(), "Starting fresh install")

	_, err := os.Stat(filepath.Join(f.dir, "yuzu_installer.log"))
	require.NoError(t, err)
}

func TestApp_InitPicksUpExistingInstall(t *testing.T) {
	f := newFixture(t)
	f.installed(t)
	f.init(t, app.InitOptions{Launcher: "/opt/yuzu/yuzu"})

	status := f.app.Framework().Status()
	assert.Equal(t, f.dir, status.InstallPath)
	assert.True(t, status.PreexistingInstall)
	assert.True(t, status.IsLauncher)
	assert.Equal(t, []string{"pkgA"}, status.Database.Names())
	assert.Contains(t, f.logs.String(), "Using pre-existing metadata file")
}

func TestApp_InitRemovesPendingTool(t *testing.T) {
	f := newFixture(t)
	pending := filepath.Join(f.dir, domain.NewToolFileName())
	require.NoError(t, os.WriteFile(pending, []byte("new"), 0o600))

	f.init(t, app.InitOptions{})

	_, err := os.Stat(pending)
	assert.True(t, os.IsNotExist(err))
}

func TestApp_InitRejectsMissingBootstrap(t *testing.T) {
	f := newFixture(t)

	err := f.app.Init(app.InitOptions{Bootstrap: filepath.Join(t.TempDir(), "missing.toml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrBootstrapReadFailed.Error())
}

func TestApp_RequiresInit(t *testing.T) {
	f := newFixture(t)

	require.ErrorIs(t, f.app.Install(context.Background(), app.InstallOptions{}), domain.ErrNotInitialized)
	require.ErrorIs(t, f.app.Shutdown(), domain.ErrNotInitialized)
	_, err := f.app.Status(context.Background(), app.StatusOptions{})
	require.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestApp_InstallUnknownPackage(t *testing.T) {
	f := newFixture(t)
	f.init(t, app.InitOptions{})
	f.fetcher.EXPECT().FetchText(gomock.Any(), configURL).Return(remoteConfig, nil)

	target := t.TempDir()
	err := f.app.Install(context.Background(), app.InstallOptions{Packages: []string{"ghost"}, Path: target})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrPackageNotFound.Error())
	assert.Equal(t, target, f.app.Framework().Status().InstallPath)
}

func TestApp_InstallRejectsOutputMode(t *testing.T) {
	f := newFixture(t)
	f.init(t, app.InitOptions{})

	err := f.app.Install(context.Background(), app.InstallOptions{
		Packages:   []string{"pkgA"},
		Path:       t.TempDir(),
		OutputMode: "fancy",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidOutputMode.Error())
}

func TestApp_InstallTUIRestoresLogOutput(t *testing.T) {
	f := newFixture(t)
	f.app.
		WithEnvironment(detector.Environment{IsTTY: true}).
		WithDisableTick().
		WithTeaOptions(
			tea.WithInput(strings.NewReader("")),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
			tea.WithoutRenderer(),
		)
	f.init(t, app.InitOptions{})
	f.fetcher.EXPECT().FetchText(gomock.Any(), configURL).Return(remoteConfig, nil)

	err := f.app.Install(context.Background(), app.InstallOptions{Packages: []string{"ghost"}, Path: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrPackageNotFound.Error())
	assert.Same(t, f.logs, f.log.Output())
}

func TestApp_Uninstall(t *testing.T) {
	f := newFixture(t)
	f.installed(t)
	f.init(t, app.InitOptions{})

	require.NoError(t, f.app.Uninstall(context.Background(), app.UninstallOptions{}))

	_, err := os.Stat(filepath.Join(f.dir, "bin", "a"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(domain.MetadataPath(f.dir))
	assert.True(t, os.IsNotExist(err))

	assert.Contains(t, f.stdout.String(), "[100%] Uninstall complete")
	assert.Contains(t, f.stderr.String(), "Dependency tree:")

	f.launcher.EXPECT().BurnOnExit(f.dir).Return(nil)
	require.NoError(t, f.app.Shutdown())
}

func TestApp_UninstallWithoutInstallation(t *testing.T) {
	f := newFixture(t)
	f.init(t, app.InitOptions{})

	err := f.app.Uninstall(context.Background(), app.UninstallOptions{Path: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrNotInstalled.Error())
}

func TestApp_StatusVerify(t *testing.T) {
	f := newFixture(t)
	f.installed(t)
	f.init(t, app.InitOptions{})

	issues := []domain.FileIssue{{Package: "pkgA", Path: "bin/a", Kind: domain.IssueModified}}
	f.verifier.EXPECT().Verify(f.dir, gomock.Any()).Return(issues, nil)

	report, err := f.app.Status(context.Background(), app.StatusOptions{Verify: true})
	require.NoError(t, err)
	assert.Equal(t, f.dir, report.InstallPath)
	assert.Equal(t, issues, report.Issues)
}

func TestApp_StatusVerifyWithoutInstallation(t *testing.T) {
	f := newFixture(t)
	f.init(t, app.InitOptions{})

	_, err := f.app.Status(context.Background(), app.StatusOptions{Verify: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrNotInstalled.Error())
}

func TestApp_LaunchWithoutInstallation(t *testing.T) {
	f := newFixture(t)
	f.init(t, app.InitOptions{Launcher: "/opt/yuzu/yuzu"})
	f.launcher.EXPECT().Spawn("/opt/yuzu/yuzu").Return(nil)

	require.NoError(t, f.app.Launch(context.Background(), "linear"))
	assert.Contains(t, f.logs.String(), "No installation found")
}

func TestApp_Swap(t *testing.T) {
	f := newFixture(t)
	f.exe = filepath.Join(f.dir, domain.NewToolFileName())
	target := filepath.Join(f.dir, domain.ToolFileName())
	require.NoError(t, os.WriteFile(f.exe, []byte("new"), 0o600))
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o600))
	f.launcher.EXPECT().Spawn(target).Return(nil)

	require.NoError(t, f.app.Swap(target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestApp_RestoreArgs(t *testing.T) {
	f := newFixture(t)

	_, ok, err := f.app.RestoreArgs()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, installer.SaveArgs(f.dir, []string{"status"}))
	args, ok, err := f.app.RestoreArgs()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"status"}, args)
}

func TestApp_ServeRequiresTarget(t *testing.T) {
	f := newFixture(t)
	f.init(t, app.InitOptions{})

	require.ErrorIs(t, f.app.Serve(context.Background(), app.ServeOptions{}), domain.ErrNoServeTarget)
}

func shortSocket(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "lift")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, "lift.sock")
}

func TestApp_ServeAnswersStatusOverSocket(t *testing.T) {
	f := newFixture(t)
	f.installed(t)
	f.init(t, app.InitOptions{})
	socket := shortSocket(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.app.Serve(ctx, app.ServeOptions{Socket: socket}) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(socket)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	report, err := f.app.Status(context.Background(), app.StatusOptions{Socket: socket})
	require.NoError(t, err)
	assert.Equal(t, f.dir, report.InstallPath)
	assert.Equal(t, []string{"pkgA"}, report.Database.Names())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestApp_ServeStopsWhenIdle(t *testing.T) {
	f := newFixture(t)
	f.init(t, app.InitOptions{})
	socket := shortSocket(t)

	done := make(chan error, 1)
	go func() {
		done <- f.app.Serve(context.Background(), app.ServeOptions{Socket: socket, Idle: 50 * time.Millisecond})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after the idle timeout")
	}
	assert.Contains(t, f.logs.String(), "Shutting down")
}
