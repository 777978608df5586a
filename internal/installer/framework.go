// Package installer owns the installer state and runs install, uninstall and
// self-update operations against it.
package installer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/dustin/go-humanize"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/lift/internal/installer/tasks"
	"go.trai.ch/zerr"
)

// Framework serializes operations on a single domain.Installation.
type Framework struct {
	mu     sync.Mutex
	state  *domain.Installation
	svc    *tasks.Services
	loader ports.ConfigLoader
	launch ports.Launcher
	tracer ports.Tracer
}

// New returns a Framework for the given application.
func New(
	attrs domain.BaseAttributes,
	svc *tasks.Services,
	loader ports.ConfigLoader,
	launch ports.Launcher,
) *Framework {
	return &Framework{
		state:  domain.NewInstallation(attrs),
		svc:    svc,
		loader: loader,
		launch: launch,
	}
}

// SetTracer traces every task of subsequent operations. nil disables tracing.
func (f *Framework) SetTracer(tracer ports.Tracer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tracer = tracer
}

// InstallOptions selects what an install operation does.
type InstallOptions struct {
	Items            []string
	Fresh            bool
	Repair           bool
	DesktopShortcuts bool
	LaunchOnExit     bool
}

// PackageStatus is a configured package and whether it is installed.
type PackageStatus struct {
	domain.PackageDescription
	Installed bool `json:"installed"`
}

// Attributes returns the bootstrap attributes.
func (f *Framework) Attributes() domain.BaseAttributes {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Attributes
}

// LoadConfig fetches the remote configuration once and caches it.
func (f *Framework) LoadConfig(ctx context.Context) (*domain.Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadConfig(ctx)
}

func (f *Framework) loadConfig(ctx context.Context) (*domain.Config, error) {
	if f.state.Config != nil {
		return f.state.Config, nil
	}
	cfg, err := f.loader.LoadConfig(ctx, f.state.Attributes.TargetURL)
	if err != nil {
		return nil, err
	}
	f.state.Config = cfg
	return cfg, nil
}

// DefaultPath returns the default install directory of the application.
func (f *Framework) DefaultPath() (string, error) {
	return domain.DefaultInstallPath(f.Attributes().Name)
}

// SetInstallDir selects the install directory and loads its manifest when
// one exists.
func (f *Framework) SetInstallDir(dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	abs, err := filepath.Abs(dir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid install path"), "path", dir)
	}

	f.state.InstallPath = abs
	f.state.PreexistingInstall = false
	f.state.Manifest = domain.NewManifest()

	if !f.svc.Store.Exists(abs) {
		return nil
	}
	manifest, err := f.svc.Store.Load(abs)
	if err != nil {
		return err
	}
	f.state.Manifest = *manifest
	f.state.PreexistingInstall = true
	return nil
}

// SetLauncher switches to launcher mode: target is started on Shutdown.
func (f *Framework) SetLauncher(target string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.IsLauncher = true
	f.state.LauncherPath = target
}

// SetCredentials stores the account used to request authorization tokens.
// The manifest is saved when an install directory is selected.
func (f *Framework) SetCredentials(ctx context.Context, username, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state.Manifest.Credentials = domain.Credentials{Username: username, Token: token}
	if f.state.InstallPath == "" || !f.state.PreexistingInstall {
		return nil
	}
	return f.run(ctx, tasks.NewSaveDatabase(f.svc), nil)
}

// Install installs or updates the selected packages and removes installed
// packages that were deselected.
func (f *Framework) Install(ctx context.Context, opts InstallOptions, m tree.Messenger) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(opts.Items) == 0 {
		return domain.ErrNoPackagesSelected
	}
	cfg, err := f.loadConfig(ctx)
	if err != nil {
		return err
	}
	for _, item := range opts.Items {
		if _, ok := cfg.Package(item); !ok {
			return zerr.With(domain.ErrPackageNotFound, "package", item)
		}
	}

	plan := tasks.InstallPlan{
		Items:            opts.Items,
		Fresh:            opts.Fresh || !f.state.PreexistingInstall,
		Repair:           opts.Repair,
		DesktopShortcuts: opts.DesktopShortcuts,
		LaunchOnExit:     opts.LaunchOnExit,
	}
	if !plan.Fresh && !plan.Repair {
		for _, name := range f.state.Manifest.Names() {
			if !slices.Contains(opts.Items, name) {
				plan.UninstallItems = append(plan.UninstallItems, name)
			}
		}
	}

	if err := f.run(ctx, tasks.NewInstall(f.svc, plan), m); err != nil {
		return err
	}
	f.state.PreexistingInstall = true
	return nil
}

// Uninstall removes every installed package, the global shortcuts and the
// manifest, then schedules the install directory for removal on exit.
func (f *Framework) Uninstall(ctx context.Context, m tree.Messenger) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir, err := f.state.Path()
	if err != nil {
		return err
	}

	if err := f.run(ctx, tasks.NewUninstall(f.svc, f.state.Manifest.Names()), m); err != nil {
		return err
	}

	// The global shortcuts are removed after the packages; the bar stays full.
	var finished tree.Messenger
	if m != nil {
		finished = func(msg domain.TaskMessage) {
			if msg.Kind == domain.TaskDisplayMessage {
				msg.Progress = 1
			}
			m(msg)
		}
	}
	if err := f.run(ctx, tasks.NewUninstallGlobalShortcuts(f.svc), finished); err != nil {
		return err
	}

	if err := f.svc.Store.Remove(dir); err != nil {
		return err
	}
	f.state.BurnAfterExit = true
	return nil
}

// UpdateUpdater downloads the new maintenance tool and restarts into it. The
// new process replaces the running binary and restores the saved arguments.
func (f *Framework) UpdateUpdater(ctx context.Context, args []string, m tree.Messenger) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if m == nil {
		m = func(domain.TaskMessage) {}
	}

	cfg, err := f.loadConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.NewTool == nil || *cfg.NewTool == "" {
		return domain.ErrNoUpdaterAvailable
	}
	current, err := f.svc.Executable()
	if err != nil {
		return zerr.Wrap(err, domain.ErrSwapFailed.Error())
	}
	dir := filepath.Dir(current)

	var (
		buf        bytes.Buffer
		downloaded uint64
	)
	err = f.svc.Fetcher.Stream(ctx, *cfg.NewTool, "", func(chunk []byte, size uint64) {
		buf.Write(chunk)
		downloaded += uint64(len(chunk))

		progress := 0.0
		if size > 0 {
			progress = float64(downloaded) / float64(size)
		}
		m(domain.DisplayMessage(fmt.Sprintf("Downloading self-update (%s of %s)...",
			humanize.Bytes(downloaded), humanize.Bytes(size)), progress))
	})
	if err != nil {
		return err
	}

	next := filepath.Join(dir, domain.NewToolFileName())
	if err := os.WriteFile(next, buf.Bytes(), domain.ExecutablePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSwapFailed.Error()), "path", next)
	}
	if err := SaveArgs(dir, args); err != nil {
		return err
	}

	f.svc.Logger.Info(fmt.Sprintf("Restarting into %s", next))
	return f.launch.Spawn(next, "--swap", current)
}

// Status returns a snapshot of the installation.
func (f *Framework) Status() domain.InstallationStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Status()
}

// Packages returns the configured packages with their install state.
func (f *Framework) Packages(ctx context.Context) ([]PackageStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cfg, err := f.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PackageStatus, 0, len(cfg.Packages))
	for _, pkg := range cfg.Packages {
		_, installed := f.state.Manifest.Find(pkg.Name)
		out = append(out, PackageStatus{PackageDescription: pkg, Installed: installed})
	}
	return out, nil
}

// Verify checks the installed files against the manifest.
func (f *Framework) Verify(v ports.InstallVerifier) ([]domain.FileIssue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir, err := f.state.Path()
	if err != nil {
		return nil, err
	}
	return v.Verify(dir, &f.state.Manifest)
}

// Shutdown starts the selected launcher target and, after an uninstall,
// arranges for the install directory to be removed.
func (f *Framework) Shutdown() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state.LauncherPath != "" {
		if err := f.launch.Spawn(f.state.LauncherPath); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLaunchFailed.Error()), "path", f.state.LauncherPath)
		}
	}
	if f.state.BurnAfterExit && f.state.InstallPath != "" {
		return f.launch.BurnOnExit(f.state.InstallPath)
	}
	return nil
}

// run builds the tree of root, logs its plan and executes it.
func (f *Framework) run(ctx context.Context, root tree.Task, m tree.Messenger) error {
	var opts []tree.Option
	if f.tracer != nil {
		opts = append(opts, tree.WithTracer(f.tracer))
	}
	dt, err := tree.Build(root, opts...)
	if err != nil {
		return err
	}

	plan := dt.String()
	if f.tracer != nil {
		f.tracer.EmitPlan(ctx, plan)
	} else {
		f.svc.Logger.Info(fmt.Sprintf("Dependency tree:\n%s", plan))
	}

	_, err = dt.Execute(ctx, f.state, m)
	return err
}

// SaveArgs records args in dir so a restarted instance can pick them up.
func SaveArgs(dir string, args []string) error {
	data, err := json.Marshal(args)
	if err != nil {
		return zerr.Wrap(err, "failed to encode arguments")
	}
	path := filepath.Join(dir, domain.ArgsFileName)
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to save arguments"), "path", path)
	}
	return nil
}
