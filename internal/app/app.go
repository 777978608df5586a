// Package app implements the application layer for lift.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	"go.trai.ch/lift/internal/adapters/detector"
	"go.trai.ch/lift/internal/adapters/linear"
	"go.trai.ch/lift/internal/adapters/logger"
	"go.trai.ch/lift/internal/adapters/rest"
	"go.trai.ch/lift/internal/adapters/rpc"
	"go.trai.ch/lift/internal/adapters/telemetry"
	"go.trai.ch/lift/internal/adapters/tui"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/lift/internal/installer"
	"go.trai.ch/lift/internal/installer/tasks"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const streamBuffer = 16

// ConfigSource loads the bootstrap attributes and the remote configuration.
// SetBootstrap replaces the embedded attributes.
type ConfigSource interface {
	ports.ConfigLoader
	SetBootstrap(data []byte)
}

// App represents the main application logic.
type App struct {
	loader   ConfigSource
	logger   *logger.Logger
	svc      *tasks.Services
	launch   ports.Launcher
	verifier ports.InstallVerifier
	tracer   ports.Tracer

	env         detector.Environment
	stdout      io.Writer
	stderr      io.Writer
	teaOptions  []tea.ProgramOption
	disableTick bool
	sleep       func(time.Duration)

	fw *installer.Framework
}

// New creates a new App instance.
func New(
	loader ConfigSource,
	log *logger.Logger,
	svc *tasks.Services,
	launch ports.Launcher,
	verifier ports.InstallVerifier,
	tracer ports.Tracer,
) *App {
	return &App{
		loader:   loader,
		logger:   log,
		svc:      svc,
		launch:   launch,
		verifier: verifier,
		tracer:   tracer,
		env:      detector.CurrentEnvironment(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		sleep:    time.Sleep,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithDisableTick disables the TUI tick loop.
// This is primarily used for testing with synctest to avoid goroutine deadlocks.
func (a *App) WithDisableTick() *App {
	a.disableTick = true
	return a
}

// WithOutput redirects rendered output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithEnvironment overrides the environment used to pick a renderer.
func (a *App) WithEnvironment(env detector.Environment) *App {
	a.env = env
	return a
}

// WithSleep replaces the clock used between swap attempts.
func (a *App) WithSleep(sleep func(time.Duration)) *App {
	a.sleep = sleep
	return a
}

// InitOptions configuration for the Init method.
type InitOptions struct {
	// Bootstrap is a TOML file replacing the embedded attributes.
	Bootstrap string
	JSONLogs  bool
	// Launcher is started on shutdown and switches to launcher mode.
	Launcher string
}

// Init loads the bootstrap attributes and prepares the installer state. An
// existing installation next to the executable is picked up automatically.
func (a *App) Init(opts InitOptions) error {
	a.logger.SetJSON(opts.JSONLogs)

	if opts.Bootstrap != "" {
		data, err := os.ReadFile(opts.Bootstrap)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrBootstrapReadFailed.Error()), "path", opts.Bootstrap)
		}
		a.loader.SetBootstrap(data)
	}

	attrs, err := a.loader.LoadAttributes()
	if err != nil {
		return zerr.Wrap(err, "failed to load bootstrap attributes")
	}

	dir, err := a.exeDir()
	if err != nil {
		return err
	}
	if err := a.logger.AttachFile(filepath.Join(dir, domain.LogFileName(attrs.Name))); err != nil {
		a.logger.Warn(fmt.Sprintf("Unable to write log file: %v", err))
	}
	a.swapper().Cleanup(dir)

	a.fw = installer.New(*attrs, a.svc, a.loader, a.launch)
	if a.svc.Store.Exists(dir) {
		a.logger.Info("Using pre-existing metadata file")
		if err := a.fw.SetInstallDir(dir); err != nil {
			return err
		}
	} else {
		a.logger.Info("Starting fresh install")
	}

	if opts.Launcher != "" {
		a.fw.SetLauncher(opts.Launcher)
	}
	return nil
}

// Close releases the log file.
func (a *App) Close() error {
	return a.logger.Close()
}

// Framework returns the installer state, or nil before Init.
func (a *App) Framework() *installer.Framework {
	return a.fw
}

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	Packages         []string
	Path             string
	Fresh            bool
	Repair           bool
	DesktopShortcuts bool
	LaunchOnExit     bool
	OutputMode       string
}

// Install installs or updates packages. Without explicit packages an
// existing installation is updated in place and a fresh one gets the
// configured defaults.
func (a *App) Install(ctx context.Context, opts InstallOptions) error {
	fw, err := a.framework()
	if err != nil {
		return err
	}
	if err := a.selectPath(fw, opts.Path); err != nil {
		return err
	}

	items := opts.Packages
	if len(items) == 0 {
		if items, err = a.defaultItems(ctx, fw); err != nil {
			return err
		}
	}

	title := fmt.Sprintf("Installing %s", fw.Attributes().Name)
	return a.render(ctx, title, opts.OutputMode, func(m tree.Messenger) error {
		return fw.Install(ctx, installer.InstallOptions{
			Items:            items,
			Fresh:            opts.Fresh,
			Repair:           opts.Repair,
			DesktopShortcuts: opts.DesktopShortcuts,
			LaunchOnExit:     opts.LaunchOnExit,
		}, m)
	})
}

// UninstallOptions configuration for the Uninstall method.
type UninstallOptions struct {
	Path       string
	OutputMode string
}

// Uninstall removes an existing installation.
func (a *App) Uninstall(ctx context.Context, opts UninstallOptions) error {
	fw, err := a.framework()
	if err != nil {
		return err
	}
	if opts.Path != "" {
		if err := fw.SetInstallDir(opts.Path); err != nil {
			return err
		}
	}
	status := fw.Status()
	if !status.PreexistingInstall {
		return zerr.With(domain.ErrNotInstalled, "path", status.InstallPath)
	}

	title := fmt.Sprintf("Uninstalling %s", fw.Attributes().Name)
	return a.render(ctx, title, opts.OutputMode, func(m tree.Messenger) error {
		return fw.Uninstall(ctx, m)
	})
}

// SelfUpdate downloads the new maintenance tool and restarts into it. args
// are restored by the restarted process.
func (a *App) SelfUpdate(ctx context.Context, outputMode string, args []string) error {
	fw, err := a.framework()
	if err != nil {
		return err
	}
	return a.render(ctx, "Updating maintenance tool", outputMode, func(m tree.Messenger) error {
		return fw.UpdateUpdater(ctx, args, m)
	})
}

// Launch updates the installed packages and starts the launcher target.
func (a *App) Launch(ctx context.Context, outputMode string) error {
	fw, err := a.framework()
	if err != nil {
		return err
	}
	if fw.Status().PreexistingInstall {
		if err := a.Install(ctx, InstallOptions{OutputMode: outputMode}); err != nil {
			return err
		}
	} else {
		a.logger.Warn("No installation found, starting without update")
	}
	return a.Shutdown()
}

// Shutdown starts the launcher target and finishes a pending uninstall.
func (a *App) Shutdown() error {
	fw, err := a.framework()
	if err != nil {
		return err
	}
	return fw.Shutdown()
}

// Swap moves the running executable over target and starts it.
func (a *App) Swap(target string) error {
	current, err := a.svc.Executable()
	if err != nil {
		return zerr.Wrap(err, domain.ErrSwapFailed.Error())
	}
	return a.swapper().Swap(current, target)
}

// RestoreArgs returns the command line saved before a self-update restart.
func (a *App) RestoreArgs() ([]string, bool, error) {
	dir, err := a.exeDir()
	if err != nil {
		return nil, false, err
	}
	return installer.RestoreArgs(dir)
}

// StatusOptions configuration for the Status method.
type StatusOptions struct {
	// Socket queries a running server instead of the local state.
	Socket string
	Path   string
	Verify bool
}

// StatusReport is the installation snapshot with optional verification results.
type StatusReport struct {
	domain.InstallationStatus
	Issues []domain.FileIssue `json:"issues,omitempty"`
}

// Status reports the installation state.
func (a *App) Status(ctx context.Context, opts StatusOptions) (*StatusReport, error) {
	if opts.Socket != "" {
		client, err := rpc.Dial(opts.Socket)
		if err != nil {
			return nil, err
		}
		defer func() { _ = client.Close() }()

		status, err := client.Status(ctx)
		if err != nil {
			return nil, err
		}
		return &StatusReport{InstallationStatus: *status}, nil
	}

	fw, err := a.framework()
	if err != nil {
		return nil, err
	}
	if opts.Path != "" {
		if err := fw.SetInstallDir(opts.Path); err != nil {
			return nil, err
		}
	}

	report := &StatusReport{InstallationStatus: fw.Status()}
	if opts.Verify {
		if !report.PreexistingInstall {
			return nil, zerr.With(domain.ErrNotInstalled, "path", report.InstallPath)
		}
		issues, err := fw.Verify(a.verifier)
		if err != nil {
			return nil, err
		}
		report.Issues = issues
	}
	return report, nil
}

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	// Addr is the TCP address of the HTTP API.
	Addr string
	// Socket is the Unix socket of the gRPC API.
	Socket string
	// Idle stops the servers after this long without requests. Zero disables it.
	Idle time.Duration
	// Args are saved for the restarted process after an updater update.
	Args []string
}

// Serve exposes the installer over HTTP and gRPC until ctx is done, the
// idle timeout expires or a client requests exit.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	fw, err := a.framework()
	if err != nil {
		return err
	}
	if opts.Addr == "" && opts.Socket == "" {
		return domain.ErrNoServeTarget
	}

	fw.SetTracer(a.tracer)
	defer fw.SetTracer(nil)

	lifecycle := rpc.NewLifecycle(opts.Idle)
	defer lifecycle.Shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-lifecycle.ShutdownChan():
			a.logger.Info("Shutting down")
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if opts.Addr != "" {
		api := rest.NewServer(fw, a.logger)
		api.Args = opts.Args
		api.OnExit = lifecycle.Shutdown
		api.OnRequest = lifecycle.ResetTimer
		g.Go(func() error {
			return api.ListenAndServe(gctx, opts.Addr)
		})
	}

	if opts.Socket != "" {
		srv := rpc.NewServer(fw, a.logger, lifecycle)
		g.Go(func() error {
			return srv.Serve(gctx, opts.Socket)
		})
	}

	return g.Wait()
}

// render runs op while a renderer displays its task spans and progress.
func (a *App) render(ctx context.Context, title, outputMode string, op func(tree.Messenger) error) error {
	override, err := detector.ParseMode(outputMode)
	if err != nil {
		return err
	}
	mode := detector.ResolveMode(a.env.Detect(), override)

	var renderer ports.Renderer
	if mode == detector.ModeTUI {
		model := tui.NewModel(a.stderr, title)
		if a.disableTick {
			model = model.WithDisableTick()
		}
		optsTea := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(a.stderr)}, a.teaOptions...)
		renderer = tui.NewRenderer(&model, optsTea...)

		// Console records would tear the TUI; the log file still gets them.
		previous := a.logger.Output()
		a.logger.SetOutput(io.Discard)
		defer a.logger.SetOutput(previous)
	} else {
		renderer = linear.NewRenderer(a.stdout, a.stderr)
	}

	tp := telemetry.NewProvider(renderer)
	otel.SetTracerProvider(tp)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()

	a.fw.SetTracer(telemetry.NewProviderTracer(tp, telemetry.TaskScope).WithRenderer(renderer))
	defer a.fw.SetTracer(nil)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()

		var opErr error
		stream := installer.Stream(func(m tree.Messenger) error {
			opErr = op(m)
			return opErr
		}, streamBuffer)

		var streamErr error
		for msg := range stream {
			switch msg.Kind {
			case domain.InstallStatus:
				renderer.OnProgress(msg.Text, msg.Progress)
			case domain.InstallPackageInstalled:
				renderer.OnPackageInstalled()
			case domain.InstallError:
				streamErr = zerr.With(domain.ErrOperationFailed, "cause", msg.Text)
			case domain.InstallEOF:
			}
		}

		if opErr != nil {
			return opErr
		}
		return streamErr
	})

	return g.Wait()
}

func (a *App) framework() (*installer.Framework, error) {
	if a.fw == nil {
		return nil, domain.ErrNotInitialized
	}
	return a.fw, nil
}

// selectPath applies an explicit install path, or the default one when no
// installation was found next to the executable.
func (a *App) selectPath(fw *installer.Framework, path string) error {
	if path != "" {
		return fw.SetInstallDir(path)
	}
	if fw.Status().InstallPath != "" {
		return nil
	}
	def, err := fw.DefaultPath()
	if err != nil {
		return zerr.Wrap(err, "failed to determine default install path")
	}
	a.logger.Info(fmt.Sprintf("Installing to %s", def))
	return fw.SetInstallDir(def)
}

func (a *App) defaultItems(ctx context.Context, fw *installer.Framework) ([]string, error) {
	status := fw.Status()
	if status.PreexistingInstall {
		if names := status.Database.Names(); len(names) > 0 {
			return names, nil
		}
	}
	cfg, err := fw.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.Defaults(), nil
}

func (a *App) exeDir() (string, error) {
	exe, err := a.svc.Executable()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate executable")
	}
	return filepath.Dir(exe), nil
}

func (a *App) swapper() *installer.Swapper {
	s := installer.NewSwapper(a.logger, a.launch)
	s.Sleep = a.sleep
	return s
}
