// Package rest exposes the installer over a local HTTP API. Long running
// operations stream their progress as newline delimited JSON.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/lift/internal/installer"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// RequestIDHeader carries the id of every request.
const RequestIDHeader = "X-Request-Id"

const (
	streamBuffer    = 16
	shutdownTimeout = 5 * time.Second
)

// Installer is the subset of installer.Framework the API drives.
type Installer interface {
	Attributes() domain.BaseAttributes
	LoadConfig(ctx context.Context) (*domain.Config, error)
	DefaultPath() (string, error)
	Status() domain.InstallationStatus
	Packages(ctx context.Context) ([]installer.PackageStatus, error)
	SetInstallDir(dir string) error
	Install(ctx context.Context, opts installer.InstallOptions, m tree.Messenger) error
	Uninstall(ctx context.Context, m tree.Messenger) error
	UpdateUpdater(ctx context.Context, args []string, m tree.Messenger) error
	Shutdown() error
}

// Server serves the installer API.
type Server struct {
	installer Installer
	logger    ports.Logger
	handler   http.Handler

	// DarkMode reports whether the desktop prefers a dark theme.
	DarkMode func() bool
	// Args are saved for the restarted process after an updater update.
	Args []string
	// OnExit is called after a successful /api/exit.
	OnExit func()
	// OnRequest is called before every request is handled.
	OnRequest func()
}

// NewServer returns a Server for inst.
func NewServer(inst Installer, logger ports.Logger) *Server {
	s := &Server{
		installer: inst,
		logger:    logger,
		DarkMode:  DesktopPrefersDark,
		Args:      os.Args[1:],
		OnExit:    func() {},
		OnRequest: func() {},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/attrs", s.handleAttrs)
	mux.HandleFunc("GET /api/config", s.handleConfig)
	mux.HandleFunc("GET /api/dark-mode", s.handleDarkMode)
	mux.HandleFunc("GET /api/default-path", s.handleDefaultPath)
	mux.HandleFunc("GET /api/installation-status", s.handleStatus)
	mux.HandleFunc("GET /api/packages", s.handlePackages)
	mux.HandleFunc("GET /api/verify-path", s.handleVerifyPath)
	mux.HandleFunc("GET /api/exit", s.handleExit)
	mux.HandleFunc("POST /api/start-install", s.handleInstall)
	mux.HandleFunc("POST /api/uninstall", s.handleUninstall)
	mux.HandleFunc("POST /api/update-updater", s.handleUpdateUpdater)

	s.handler = withRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.OnRequest()
		mux.ServeHTTP(w, r)
	}))
	return s
}

// Handler returns the HTTP handler of the API.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on lis until ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, domain.ErrServerFailed.Error())
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
	}
	s.logger.Info("Listening on http://" + lis.Addr().String())
	return s.Serve(ctx, lis)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// DesktopPrefersDark inspects the GTK theme of the session.
func DesktopPrefersDark() bool {
	theme := strings.ToLower(os.Getenv("GTK_THEME"))
	return strings.Contains(theme, "dark")
}
