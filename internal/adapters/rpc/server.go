package rpc

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/lift/internal/engine/tree"
	"go.trai.ch/lift/internal/installer"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const streamBuffer = 16

// Installer is the subset of installer.Framework the service drives.
type Installer interface {
	Status() domain.InstallationStatus
	SetInstallDir(dir string) error
	Install(ctx context.Context, opts installer.InstallOptions, m tree.Messenger) error
}

// Server implements the lift.v1.Installer service.
type Server struct {
	installer  Installer
	logger     ports.Logger
	lifecycle  *Lifecycle
	grpcServer *grpc.Server
}

// NewServer returns a Server for inst. Every request resets lifecycle.
func NewServer(inst Installer, logger ports.Logger, lifecycle *Lifecycle) *Server {
	s := &Server{
		installer: inst,
		logger:    logger,
		lifecycle: lifecycle,
	}
	s.grpcServer = grpc.NewServer(
		grpc.UnaryInterceptor(func(
			ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler,
		) (any, error) {
			s.lifecycle.ResetTimer()
			return handler(ctx, req)
		}),
		grpc.StreamInterceptor(func(
			srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler,
		) error {
			s.lifecycle.ResetTimer()
			return handler(srv, ss)
		}),
	)
	s.grpcServer.RegisterService(&serviceDesc, s)
	return s
}

// Serve listens on the Unix socket at socketPath until ctx is done or the
// lifecycle shuts down. The socket is removed afterwards.
func (s *Server) Serve(ctx context.Context, socketPath string) error {
	if err := os.MkdirAll(filepath.Dir(socketPath), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create socket directory"), "path", socketPath)
	}
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "failed to remove stale socket"), "path", socketPath)
	}

	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "unix", socketPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "path", socketPath)
	}
	defer func() { _ = os.Remove(socketPath) }()

	if err := os.Chmod(socketPath, domain.SocketPerm); err != nil {
		_ = lis.Close()
		return zerr.Wrap(err, "failed to set socket permissions")
	}

	s.logger.Info("Listening on unix://" + socketPath)
	return s.ServeListener(ctx, lis)
}

// ServeListener serves on lis until ctx is done or the lifecycle shuts down.
func (s *Server) ServeListener(ctx context.Context, lis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return zerr.Wrap(err, domain.ErrServerFailed.Error())
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.lifecycle.ShutdownChan():
		}
		s.grpcServer.GracefulStop()
		return nil
	})
	return g.Wait()
}

func (s *Server) status(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := toStruct(s.installer.Status())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// install streams the progress of the requested install. Failures are
// reported in the stream, not as call errors.
func (s *Server) install(in *structpb.Struct, stream grpc.ServerStream) error {
	req := installRequestFrom(in)
	ctx := context.WithoutCancel(stream.Context())

	ch := installer.Stream(func(m tree.Messenger) error {
		if req.Path != "" && !s.installer.Status().PreexistingInstall {
			if err := s.installer.SetInstallDir(req.Path); err != nil {
				return err
			}
		}
		err := s.installer.Install(ctx, installer.InstallOptions{Items: req.Packages, Fresh: req.Fresh}, m)
		if err != nil {
			s.logger.Error(err)
		}
		return err
	}, streamBuffer)

	var sendErr error
	for msg := range ch {
		if sendErr != nil {
			continue
		}
		sendErr = stream.SendMsg(messageToStruct(msg))
	}
	return sendErr
}
