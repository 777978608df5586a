// Package rpc serves the installer over gRPC on a Unix domain socket. The
// service is described by hand and exchanges well known protobuf types, so
// no generated code is needed.
package rpc

import (
	"context"
	"encoding/json"

	"go.trai.ch/lift/internal/core/domain"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "lift.v1.Installer"

	statusMethod  = "/" + ServiceName + "/Status"
	installMethod = "/" + ServiceName + "/Install"
)

// Message kinds carried in the "kind" field of Install stream entries.
const (
	KindStatus           = "status"
	KindPackageInstalled = "package_installed"
	KindError            = "error"
	KindEOF              = "eof"
)

type installerService interface {
	status(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	install(in *structpb.Struct, stream grpc.ServerStream) error
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*installerService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Status", Handler: statusHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Install", Handler: installHandler, ServerStreams: true},
	},
	Metadata: "lift/v1/installer.proto",
}

func statusHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	svc := srv.(installerService)
	if interceptor == nil {
		return svc.status(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: statusMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
		return svc.status(ctx, req.(*emptypb.Empty))
	})
}

func installHandler(srv any, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(installerService).install(in, stream)
}

// InstallRequest selects what an Install call installs.
type InstallRequest struct {
	Packages []string
	Path     string
	Fresh    bool
}

func (r InstallRequest) toStruct() (*structpb.Struct, error) {
	pkgs := make([]any, 0, len(r.Packages))
	for _, p := range r.Packages {
		pkgs = append(pkgs, p)
	}
	return structpb.NewStruct(map[string]any{
		"packages": pkgs,
		"path":     r.Path,
		"fresh":    r.Fresh,
	})
}

func installRequestFrom(s *structpb.Struct) InstallRequest {
	fields := s.GetFields()
	req := InstallRequest{
		Path:  fields["path"].GetStringValue(),
		Fresh: fields["fresh"].GetBoolValue(),
	}
	for _, v := range fields["packages"].GetListValue().GetValues() {
		if name := v.GetStringValue(); name != "" {
			req.Packages = append(req.Packages, name)
		}
	}
	return req
}

func messageToStruct(msg domain.InstallMessage) *structpb.Struct {
	fields := map[string]*structpb.Value{}
	switch msg.Kind {
	case domain.InstallStatus:
		fields["kind"] = structpb.NewStringValue(KindStatus)
		fields["text"] = structpb.NewStringValue(msg.Text)
		fields["progress"] = structpb.NewNumberValue(msg.Progress)
	case domain.InstallPackageInstalled:
		fields["kind"] = structpb.NewStringValue(KindPackageInstalled)
	case domain.InstallError:
		fields["kind"] = structpb.NewStringValue(KindError)
		fields["text"] = structpb.NewStringValue(msg.Text)
	case domain.InstallEOF:
		fields["kind"] = structpb.NewStringValue(KindEOF)
	}
	return &structpb.Struct{Fields: fields}
}

func messageFromStruct(s *structpb.Struct) domain.InstallMessage {
	fields := s.GetFields()
	switch fields["kind"].GetStringValue() {
	case KindStatus:
		return domain.StatusMessage(fields["text"].GetStringValue(), fields["progress"].GetNumberValue())
	case KindPackageInstalled:
		return domain.PackageInstalledEntry()
	case KindError:
		return domain.ErrorMessage(fields["text"].GetStringValue())
	default:
		return domain.EOFMessage()
	}
}

// toStruct converts v to a Struct through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// fromStruct decodes s into v through its JSON form.
func fromStruct(s *structpb.Struct, v any) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
