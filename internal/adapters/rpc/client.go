package rpc

import (
	"context"
	"errors"
	"io"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client talks to a running lift.v1.Installer service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to the service on the Unix socket at socketPath. The
// connection is established lazily on the first call.
func Dial(socketPath string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient("unix://"+socketPath, opts...)
	if err != nil {
		return nil, zerr.Wrap(err, "rpc client creation failed")
	}
	return NewClient(conn), nil
}

// NewClient wraps an existing connection.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Status returns the installation status of the server.
func (c *Client) Status(ctx context.Context) (*domain.InstallationStatus, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, statusMethod, &emptypb.Empty{}, out); err != nil {
		return nil, zerr.Wrap(err, "status call failed")
	}
	var st domain.InstallationStatus
	if err := fromStruct(out, &st); err != nil {
		return nil, zerr.Wrap(err, "invalid status payload")
	}
	return &st, nil
}

// Install starts an install and calls fn for every progress entry, EOF
// included.
func (c *Client) Install(ctx context.Context, req InstallRequest, fn func(domain.InstallMessage)) error {
	in, err := req.toStruct()
	if err != nil {
		return zerr.Wrap(err, "invalid install request")
	}

	stream, err := c.conn.NewStream(ctx, &serviceDesc.Streams[0], installMethod)
	if err != nil {
		return zerr.Wrap(err, "install call failed")
	}
	if err := stream.SendMsg(in); err != nil {
		return zerr.Wrap(err, "install call failed")
	}
	if err := stream.CloseSend(); err != nil {
		return zerr.Wrap(err, "install call failed")
	}

	for {
		out := new(structpb.Struct)
		if err := stream.RecvMsg(out); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return zerr.Wrap(err, "install stream failed")
		}
		fn(messageFromStruct(out))
	}
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
