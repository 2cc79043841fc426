// Package pb is the wire format of the spectator stream: a server streaming
// gRPC method sending every snapshot of a game as a protobuf Struct.
package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "tetris.Spectator"

	Spectator_Watch_FullMethodName = "/tetris.Spectator/Watch"
)

// SpectatorServer streams the snapshots of the game being played.
type SpectatorServer interface {
	Watch(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
}

func RegisterSpectatorServer(s grpc.ServiceRegistrar, srv SpectatorServer) {
	s.RegisterService(&Spectator_ServiceDesc, srv)
}

func _Spectator_Watch_Handler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(SpectatorServer).Watch(m, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}

var Spectator_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SpectatorServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       _Spectator_Watch_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "spectator.proto",
}

type SpectatorClient interface {
	Watch(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
}

type spectatorClient struct {
	cc grpc.ClientConnInterface
}

func NewSpectatorClient(cc grpc.ClientConnInterface) SpectatorClient {
	return &spectatorClient{cc}
}

func (c *spectatorClient) Watch(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &Spectator_ServiceDesc.Streams[0], Spectator_Watch_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[emptypb.Empty, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
