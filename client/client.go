// Package client watches a game streamed by the spectator server.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"tetris/pb"
	"tetris/tetris"
)

type Client struct {
	conn   *grpc.ClientConn
	logger *slog.Logger
}

type Options struct {
	Address string
	// DialOptions are added to the default insecure transport.
	DialOptions []grpc.DialOption
}

func New(l *slog.Logger, o *Options) (*Client, error) {
	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, o.DialOptions...)
	conn, err := grpc.NewClient(o.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create gRPC client: %w", err)
	}
	return &Client{conn: conn, logger: l}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Watch streams the snapshots of the game until ctx is done or the server
// goes away, then closes the channel.
func (c *Client) Watch(ctx context.Context) (<-chan *tetris.Snapshot, error) {
	stream, err := pb.NewSpectatorClient(c.conn).Watch(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fmt.Errorf("unable to create gRPC Watch stream: %w", err)
	}

	rcvCh := make(chan *tetris.Snapshot)
	go func() {
		defer close(rcvCh)
		for {
			rcv, err := stream.Recv()
			if err != nil {
				c.logRecvError(err)
				return
			}
			snap, err := pb.Decode(rcv)
			if err != nil {
				c.logger.Error("unable to decode snapshot", slog.String("error", err.Error()))
				continue
			}
			select {
			case rcvCh <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()
	return rcvCh, nil
}

func (c *Client) logRecvError(err error) {
	if errors.Is(err, io.EOF) {
		c.logger.Debug("stream.Recv() closed with EOF", slog.String("msg", err.Error()))
		return
	}
	st, ok := status.FromError(err)
	switch {
	case ok && st.Code() == codes.Canceled:
		c.logger.Debug("stream.Recv() closed with Cancel", slog.String("msg", st.Message()))
	case ok && st.Code() == codes.DeadlineExceeded:
		c.logger.Debug("stream.Recv() closed with DeadlineExceeded", slog.String("msg", st.Message()))
	default:
		c.logger.Error("stream.Recv() unable to receive message", slog.String("error", err.Error()))
	}
}
