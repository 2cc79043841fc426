package server

import (
	"context"
	"log"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"tetris/pb"
	"tetris/tetris"
)

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := New(nil)
	client, closer := testServer(srv)
	defer closer()

	session := tetris.NewTestSession(tetris.T)
	srv.Publish(session.Snapshot())

	stream, err := client.Watch(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	t.Run("a new watcher gets the last snapshot", func(t *testing.T) {
		st, err := stream.Recv()
		require.NoError(t, err)
		got, err := pb.Decode(st)
		require.NoError(t, err)
		assert.Equal(t, session.ID(), got.GameID)
		assert.Equal(t, 0, got.Tetromino.Row)
	})

	t.Run("published snapshots reach the watcher", func(t *testing.T) {
		require.Eventually(t, func() bool { return srv.Watchers() == 1 }, time.Second, 10*time.Millisecond)
		session.Tick()
		srv.Publish(session.Snapshot())

		st, err := stream.Recv()
		require.NoError(t, err)
		got, err := pb.Decode(st)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Tetromino.Row)
	})

	t.Run("cancelling the stream removes the watcher", func(t *testing.T) {
		cancel()
		_, err := stream.Recv()
		assert.Equal(t, codes.Canceled, status.Code(err))
		assert.Eventually(t, func() bool { return srv.Watchers() == 0 }, time.Second, 10*time.Millisecond)
	})
}

func TestPublishNeverBlocks(t *testing.T) {
	srv := New(nil)
	w := &watcher{ch: make(chan *structpb.Struct, watcherBuffer)}
	srv.watchers["slow"] = w

	snap := tetris.NewTestSession(tetris.T).Snapshot()
	done := make(chan struct{})
	go func() {
		for range watcherBuffer + 5 {
			srv.Publish(snap)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow watcher")
	}
	assert.Len(t, w.ch, watcherBuffer)
	assert.Equal(t, 5, w.dropped)
}

func testServer(srv *Server) (pb.SpectatorClient, func()) {
	buffer := 101024 * 1024
	lis := bufconn.Listen(buffer)

	s := grpc.NewServer()
	pb.RegisterSpectatorServer(s, srv)
	go func() {
		if err := s.Serve(lis); err != nil {
			log.Printf("unable to serve: %v", err)
		}
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Printf("error connecting to server: %v", err)
	}

	closer := func() {
		if err := lis.Close(); err != nil {
			log.Printf("error closing listener: %v", err)
		}
		s.Stop()
	}

	return pb.NewSpectatorClient(conn), closer
}
