// Package server streams the game being played to spectators.
package server

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"tetris/pb"
	"tetris/tetris"
)

// watcherBuffer is how many snapshots a slow watcher may fall behind before
// frames are dropped for it.
const watcherBuffer = 16

type watcher struct {
	ch      chan *structpb.Struct
	dropped int
}

// Server is a pb.SpectatorServer. Publish feeds it snapshots, every Watch
// stream gets them.
type Server struct {
	watchers map[string]*watcher
	last     *structpb.Struct
	logger   *slog.Logger
	mu       sync.Mutex
}

func New(l *slog.Logger) *Server {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Server{watchers: make(map[string]*watcher), logger: l}
}

// Publish sends a snapshot to every watcher. It never blocks: watchers that
// don't keep up miss frames.
func (s *Server) Publish(snap *tetris.Snapshot) {
	st, err := pb.Encode(snap)
	if err != nil {
		s.logger.Error("unable to encode snapshot", slog.String("error", err.Error()))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = st
	for id, w := range s.watchers {
		select {
		case w.ch <- st:
		default:
			w.dropped++
			s.logger.Debug("watcher is behind, frame dropped", slog.String("watcher", id), slog.Int("dropped", w.dropped))
		}
	}
}

// Watchers returns how many spectators are connected.
func (s *Server) Watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watchers)
}

func (s *Server) Watch(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	id := uuid.New().String()
	w := &watcher{ch: make(chan *structpb.Struct, watcherBuffer)}

	s.mu.Lock()
	s.watchers[id] = w
	if s.last != nil {
		w.ch <- s.last
	}
	s.mu.Unlock()
	s.logger.Info("watcher connected", slog.String("watcher", id))

	defer func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
		s.logger.Info("watcher disconnected", slog.String("watcher", id))
	}()

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case st := <-w.ch:
			if err := stream.Send(st); err != nil {
				s.logger.Debug("unable to send snapshot", slog.String("watcher", id), slog.String("error", err.Error()))
				return err
			}
		}
	}
}
