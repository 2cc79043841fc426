// Package config holds the command line settings shared by the terminal
// and the window front-ends, and builds what they describe.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"os"

	"google.golang.org/grpc"

	"tetris/pb"
	"tetris/server"
	"tetris/tetris"
)

const (
	GeneratorBag     = "bag"
	GeneratorUniform = "uniform"
)

type Config struct {
	LogFile    string
	LogLevel   string
	NoGhost    bool
	Spectate   string
	StartLevel int
	Generator  string
	// Seed makes the piece sequence reproducible; 0 is random.
	Seed uint64
	Name string
}

// Register adds the flags to fs, e.g. flag.CommandLine.
func (c *Config) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.LogFile, "log-file", "", "write logs to this file")
	fs.StringVar(&c.LogLevel, "log-level", "info", "debug, info, warn or error")
	fs.BoolVar(&c.NoGhost, "no-ghost", false, "hide the landing preview")
	fs.StringVar(&c.Spectate, "spectate", "", "stream the game to spectators on this address, e.g. :9000")
	fs.IntVar(&c.StartLevel, "start-level", 1, "level a new game starts at")
	fs.StringVar(&c.Generator, "generator", GeneratorBag, "piece generator: bag or uniform")
	fs.Uint64Var(&c.Seed, "seed", 0, "seed of the piece generator, 0 for random")
	fs.StringVar(&c.Name, "name", "", "player name shown to spectators")
}

// Logger returns a JSON logger writing to the log file, or to fallback when
// no file is set. A nil fallback discards the logs. closeFn releases the
// file.
func (c *Config) Logger(fallback io.Writer) (l *slog.Logger, closeFn func() error, err error) {
	var level slog.Level
	if err = level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	noop := func() error { return nil }

	if c.LogFile == "" {
		if fallback == nil {
			return slog.New(slog.DiscardHandler), noop, nil
		}
		return slog.New(slog.NewJSONHandler(fallback, opts)), noop, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, opts)), f.Close, nil
}

func (c *Config) rand() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(c.Seed, c.Seed))
}

func (c *Config) NewGenerator() (tetris.Generator, error) {
	switch c.Generator {
	case GeneratorBag, "":
		return tetris.NewBag(c.rand()), nil
	case GeneratorUniform:
		return tetris.NewUniform(c.rand()), nil
	}
	return nil, fmt.Errorf("unknown generator %q", c.Generator)
}

// NewSession returns a session with the standard rules and the configured
// start level and generator.
func (c *Config) NewSession(l *slog.Logger) (*tetris.Session, error) {
	gen, err := c.NewGenerator()
	if err != nil {
		return nil, err
	}
	cfg := tetris.DefaultConfig()
	cfg.StartLevel = c.StartLevel
	return tetris.NewSession(cfg, gen, l), nil
}

// Serve starts the spectator server when an address is set. The returned
// server is nil otherwise; stop is always safe to call.
func (c *Config) Serve(l *slog.Logger) (srv *server.Server, stop func(), err error) {
	if c.Spectate == "" {
		return nil, func() {}, nil
	}
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	lis, err := net.Listen("tcp", c.Spectate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to listen: %w", err)
	}
	srv = server.New(l)
	s := grpc.NewServer()
	pb.RegisterSpectatorServer(s, srv)
	go func() {
		if err := s.Serve(lis); err != nil {
			l.Error("unable to serve spectators", slog.String("error", err.Error()))
		}
	}()
	l.Info("streaming to spectators", slog.String("address", lis.Addr().String()))
	return srv, s.Stop, nil
}
