package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"tetris/config"
	"tetris/gui"
	"tetris/music"
	"tetris/music/ebitenaudio"
	"tetris/tetris"
)

func main() {
	var cfg config.Config
	cfg.Register(flag.CommandLine)
	mute := flag.Bool("mute", false, "start with the sound off")
	flag.Parse()

	logger, closeLog, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog() //nolint: errcheck

	session, err := cfg.NewSession(logger)
	if err != nil {
		log.Fatal(err)
	}
	spectators, stop, err := cfg.Serve(logger)
	if err != nil {
		log.Fatal(err)
	}
	defer stop()

	backend, err := ebitenaudio.New(audio.NewContext(music.SampleRate))
	if err != nil {
		log.Fatal(err)
	}
	defer backend.Close() //nolint: errcheck
	player := music.New(backend, logger)
	if *mute {
		player.Handle(tetris.MuteToggle)
	}

	opts := &gui.Options{NoGhost: cfg.NoGhost, Name: cfg.Name, Music: player}
	if spectators != nil {
		opts.Publisher = spectators
	}

	ebiten.SetWindowSize(gui.ScreenWidth, gui.ScreenHeight)
	ebiten.SetWindowTitle("Tetris")
	if err := ebiten.RunGame(gui.New(session, logger, opts)); err != nil {
		logger.Error("game stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
