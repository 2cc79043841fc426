package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/term"

	"tetris/config"
	"tetris/terminal"
	"tetris/tetris"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[23;0H\n\r\033[?25h"

	minWidth  = 62
	minHeight = 23
)

func main() {
	var cfg config.Config
	cfg.Register(flag.CommandLine)
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal("tetris needs an interactive terminal")
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < minWidth || h < minHeight) {
		log.Fatalf("the terminal is %dx%d, it needs to be at least %dx%d", w, h, minWidth, minHeight)
	}

	logger, closeLog, err := cfg.Logger(nil)
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

	opts := &terminal.Options{NoGhost: cfg.NoGhost, Name: cfg.Name}
	if spectators != nil {
		opts.Publisher = spectators
	}
	t, err := terminal.New(tetris.NewGame(session), logger, opts)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := t.Close(); err != nil {
			logger.Error("unable to close the keyboard", slog.String("error", err.Error()))
		}
	}()

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)
	t.Start()
}
