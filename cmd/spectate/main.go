package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/eiannone/keyboard"

	"tetris/client"
	"tetris/config"
	"tetris/terminal"
)

const (
	hideCursor = "\033[2J\033[?25l"
	showCursor = "\033[23;0H\n\r\033[?25h"
)

func main() {
	address := flag.String("address", "localhost:9000", "address of the game to watch")
	name := flag.String("name", "", "name of the player shown on the screen")
	cfg := config.Config{}
	flag.StringVar(&cfg.LogFile, "log-file", "", "write logs to this file")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger, closeLog, err := cfg.Logger(nil)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog() //nolint: errcheck

	c, err := client.New(logger, &client.Options{Address: *address})
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close() //nolint: errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates, err := c.Watch(ctx)
	if err != nil {
		log.Fatal(err)
	}

	// the keyboard is in raw mode: ctrl+c comes as a key, not a signal.
	keys, err := keyboard.GetKeys(10)
	if err != nil {
		log.Fatal(fmt.Errorf("failed to open keyboard: %w", err))
	}
	defer keyboard.Close() //nolint: errcheck
	go func() {
		for e := range keys {
			if e.Err != nil || e.Key == keyboard.KeyCtrlC || e.Rune == 'q' {
				cancel()
				return
			}
		}
	}()

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)
	terminal.Spectate(os.Stdout, logger, *name, updates)
	logger.Info("stopped watching", slog.String("address", *address))
}
