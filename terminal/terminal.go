// Package terminal plays the game in a raw terminal: ANSI rendering and
// keyboard input.
package terminal

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/eiannone/keyboard"

	"tetris/tetris"
)

type clientState int

const (
	lobby clientState = iota
	playing
)

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

type tetrisGame interface {
	Start()
	Stop()
	Action(tetris.Action)
	GetUpdate() <-chan *tetris.Snapshot
}

type renderer interface {
	game(*tetris.Snapshot)
	lobby(message)
}

// Publisher receives every snapshot the terminal renders, e.g. to stream it
// to spectators.
type Publisher interface {
	Publish(*tetris.Snapshot)
}

type Terminal struct {
	tetris    tetrisGame
	render    renderer
	logger    *slog.Logger
	kbCh      <-chan keyboard.KeyEvent
	state     *state
	publisher Publisher
}

type Options struct {
	// Writer defaults to stdout.
	Writer    io.Writer
	NoGhost   bool
	Name      string
	Publisher Publisher
}

// New opens the keyboard and returns a terminal playing g.
func New(g *tetris.Game, l *slog.Logger, o *Options) (*Terminal, error) {
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	return &Terminal{
		tetris:    g,
		render:    newRender(w, l, o.NoGhost, o.Name),
		logger:    l,
		kbCh:      kb,
		state:     &state{current: lobby},
		publisher: o.Publisher,
	}, nil
}

// Start runs the game until the player quits.
func (t *Terminal) Start() {
	go t.listenTetris()
	t.tetris.Start()
	var wg sync.WaitGroup
	wg.Add(1)
	go t.listenKB(&wg)
	wg.Wait()
	t.tetris.Stop()
}

// Close releases the keyboard.
func (t *Terminal) Close() error {
	return keyboard.Close()
}

func (t *Terminal) listenKB(wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		event, ok := <-t.kbCh
		if !ok {
			t.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			t.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		switch t.state.get() {
		case lobby:
			switch event.Rune {
			case 'p':
				t.state.set(playing)
				t.tetris.Action(tetris.StartNewGame)
			case 'q':
				return
			}
		case playing:
			if a, ok := action(event); ok {
				t.tetris.Action(a)
			}
		}
	}
}

func action(event keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
		return tetris.MoveDown, true
	case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
		return tetris.MoveLeft, true
	case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
		return tetris.MoveRight, true
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'e':
		return tetris.RotateRight, true
	case event.Rune == 'q':
		return tetris.RotateLeft, true
	case event.Key == keyboard.KeySpace:
		return tetris.DropDown, true
	case event.Rune == 'c':
		return tetris.HoldPiece, true
	case event.Rune == 'p' || event.Key == keyboard.KeyEsc:
		return tetris.PauseToggle, true
	}
	return "", false
}

func (t *Terminal) listenTetris() {
	for u := range t.tetris.GetUpdate() {
		if t.publisher != nil {
			t.publisher.Publish(u)
		}
		t.render.game(u)
		switch u.Phase {
		case tetris.NotStarted:
			t.render.lobby(defaultLobby())
		case tetris.Paused:
			t.render.lobby(paused())
		case tetris.GameOver:
			t.state.set(lobby)
			t.render.lobby(gameOver())
		}
	}
}

// Spectate renders the snapshots of somebody else's game until updates is
// closed. Nothing is read from the keyboard.
func Spectate(w io.Writer, l *slog.Logger, name string, updates <-chan *tetris.Snapshot) {
	r := newRender(w, l, false, name)
	r.game(nil)
	r.lobby(watching(name))
	for u := range updates {
		r.game(u)
		switch u.Phase {
		case tetris.NotStarted:
			r.lobby(watching(name))
		case tetris.Paused:
			r.lobby(message{"Paused", "(ctrl+c) quit"})
		case tetris.GameOver:
			r.lobby(message{"Game Over", "(ctrl+c) quit"})
		}
	}
}
