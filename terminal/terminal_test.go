package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/eiannone/keyboard"

	"tetris/tetris"
)

type mockTetris struct {
	updateCh    chan *tetris.Snapshot
	start, stop bool
	action      tetris.Action
	mu          sync.Mutex
}

func (m *mockTetris) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *mockTetris) GetUpdate() <-chan *tetris.Snapshot { return m.updateCh }
func (m *mockTetris) Start() {
	m.mu.Lock()
	m.start = true
	m.mu.Unlock()
	m.updateCh <- &tetris.Snapshot{Phase: tetris.NotStarted}
}
func (m *mockTetris) Action(a tetris.Action) {
	m.mu.Lock()
	m.action = a
	m.mu.Unlock()
	m.updateCh <- &tetris.Snapshot{Phase: tetris.Running}
}
func (m *mockTetris) sendGameOver() { m.updateCh <- &tetris.Snapshot{Phase: tetris.GameOver} }
func (m *mockTetris) get() (bool, bool, tetris.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.start, m.stop, m.action
}

type mockRender struct {
	gameCount, lobbyCount int
	last                  message
	mu                    sync.Mutex
}

func (m *mockRender) game(*tetris.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gameCount++
}
func (m *mockRender) lobby(msg message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lobbyCount++
	m.last = msg
}
func (m *mockRender) counts() (int, int, message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gameCount, m.lobbyCount, m.last
}

type mockPublisher struct {
	count int
	mu    sync.Mutex
}

func (m *mockPublisher) Publish(*tetris.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
}

func TestTerminal(t *testing.T) {
	render := &mockRender{}
	tts := &mockTetris{updateCh: make(chan *tetris.Snapshot)}
	pub := &mockPublisher{}
	kCh := make(chan keyboard.KeyEvent)
	term := &Terminal{
		tetris:    tts,
		render:    render,
		logger:    slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})),
		kbCh:      kCh,
		state:     &state{current: lobby},
		publisher: pub,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { term.Start(); wg.Done() }()
	time.Sleep(10 * time.Millisecond)

	// the first update is a game not started, which shows the lobby.
	if start, _, _ := tts.get(); !start {
		t.Errorf("wanted tetris.Start() to be called")
	}
	if g, l, m := render.counts(); g != 1 || l != 1 || m != defaultLobby() {
		t.Errorf("wanted the lobby rendered once over the game, got %d games, %d lobbies, %v", g, l, m)
	}
	wantGameCount := 1

	// 'p' starts a new game.
	kCh <- keyboard.KeyEvent{Rune: 'p'}
	time.Sleep(10 * time.Millisecond)
	wantGameCount++
	if _, _, a := tts.get(); a != tetris.StartNewGame {
		t.Errorf("wanted %v, got %v", tetris.StartNewGame, a)
	}
	if term.state.get() != playing {
		t.Errorf("wanted to be playing after 'p' key press")
	}

	// while in game, keys should direct to tetris actions.
	actions := []struct {
		key    keyboard.KeyEvent
		action tetris.Action
	}{
		{key: keyboard.KeyEvent{Rune: 's'}, action: tetris.MoveDown},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowDown}, action: tetris.MoveDown},
		{key: keyboard.KeyEvent{Rune: 'a'}, action: tetris.MoveLeft},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, action: tetris.MoveLeft},
		{key: keyboard.KeyEvent{Rune: 'd'}, action: tetris.MoveRight},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowRight}, action: tetris.MoveRight},
		{key: keyboard.KeyEvent{Rune: 'e'}, action: tetris.RotateRight},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowUp}, action: tetris.RotateRight},
		{key: keyboard.KeyEvent{Rune: 'q'}, action: tetris.RotateLeft},
		{key: keyboard.KeyEvent{Key: keyboard.KeySpace}, action: tetris.DropDown},
		{key: keyboard.KeyEvent{Rune: 'c'}, action: tetris.HoldPiece},
		{key: keyboard.KeyEvent{Rune: 'p'}, action: tetris.PauseToggle},
		{key: keyboard.KeyEvent{Key: keyboard.KeyEsc}, action: tetris.PauseToggle},
	}
	for _, a := range actions {
		wantGameCount++
		t.Run(fmt.Sprintf("key %v", a.key), func(t *testing.T) {
			kCh <- a.key
			time.Sleep(10 * time.Millisecond)
			if g, _, _ := render.counts(); g != wantGameCount {
				t.Errorf("wanted render.game() to be %d times, got %d", wantGameCount, g)
			}
			if _, _, got := tts.get(); got != a.action {
				t.Errorf("wanted action %v, got %v", a.action, got)
			}
		})
	}

	// keys that aren't mapped are dropped.
	kCh <- keyboard.KeyEvent{Rune: 'z'}
	time.Sleep(10 * time.Millisecond)
	if g, _, _ := render.counts(); g != wantGameCount {
		t.Errorf("wanted no update for an unmapped key, got %d", g)
	}

	// game over renders the game, then the lobby, and goes back to it.
	wantGameCount++
	tts.sendGameOver()
	time.Sleep(10 * time.Millisecond)
	if g, l, m := render.counts(); g != wantGameCount || l != 2 || m != gameOver() {
		t.Errorf("wanted %d games and 2 lobbies ending in game over, got %d, %d, %v", wantGameCount, g, l, m)
	}
	if term.state.get() != lobby {
		t.Errorf("wanted to be back in the lobby")
	}
	pub.mu.Lock()
	if pub.count != wantGameCount {
		t.Errorf("wanted every update published, got %d of %d", pub.count, wantGameCount)
	}
	pub.mu.Unlock()

	// 'q' should quit the game back in the lobby.
	kCh <- keyboard.KeyEvent{Rune: 'q'}
	wgDone := make(chan struct{})
	go func() { wg.Wait(); close(wgDone) }()
	select {
	case <-time.After(time.Second):
		t.Errorf("timeout waiting for quit")
	case <-wgDone:
	}
	if _, stop, _ := tts.get(); !stop {
		t.Errorf("wanted tetris.Stop() to be called")
	}
}
