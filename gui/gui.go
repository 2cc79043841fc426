// Package gui plays the game in a window, drawn with ebiten.
package gui

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tetris/input"
	"tetris/tetris"
)

// Music follows the game, see music.Manager.
type Music interface {
	Handle(tetris.Action)
	Update(*tetris.Snapshot)
}

// Publisher receives the snapshots that changed, e.g. to stream them to
// spectators.
type Publisher interface {
	Publish(*tetris.Snapshot)
}

type Options struct {
	NoGhost bool
	Name    string
	// Music and Publisher are optional.
	Music     Music
	Publisher Publisher
}

var bindings = map[input.Key][]ebiten.Key{
	input.Left:        {ebiten.KeyLeft, ebiten.KeyA},
	input.Right:       {ebiten.KeyRight, ebiten.KeyD},
	input.Down:        {ebiten.KeyDown, ebiten.KeyS},
	input.RotateRight: {ebiten.KeyUp, ebiten.KeyX, ebiten.KeyE},
	input.RotateLeft:  {ebiten.KeyZ, ebiten.KeyQ},
	input.Drop:        {ebiten.KeySpace},
	input.Hold:        {ebiten.KeyC, ebiten.KeyShiftLeft},
	input.Pause:       {ebiten.KeyP, ebiten.KeyEscape},
	input.Start:       {ebiten.KeyEnter},
	input.Mute:        {ebiten.KeyM},
	input.NextTrack:   {ebiten.KeyN},
}

// Game implements ebiten.Game. It owns the session: everything runs on the
// ebiten frame loop.
type Game struct {
	session   *tetris.Session
	repeater  *input.Repeater
	music     Music
	publisher Publisher
	logger    *slog.Logger
	noGhost   bool
	name      string

	snap    *tetris.Snapshot
	focused bool
}

func New(s *tetris.Session, l *slog.Logger, o *Options) *Game {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	g := &Game{
		session:   s,
		repeater:  input.NewRepeater(),
		music:     o.Music,
		publisher: o.Publisher,
		logger:    l,
		noGhost:   o.NoGhost,
		name:      o.Name,
		snap:      s.Snapshot(),
		focused:   true,
	}
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.snap.Phase != tetris.Running && g.snap.Phase != tetris.Paused {
		return ebiten.Termination
	}
	g.focus(ebiten.IsFocused())

	var keys input.Keys
	for k, keyCodes := range bindings {
		for _, c := range keyCodes {
			if ebiten.IsKeyPressed(c) {
				keys[k] = true
			}
		}
	}
	g.step(keys, time.Second/time.Duration(ebiten.TPS()))
	return nil
}

// focus pauses the game when the window loses the focus; keys released
// meanwhile would be seen as still held.
func (g *Game) focus(focused bool) {
	if focused == g.focused {
		return
	}
	g.focused = focused
	g.repeater.Reset()
	if !focused && g.session.Pause() {
		g.logger.Debug("game paused on focus lost")
	}
}

// step runs one frame: the actions of the keys, then gravity.
func (g *Game) step(keys input.Keys, dt time.Duration) {
	for _, a := range g.repeater.Update(keys, dt) {
		if g.music != nil {
			g.music.Handle(a)
		}
		g.session.Handle(a)
	}
	g.session.Update(dt)

	snap := g.session.Snapshot()
	snap.Events = g.session.Events()
	if g.music != nil {
		g.music.Update(snap)
	}
	if g.publisher != nil && changed(g.snap, snap) {
		g.publisher.Publish(snap)
	}
	g.snap = snap
}

// changed tells whether a spectator would see a difference. Gravity moves
// the piece without an event.
func changed(prev, next *tetris.Snapshot) bool {
	switch {
	case len(next.Events) > 0, prev.Phase != next.Phase:
		return true
	case prev.Tetromino == nil || next.Tetromino == nil:
		return prev.Tetromino != next.Tetromino
	}
	return *prev.Tetromino != *next.Tetromino
}

func (g *Game) Layout(int, int) (int, int) {
	return ScreenWidth, ScreenHeight
}
