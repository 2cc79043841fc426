// Package input turns the keys held on every frame into game actions, with
// auto repeat for sideways moves.
package input

import (
	"time"

	"tetris/tetris"
)

// Key is a game control, whatever physical key it's bound to.
type Key int

const (
	Left Key = iota
	Right
	Down
	RotateRight
	RotateLeft
	Drop
	Hold
	Pause
	Start
	Mute
	NextTrack

	numKeys
)

// Keys is the set of controls held down on one frame.
type Keys [numKeys]bool

const (
	// DefaultDelay is how long a sideways key is held before it repeats.
	DefaultDelay = 200 * time.Millisecond
	// DefaultInterval is the time between two repeats.
	DefaultInterval = 100 * time.Millisecond
)

// edge are the controls that act once per press.
var edge = map[Key]tetris.Action{
	RotateRight: tetris.RotateRight,
	RotateLeft:  tetris.RotateLeft,
	Drop:        tetris.DropDown,
	Hold:        tetris.HoldPiece,
	Pause:       tetris.PauseToggle,
	Start:       tetris.StartNewGame,
	Mute:        tetris.MuteToggle,
	NextTrack:   tetris.ChangeTrack,
}

// Repeater keeps the key state between frames.
type Repeater struct {
	Delay, Interval time.Duration

	prev  Keys
	timer [numKeys]time.Duration
}

func NewRepeater() *Repeater {
	return &Repeater{Delay: DefaultDelay, Interval: DefaultInterval}
}

// Update takes the keys held on this frame and the time since the previous
// one, and returns the actions to apply in order.
func (r *Repeater) Update(keys Keys, dt time.Duration) []tetris.Action {
	var out []tetris.Action
	pressed := func(k Key) bool { return keys[k] && !r.prev[k] }

	for k := Key(0); k < numKeys; k++ {
		if a, ok := edge[k]; ok && pressed(k) {
			out = append(out, a)
		}
	}

	// holding both sides moves nowhere.
	if !(keys[Left] && keys[Right]) {
		out = append(out, r.repeat(Left, keys, dt, tetris.MoveLeft)...)
		out = append(out, r.repeat(Right, keys, dt, tetris.MoveRight)...)
	}

	switch {
	case pressed(Down):
		out = append(out, tetris.SoftDropStart)
	case !keys[Down] && r.prev[Down]:
		out = append(out, tetris.SoftDropStop)
	}

	r.prev = keys
	return out
}

func (r *Repeater) repeat(k Key, keys Keys, dt time.Duration, a tetris.Action) []tetris.Action {
	switch {
	case !keys[k]:
		r.timer[k] = 0
		return nil
	case !r.prev[k]:
		r.timer[k] = r.Delay
		return []tetris.Action{a}
	}
	r.timer[k] -= dt
	if r.timer[k] > 0 {
		return nil
	}
	r.timer[k] = r.Interval
	return []tetris.Action{a}
}

// Reset forgets every held key, e.g. when the window loses focus.
func (r *Repeater) Reset() {
	r.prev = Keys{}
	r.timer = [numKeys]time.Duration{}
}
