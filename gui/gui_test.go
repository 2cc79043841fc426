package gui

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tetris/input"
	"tetris/tetris"
)

const frame = 16 * time.Millisecond

type fakeMusic struct {
	actions []tetris.Action
	events  []tetris.EventKind
}

func (f *fakeMusic) Handle(a tetris.Action) { f.actions = append(f.actions, a) }
func (f *fakeMusic) Update(s *tetris.Snapshot) {
	for _, e := range s.Events {
		f.events = append(f.events, e.Kind)
	}
}

type fakePublisher struct {
	snaps []*tetris.Snapshot
}

func (f *fakePublisher) Publish(s *tetris.Snapshot) { f.snaps = append(f.snaps, s) }

func held(keys ...input.Key) input.Keys {
	var k input.Keys
	for _, key := range keys {
		k[key] = true
	}
	return k
}

func newTestGame() (*Game, *fakeMusic, *fakePublisher) {
	s := tetris.NewSession(tetris.DefaultConfig(), tetris.NewSequence(tetris.T), nil)
	m, p := &fakeMusic{}, &fakePublisher{}
	return New(s, nil, &Options{Music: m, Publisher: p}), m, p
}

func TestStep(t *testing.T) {
	g, m, p := newTestGame()
	require.Equal(t, tetris.NotStarted, g.snap.Phase)

	g.step(held(input.Start), frame)
	assert.Equal(t, tetris.Running, g.snap.Phase)
	assert.Equal(t, []tetris.Action{tetris.StartNewGame}, m.actions)
	assert.Contains(t, m.events, tetris.EventStart)
	require.Len(t, p.snaps, 1)
	col := g.snap.Tetromino.Col

	t.Run("a frame without change isn't published", func(t *testing.T) {
		g.step(input.Keys{}, frame)
		assert.Len(t, p.snaps, 1)
	})

	t.Run("moves", func(t *testing.T) {
		g.step(held(input.Left), frame)
		assert.Equal(t, col-1, g.snap.Tetromino.Col)
		assert.Len(t, p.snaps, 2)
		assert.Contains(t, m.events, tetris.EventMove)
	})

	t.Run("gravity", func(t *testing.T) {
		row := g.snap.Tetromino.Row
		g.step(input.Keys{}, time.Second)
		assert.Equal(t, row+1, g.snap.Tetromino.Row)
		assert.Len(t, p.snaps, 3)
	})

	t.Run("music keys", func(t *testing.T) {
		g.step(held(input.Mute), frame)
		g.step(held(input.NextTrack), frame)
		assert.True(t, slices.Contains(m.actions, tetris.MuteToggle))
		assert.True(t, slices.Contains(m.actions, tetris.ChangeTrack))
		assert.Equal(t, tetris.Running, g.snap.Phase)
	})

	t.Run("hard drop", func(t *testing.T) {
		g.step(held(input.Drop), frame)
		assert.Equal(t, 2, g.snap.Statistics[tetris.T])
		assert.Subset(t, m.events, []tetris.EventKind{tetris.EventHardDrop, tetris.EventLock})
	})
}

func TestFocus(t *testing.T) {
	g, _, _ := newTestGame()
	g.step(held(input.Start), frame)

	g.focus(false)
	g.step(input.Keys{}, frame)
	assert.Equal(t, tetris.Paused, g.snap.Phase)

	g.focus(true)
	g.step(input.Keys{}, frame)
	assert.Equal(t, tetris.Paused, g.snap.Phase, "wanted the game to stay paused")

	g.step(held(input.Pause), frame)
	assert.Equal(t, tetris.Running, g.snap.Phase)
}

func TestNoMusic(t *testing.T) {
	s := tetris.NewSession(tetris.DefaultConfig(), nil, nil)
	g := New(s, nil, &Options{})
	g.step(held(input.Start, input.Mute), frame)
	assert.Equal(t, tetris.Running, g.snap.Phase)
}

func TestChanged(t *testing.T) {
	piece := func(row int) *tetris.Piece { return &tetris.Piece{Shape: tetris.T, Row: row, Col: 3} }
	tests := []struct {
		name       string
		prev, next *tetris.Snapshot
		want       bool
	}{
		{"same", &tetris.Snapshot{Tetromino: piece(1)}, &tetris.Snapshot{Tetromino: piece(1)}, false},
		{"moved", &tetris.Snapshot{Tetromino: piece(1)}, &tetris.Snapshot{Tetromino: piece(2)}, true},
		{"events", &tetris.Snapshot{Tetromino: piece(1)}, &tetris.Snapshot{Tetromino: piece(1), Events: []tetris.Event{{Kind: tetris.EventHold}}}, true},
		{"phase", &tetris.Snapshot{Phase: tetris.Running}, &tetris.Snapshot{Phase: tetris.GameOver}, true},
		{"piece gone", &tetris.Snapshot{Tetromino: piece(1)}, &tetris.Snapshot{}, true},
		{"no piece", &tetris.Snapshot{}, &tetris.Snapshot{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, changed(tt.prev, tt.next))
		})
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		shape tetris.Shape
		want  []tetris.Point
	}{
		{tetris.I, []tetris.Point{{0, 0}, {0, 1}, {0, 2}, {0, 3}}},
		{tetris.O, []tetris.Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
		{tetris.T, []tetris.Point{{0, 1}, {1, 0}, {1, 1}, {1, 2}}},
		{tetris.L, []tetris.Point{{0, 2}, {1, 0}, {1, 1}, {1, 2}}},
	}
	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, preview(tt.shape))
		})
	}
}

func TestOverlay(t *testing.T) {
	assert.Empty(t, overlay(&tetris.Snapshot{Phase: tetris.Running}))
	assert.Equal(t, "PAUSED", overlay(&tetris.Snapshot{Phase: tetris.Paused})[0])
	assert.Equal(t, []string{"GAME OVER", "Score: 1200", "Press ENTER to play again"},
		overlay(&tetris.Snapshot{Phase: tetris.GameOver, Score: 1200}))
	assert.Len(t, overlay(&tetris.Snapshot{}), 2)
}

func TestHUD(t *testing.T) {
	got := hud(&tetris.Snapshot{Score: 800, Level: 2, LinesClear: 14})
	assert.Equal(t, []string{
		"SCORE      800",
		"LEVEL        2",
		"LINES       14",
	}, got)
}

func TestTitle(t *testing.T) {
	g, _, _ := newTestGame()
	assert.Equal(t, "TETRIS", g.title())
	g.name = "ana"
	assert.Equal(t, "TETRIS  Player: ana", g.title())
}
