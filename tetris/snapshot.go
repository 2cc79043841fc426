package tetris

import "maps"

// Snapshot is a copy of everything a renderer needs from a session. It
// shares no memory with the session and is safe to hand to another
// goroutine.
type Snapshot struct {
	GameID string
	Phase  Phase
	// Stack is the locked content, Stack[row][col], row 0 at the top.
	Stack [][]Shape
	// Tetromino is the falling piece, nil when there is none. Cells and
	// Ghost are its cells and the cells it would land on.
	Tetromino  *Piece
	Cells      []Point
	Ghost      []Point
	Hold       Shape
	CanHold    bool
	Next       []Shape
	Score      int
	Level      int
	LinesClear int
	// Statistics counts the pieces spawned in this game, per shape.
	Statistics map[Shape]int
	// Danger is set while the stack is close to the top.
	Danger bool
	// Events are filled by Game with the events that led to this snapshot.
	Events []Event
}

// GameOver reports whether the game has ended.
func (s *Snapshot) GameOver() bool { return s.Phase == GameOver }

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() *Snapshot {
	snap := &Snapshot{
		GameID:     s.id,
		Phase:      s.phase,
		Stack:      s.grid.Rows(),
		Hold:       s.ctl.Held(),
		CanHold:    s.ctl.CanHold(),
		Score:      s.score,
		Level:      s.level,
		LinesClear: s.linesClear,
		Statistics: maps.Clone(s.stats),
		Danger:     s.grid.StackHeight() >= s.cfg.DangerHeight,
	}
	if s.phase != NotStarted && s.cfg.Preview > 0 {
		snap.Next = s.gen.Peek(s.cfg.Preview)
	}
	if p := s.ctl.Current(); p != nil {
		snap.Tetromino = p
		cells := p.Cells()
		snap.Cells = cells[:]
		g := s.ctl.Ghost(s.grid)
		ghost := g.Cells()
		snap.Ghost = ghost[:]
	}
	return snap
}
