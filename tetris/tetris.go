// Package tetris contains the logic of the game
// based on https://tetris.wiki/Tetris_Guideline
package tetris

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Phase is the state of a session.
type Phase int

const (
	NotStarted Phase = iota
	Running
	Paused
	GameOver
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// maxEvents bounds the events kept for a caller that never drains them.
const maxEvents = 64

// Session is one player's game: the stack, the falling piece, the upcoming
// pieces and the score. It's not safe for concurrent use; whoever runs the
// frame loop owns it.
type Session struct {
	cfg    Config
	grid   *Grid
	ctl    Controller
	gen    Generator
	logger *slog.Logger

	id         string
	phase      Phase
	score      int
	linesClear int
	level      int
	softDrop   bool
	elapsed    time.Duration
	stats      map[Shape]int
	events     []Event
}

// NewSession returns a session in the NotStarted phase. A nil generator uses
// a Bag and a nil logger discards everything.
func NewSession(cfg Config, gen Generator, logger *slog.Logger) *Session {
	cfg = cfg.withDefaults()
	if gen == nil {
		gen = NewBag(nil)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		cfg:    cfg,
		grid:   NewGrid(cfg.Width, cfg.Height),
		gen:    gen,
		logger: logger,
		level:  cfg.StartLevel,
		stats:  make(map[Shape]int),
	}
}

func (s *Session) ID() string      { return s.id }
func (s *Session) Phase() Phase    { return s.phase }
func (s *Session) Score() int      { return s.score }
func (s *Session) Level() int      { return s.level }
func (s *Session) LinesClear() int { return s.linesClear }

// Start begins a new game from NotStarted or GameOver: the stack, score,
// level, hold slot and statistics are reset and the first piece spawns.
func (s *Session) Start() bool {
	if s.phase != NotStarted && s.phase != GameOver {
		return false
	}
	s.id = uuid.New().String()
	s.grid.Reset()
	s.ctl.reset()
	s.gen.Reset()
	s.score = 0
	s.linesClear = 0
	s.level = s.cfg.StartLevel
	s.softDrop = false
	s.stats = make(map[Shape]int)
	s.events = nil
	s.phase = Running
	s.logger.Info("game started", slog.String("game", s.id), slog.Int("level", s.level))
	s.emit(Event{Kind: EventStart})
	s.spawn(s.gen.Next())
	return true
}

// Pause stops gravity and input until Resume.
func (s *Session) Pause() bool {
	if s.phase != Running {
		return false
	}
	s.phase = Paused
	s.softDrop = false
	s.emit(Event{Kind: EventPause})
	return true
}

func (s *Session) Resume() bool {
	if s.phase != Paused {
		return false
	}
	s.phase = Running
	s.emit(Event{Kind: EventResume})
	return true
}

// Handle applies an action and reports whether it changed anything.
// Actions that don't apply to the current phase are ignored.
func (s *Session) Handle(a Action) bool {
	switch s.phase {
	case NotStarted, GameOver:
		if a == StartNewGame {
			return s.Start()
		}
		return false
	case Paused:
		if a == PauseToggle {
			return s.Resume()
		}
		return false
	}

	switch a {
	case MoveLeft:
		return s.Move(-1)
	case MoveRight:
		return s.Move(1)
	case MoveDown:
		return s.SoftDrop()
	case SoftDropStart:
		return s.SetSoftDrop(true)
	case SoftDropStop:
		return s.SetSoftDrop(false)
	case DropDown:
		return s.HardDrop()
	case RotateRight:
		return s.Rotate(Clockwise)
	case RotateLeft:
		return s.Rotate(CounterClockwise)
	case HoldPiece:
		return s.Hold()
	case PauseToggle:
		return s.Pause()
	}
	return false
}

// Move shifts the piece dCol columns sideways.
func (s *Session) Move(dCol int) bool {
	if s.phase != Running || !s.ctl.TryMove(s.grid, 0, dCol) {
		return false
	}
	s.emit(Event{Kind: EventMove})
	return true
}

func (s *Session) Rotate(dir Direction) bool {
	if s.phase != Running || !s.ctl.TryRotate(s.grid, dir) {
		return false
	}
	s.emit(Event{Kind: EventRotate})
	return true
}

// SoftDrop moves the piece one row down, locking it when it can't move.
func (s *Session) SoftDrop() bool {
	if s.phase != Running {
		return false
	}
	if s.ctl.SoftDropTick(s.grid) {
		s.emit(Event{Kind: EventSoftDrop})
		return true
	}
	s.lock()
	return true
}

// SetSoftDrop switches the faster soft drop gravity on or off.
func (s *Session) SetSoftDrop(on bool) bool {
	if s.phase != Running || s.softDrop == on {
		return false
	}
	s.softDrop = on
	return true
}

// HardDrop drops the piece to the bottom and locks it.
func (s *Session) HardDrop() bool {
	if s.phase != Running || s.ctl.Current() == nil {
		return false
	}
	s.ctl.HardDrop(s.grid)
	s.emit(Event{Kind: EventHardDrop})
	s.lock()
	return true
}

// Hold swaps the piece with the hold slot, once per spawn.
func (s *Session) Hold() bool {
	if s.phase != Running {
		return false
	}
	empty := s.ctl.Held() == ""
	var drawn Shape
	switch s.ctl.Hold(s.grid, func() Shape { drawn = s.gen.Next(); return drawn }) {
	case HoldRefused:
		return false
	case HoldToppedOut:
		s.gameOver()
		return true
	}
	if empty {
		s.stats[drawn]++
	}
	s.elapsed = 0
	s.emit(Event{Kind: EventHold})
	return true
}

// Tick is a gravity step: the piece falls one row or locks when it can't.
func (s *Session) Tick() {
	if s.phase != Running {
		return
	}
	if !s.ctl.SoftDropTick(s.grid) {
		s.lock()
	}
}

// Update advances the gravity timer by dt and runs at most one Tick when the
// interval has elapsed. It is meant to be called once per frame.
func (s *Session) Update(dt time.Duration) {
	if s.phase != Running {
		return
	}
	s.elapsed += dt
	interval := s.GravityInterval()
	if s.elapsed < interval {
		return
	}
	s.elapsed -= interval
	if s.elapsed >= interval {
		s.elapsed = 0
	}
	s.Tick()
}

// GravityInterval is the current time between two gravity ticks.
func (s *Session) GravityInterval() time.Duration {
	d := Gravity(s.level, s.cfg.MinGravity)
	if s.softDrop && s.cfg.SoftDropInterval < d {
		return s.cfg.SoftDropInterval
	}
	return d
}

// Events returns and forgets the events since the previous call.
func (s *Session) Events() []Event {
	e := s.events
	s.events = nil
	return e
}

func (s *Session) emit(e Event) {
	if len(s.events) == maxEvents {
		s.events = s.events[1:]
	}
	s.events = append(s.events, e)
}

// lock moves the piece into the stack, resolves squares and full rows and
// spawns the next piece.
func (s *Session) lock() {
	p := s.ctl.take()
	if p == nil {
		return
	}
	cells := p.Cells()
	s.grid.Place(cells[:], p.Shape)
	s.emit(Event{Kind: EventLock})
	s.logger.Debug("piece locked", slog.String("game", s.id), slog.String("shape", string(p.Shape)), slog.Int("row", p.Row), slog.Int("col", p.Col))

	s.mergeSquares()
	if rows := s.grid.FullRows(); len(rows) > 0 {
		s.clearRows(rows)
		s.mergeSquares()
	}
	s.spawn(s.gen.Next())
}

func (s *Session) clearRows(rows []int) {
	points := LineScore(len(rows), s.level)
	if s.cfg.SquareBonus {
		points += s.grid.rowBonus(rows)
	}
	s.grid.ClearRows(rows)
	s.score += points
	s.linesClear += len(rows)
	s.emit(Event{Kind: EventClear, Rows: rows, Points: points})
	s.logger.Debug("rows cleared", slog.String("game", s.id), slog.Int("rows", len(rows)), slog.Int("points", points))

	prev := s.level
	s.level = levelFor(s.level, s.linesClear, s.cfg.LinesPerLevel)
	if s.level > prev {
		s.emit(Event{Kind: EventLevelUp, Level: s.level})
		s.logger.Debug("level up", slog.String("game", s.id), slog.Int("level", s.level))
	}
}

func (s *Session) mergeSquares() {
	if !s.cfg.SquareBonus {
		return
	}
	for _, sq := range s.grid.MergeSquares() {
		s.emit(Event{Kind: EventSquare, Square: sq})
	}
}

func (s *Session) spawn(shape Shape) bool {
	if !s.ctl.TrySpawn(s.grid, shape) {
		s.gameOver()
		return false
	}
	s.stats[shape]++
	s.elapsed = 0
	return true
}

func (s *Session) gameOver() {
	s.phase = GameOver
	s.softDrop = false
	s.emit(Event{Kind: EventGameOver})
	s.logger.Info("game over", slog.String("game", s.id), slog.Int("score", s.score), slog.Int("lines", s.linesClear), slog.Int("level", s.level))
}
