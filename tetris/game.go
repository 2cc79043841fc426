package tetris

import (
	"time"
)

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Game runs a Session in its own goroutine: gravity comes from a ticker,
// actions from Action, and a snapshot is published after each of them. The
// goroutine is the only one touching the session.
type Game struct {
	session  *Session
	ticker   Ticker
	interval time.Duration
	updateCh chan *Snapshot
	actionCh chan Action
	doneCh   chan bool
}

func NewGame(s *Session) *Game {
	return NewConfigurableGame(s, newWrappedTicker(1*time.Hour))
}

func NewConfigurableGame(s *Session, ticker Ticker) *Game {
	return &Game{
		session:  s,
		ticker:   ticker,
		updateCh: make(chan *Snapshot),
		actionCh: make(chan Action),
		doneCh:   make(chan bool, 1),
	}
}

// Start runs the loop and publishes the initial snapshot. The session stays
// in its current phase until a StartNewGame action.
func (g *Game) Start() {
	go g.listen()
}

func (g *Game) Stop() {
	g.ticker.Stop()
	g.doneCh <- true
}

func (g *Game) Action(a Action) {
	g.actionCh <- a
}

// GetUpdate returns the channel snapshots are published on. It must be
// drained for the loop to make progress.
func (g *Game) GetUpdate() <-chan *Snapshot {
	return g.updateCh
}

func (g *Game) listen() {
	g.resetTicker(true)
	if !g.publish(nil) {
		return
	}
	for {
		select {
		case <-g.ticker.C():
			g.session.Tick()
		case a := <-g.actionCh:
			g.session.Handle(a)
		case <-g.doneCh:
			return
		}
		events := g.session.Events()
		g.resetTicker(newPiece(events))
		if !g.publish(events) {
			return
		}
	}
}

// resetTicker restarts the ticker when a new piece needs a full interval or
// when the interval changes. Moving the piece around doesn't hold gravity
// back.
func (g *Game) resetTicker(force bool) {
	if d := g.session.GravityInterval(); force || d != g.interval {
		g.interval = d
		g.ticker.Reset(d)
	}
}

func newPiece(events []Event) bool {
	for _, e := range events {
		switch e.Kind {
		case EventStart, EventLock, EventHold, EventResume:
			return true
		}
	}
	return false
}

// publish sends a snapshot, returning false if the game was stopped while
// waiting for a reader.
func (g *Game) publish(events []Event) bool {
	snap := g.session.Snapshot()
	snap.Events = events
	select {
	case g.updateCh <- snap:
		return true
	case <-g.doneCh:
		return false
	}
}
