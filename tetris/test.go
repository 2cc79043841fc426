package tetris

import (
	"sync"
	"time"
)

// MockTicker is a mock implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// Sequence is a Generator that deals the given shapes in order, over and
// over. Reset goes back to the first one.
type Sequence struct {
	shapes []Shape
	pos    int
}

func NewSequence(shapes ...Shape) *Sequence {
	return &Sequence{shapes: shapes}
}

func (s *Sequence) Reset() { s.pos = 0 }

func (s *Sequence) Next() Shape {
	shape := s.shapes[s.pos%len(s.shapes)]
	s.pos++
	return shape
}

func (s *Sequence) Peek(n int) []Shape {
	out := make([]Shape, 0, n)
	for i := range n {
		out = append(out, s.shapes[(s.pos+i)%len(s.shapes)])
	}
	return out
}

// NewTestSession returns a started session on the default 10x20 stack where
// every piece is of the given shape.
func NewTestSession(shape Shape) *Session {
	s := NewSession(DefaultConfig(), NewSequence(shape), nil)
	s.Start()
	return s
}

// NewTestGame creates a game around a session and returns it with a manual
// ticker.
func NewTestGame(s *Session) (*Game, *MockTicker) {
	ticker := NewMockTicker()
	return NewConfigurableGame(s, ticker), ticker
}
