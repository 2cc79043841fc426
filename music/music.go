// Package music plays the soundtrack and the sound effects of a game,
// following the events of its snapshots.
package music

import (
	"log/slog"

	"tetris/tetris"
)

// Backend plays PCM rendered at SampleRate. There is one music channel that
// loops and one effect channel; playing on a channel replaces what was
// playing on it.
type Backend interface {
	PlayLoop(pcm []byte) error
	PauseLoop()
	ResumeLoop()
	PlayEffect(pcm []byte) error
	SetVolume(v float64)
}

// Volume is the level of everything while not muted.
const Volume = 0.5

var eventEffects = map[tetris.EventKind]Effect{
	tetris.EventMove:     EffectMove,
	tetris.EventRotate:   EffectRotate,
	tetris.EventPause:    EffectPause,
	tetris.EventLock:     EffectLock,
	tetris.EventHardDrop: EffectDrop,
	tetris.EventClear:    EffectLine,
}

type song struct {
	track  int
	danger bool
}

type Manager struct {
	backend Backend
	logger  *slog.Logger
	rate    int

	track                          int
	playing, paused, muted, danger bool
	songs                          map[song][]byte
	effects                        map[Effect][]byte
}

// New returns a silent manager. A nil logger discards everything.
func New(b Backend, l *slog.Logger) *Manager {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.SetVolume(Volume)
	return &Manager{
		backend: b,
		logger:  l,
		rate:    SampleRate,
		songs:   make(map[song][]byte),
		effects: make(map[Effect][]byte),
	}
}

func (m *Manager) Track() Track  { return Tracks[m.track] }
func (m *Manager) Playing() bool { return m.playing && !m.paused }
func (m *Manager) Muted() bool   { return m.muted }
func (m *Manager) Danger() bool  { return m.danger }

// Handle applies the actions meant for the music: MuteToggle and
// ChangeTrack. Other actions are ignored.
func (m *Manager) Handle(a tetris.Action) {
	switch a {
	case tetris.MuteToggle:
		m.muted = !m.muted
		if m.muted {
			m.backend.SetVolume(0)
		} else {
			m.backend.SetVolume(Volume)
		}
	case tetris.ChangeTrack:
		if !m.playing {
			return
		}
		m.track = (m.track + 1) % len(Tracks)
		m.play()
	}
}

// Update follows a snapshot: the events start, pause and stop the music and
// trigger one effect, and the danger flag sets the tempo.
func (m *Manager) Update(s *tetris.Snapshot) {
	for _, e := range s.Events {
		switch e.Kind {
		case tetris.EventStart:
			m.track = 0
			m.danger = false
			m.paused = false
			m.play()
		case tetris.EventPause:
			m.paused = true
			m.backend.PauseLoop()
		case tetris.EventResume:
			m.paused = false
			m.backend.ResumeLoop()
		case tetris.EventGameOver:
			m.playing = false
			m.danger = false
			m.backend.PauseLoop()
		}
	}

	if e, ok := effectFor(s.Events); ok {
		m.effect(e)
	}

	if m.playing && s.Phase == tetris.Running && s.Danger != m.danger {
		m.danger = s.Danger
		m.logger.Debug("music tempo changed", slog.Bool("danger", m.danger))
		m.play()
	}
}

// effectFor picks the effect of a batch of events; the channel plays one
// at a time so the most important one wins.
func effectFor(events []tetris.Event) (Effect, bool) {
	var (
		best  Effect
		found bool
	)
	for _, e := range events {
		if fx, ok := eventEffects[e.Kind]; ok && (!found || fx > best) {
			best, found = fx, true
		}
	}
	return best, found
}

func (m *Manager) play() {
	key := song{track: m.track, danger: m.danger}
	pcm, ok := m.songs[key]
	if !ok {
		t := Tracks[m.track]
		speed := 1.0
		if m.danger {
			speed = t.Danger
		}
		var err error
		if pcm, err = t.Render(speed, m.rate); err != nil {
			m.logger.Error("unable to render track", slog.String("track", t.Name), slog.String("error", err.Error()))
			return
		}
		m.songs[key] = pcm
	}
	if err := m.backend.PlayLoop(pcm); err != nil {
		m.logger.Error("unable to play track", slog.String("track", Tracks[m.track].Name), slog.String("error", err.Error()))
		return
	}
	m.playing = true
	if m.paused {
		m.backend.PauseLoop()
	}
}

func (m *Manager) effect(e Effect) {
	pcm, ok := m.effects[e]
	if !ok {
		pcm = e.Render(m.rate)
		m.effects[e] = pcm
	}
	if err := m.backend.PlayEffect(pcm); err != nil {
		m.logger.Error("unable to play effect", slog.Int("effect", int(e)), slog.String("error", err.Error()))
	}
}
