package music

import "time"

// Track is a melody played in a loop.
type Track struct {
	Name string
	// Tempo in quarter notes per minute.
	Tempo int
	Wave  Wave
	// Danger is how much faster the track plays while the stack is high.
	Danger float64
	Melody string
}

const korobeiniki = `
E5:2 B4:1 C5:1 D5:2 C5:1 B4:1  A4:2 A4:1 C5:1 E5:2 D5:1 C5:1
B4:3 C5:1 D5:2 E5:2            C5:2 A4:2 A4:2 R:2
D5:3 F5:1 A5:2 G5:1 F5:1       E5:3 C5:1 E5:2 D5:1 C5:1
B4:2 B4:1 C5:1 D5:2 E5:2       C5:2 A4:2 A4:2 R:2`

const arpeggios = `
A4:2 C5:2 E5:2 A5:2  G5:2 E5:2 C5:2 E5:2  F5:2 D5:2 B4:2 D5:2  E5:4 R:4
A4:2 C5:2 E5:2 A5:2  B5:2 G5:2 E5:2 G5:2  A5:2 E5:2 C5:2 B4:2  A4:4 R:4`

// Tracks are cycled through with ChangeTrack. The first one plays when a
// game starts.
var Tracks = []Track{
	{Name: "Type A handheld", Tempo: 150, Wave: Pulse(0.125), Danger: 1.5, Melody: korobeiniki},
	{Name: "Type A", Tempo: 150, Wave: Pulse(0.5), Danger: 2, Melody: korobeiniki},
	{Name: "Type B", Tempo: 130, Wave: Triangle, Danger: 1.25, Melody: arpeggios},
}

// gap is the share of every note left silent so repeated notes are heard.
const gap = 0.1

// Render returns one loop of the track played speed times faster.
func (t Track) Render(speed float64, rate int) ([]byte, error) {
	notes, err := parseMelody(t.Melody)
	if err != nil {
		return nil, err
	}
	eighth := float64(time.Minute) / float64(t.Tempo*2) / speed
	tones := make([]tone, 0, 2*len(notes))
	for _, n := range notes {
		d := eighth * float64(n.eighths)
		tones = append(tones,
			tone{from: n.freq, to: n.freq, d: time.Duration(d * (1 - gap)), wave: t.Wave},
			tone{d: time.Duration(d * gap)},
		)
	}
	return render(tones, rate), nil
}

// Effect is a short sound played when something happens in the game.
type Effect int

const (
	EffectMove Effect = iota
	EffectRotate
	EffectPause
	EffectLock
	EffectDrop
	EffectLine
)

var effects = map[Effect][]tone{
	EffectMove:   {{from: 440, to: 440, d: 25 * time.Millisecond, wave: Pulse(0.5)}},
	EffectRotate: {{from: 660, to: 880, d: 40 * time.Millisecond, wave: Pulse(0.25)}},
	EffectPause: {
		{from: 880, to: 880, d: 60 * time.Millisecond, wave: Pulse(0.5)},
		{d: 30 * time.Millisecond},
		{from: 660, to: 660, d: 80 * time.Millisecond, wave: Pulse(0.5)},
	},
	EffectLock: {{from: 180, to: 120, d: 60 * time.Millisecond, wave: Triangle}},
	EffectDrop: {{from: 600, to: 120, d: 120 * time.Millisecond, wave: Pulse(0.5)}},
	EffectLine: {
		{from: 523.25, to: 523.25, d: 50 * time.Millisecond, wave: Pulse(0.25)},
		{from: 659.26, to: 659.26, d: 50 * time.Millisecond, wave: Pulse(0.25)},
		{from: 783.99, to: 783.99, d: 50 * time.Millisecond, wave: Pulse(0.25)},
		{from: 1046.5, to: 1046.5, d: 100 * time.Millisecond, wave: Pulse(0.25)},
	},
}

// Render returns the PCM of the effect.
func (e Effect) Render(rate int) []byte {
	return render(effects[e], rate)
}
