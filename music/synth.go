package music

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// SampleRate is the rate every sound is rendered at. The PCM is signed
// 16-bit little endian stereo, what an ebiten audio context plays.
const SampleRate = 44100

const (
	bytesPerFrame = 4
	amplitude     = 0.25
	attack        = 5 * time.Millisecond
)

// Wave gives the level of a waveform in [-1, 1] at a phase in [0, 1).
type Wave func(phase float64) float64

// Pulse returns a pulse wave that is high for the given share of the
// period. 0.5 is a square.
func Pulse(duty float64) Wave {
	return func(p float64) float64 {
		if p < duty {
			return 1
		}
		return -1
	}
}

func Triangle(p float64) float64 {
	if p < 0.5 {
		return 4*p - 1
	}
	return 3 - 4*p
}

// tone slides from one frequency to another. A zero frequency is silence.
type tone struct {
	from, to float64
	d        time.Duration
	wave     Wave
}

func render(tones []tone, rate int) []byte {
	var n int
	for _, t := range tones {
		n += frames(t.d, rate)
	}
	out := make([]byte, 0, n*bytesPerFrame)
	for _, t := range tones {
		out = t.append(out, rate)
	}
	return out
}

func frames(d time.Duration, rate int) int {
	return int(math.Round(d.Seconds() * float64(rate)))
}

func (t tone) append(out []byte, rate int) []byte {
	n := frames(t.d, rate)
	fade := frames(attack, rate)
	var phase float64
	for i := range n {
		var v float64
		if t.from > 0 {
			f := t.from + (t.to-t.from)*float64(i)/float64(n)
			v = t.wave(phase) * amplitude * envelope(i, n, fade)
			phase += f / float64(rate)
			phase -= math.Floor(phase)
		}
		s := uint16(int16(v * math.MaxInt16))
		out = binary.LittleEndian.AppendUint16(out, s)
		out = binary.LittleEndian.AppendUint16(out, s)
	}
	return out
}

// envelope ramps the first and last frames of a tone so notes don't click.
func envelope(i, n, fade int) float64 {
	if fade == 0 {
		return 1
	}
	switch {
	case i < fade:
		return float64(i) / float64(fade)
	case n-i < fade:
		return float64(n-i) / float64(fade)
	}
	return 1
}

// frequency of a note name like "A4" or "C#5", equal temperament with A4 at
// 440Hz.
func frequency(name string) (float64, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("invalid note %q", name)
	}
	semitone, ok := map[byte]int{'C': -9, 'D': -7, 'E': -5, 'F': -4, 'G': -2, 'A': 0, 'B': 2}[name[0]]
	if !ok {
		return 0, fmt.Errorf("invalid note %q", name)
	}
	rest := name[1:]
	switch rest[0] {
	case '#':
		semitone++
		rest = rest[1:]
	case 'b':
		semitone--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note %q: %w", name, err)
	}
	semitone += (octave - 4) * 12
	return 440 * math.Pow(2, float64(semitone)/12), nil
}

// parseMelody reads notes separated by spaces, each a name and a length in
// eighths like "E5:2", or "R:1" for a rest.
func parseMelody(melody string) ([]note, error) {
	var notes []note
	for _, f := range strings.Fields(melody) {
		name, length, ok := strings.Cut(f, ":")
		if !ok {
			return nil, fmt.Errorf("missing length in %q", f)
		}
		eighths, err := strconv.Atoi(length)
		if err != nil || eighths <= 0 {
			return nil, fmt.Errorf("invalid length in %q", f)
		}
		var freq float64
		if name != "R" {
			if freq, err = frequency(name); err != nil {
				return nil, err
			}
		}
		notes = append(notes, note{freq: freq, eighths: eighths})
	}
	return notes, nil
}

type note struct {
	freq    float64
	eighths int
}
