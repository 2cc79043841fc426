// Package ebitenaudio plays the music through an ebiten audio context.
package ebitenaudio

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"tetris/music"
)

// Backend is a music.Backend. There can only be one audio context per
// process, so the caller owns it.
type Backend struct {
	ctx    *audio.Context
	loop   *audio.Player
	effect *audio.Player
	volume float64
}

// New returns a backend on ctx, which must run at music.SampleRate.
func New(ctx *audio.Context) (*Backend, error) {
	if ctx.SampleRate() != music.SampleRate {
		return nil, fmt.Errorf("wanted an audio context at %dHz, got %dHz", music.SampleRate, ctx.SampleRate())
	}
	return &Backend{ctx: ctx, volume: music.Volume}, nil
}

func (b *Backend) PlayLoop(pcm []byte) error {
	b.closeLoop()
	p, err := b.ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm))))
	if err != nil {
		return fmt.Errorf("unable to create music player: %w", err)
	}
	p.SetVolume(b.volume)
	p.Play()
	b.loop = p
	return nil
}

func (b *Backend) PauseLoop() {
	if b.loop != nil {
		b.loop.Pause()
	}
}

func (b *Backend) ResumeLoop() {
	if b.loop != nil {
		b.loop.Play()
	}
}

func (b *Backend) PlayEffect(pcm []byte) error {
	if b.effect != nil {
		b.effect.Pause()
		if err := b.effect.Close(); err != nil {
			return fmt.Errorf("unable to close effect player: %w", err)
		}
	}
	b.effect = b.ctx.NewPlayerFromBytes(pcm)
	b.effect.SetVolume(b.volume)
	b.effect.Play()
	return nil
}

func (b *Backend) SetVolume(v float64) {
	b.volume = v
	for _, p := range []*audio.Player{b.loop, b.effect} {
		if p != nil {
			p.SetVolume(v)
		}
	}
}

// Close stops everything.
func (b *Backend) Close() error {
	b.closeLoop()
	if b.effect != nil {
		return b.effect.Close()
	}
	return nil
}

func (b *Backend) closeLoop() {
	if b.loop == nil {
		return
	}
	b.loop.Pause()
	b.loop.Close() //nolint: errcheck
	b.loop = nil
}

var _ music.Backend = (*Backend)(nil)
