package tetris

import (
	"math/rand/v2"
	"slices"
)

// Generator supplies the sequence of shapes to play.
type Generator interface {
	// Next removes and returns the next shape.
	Next() Shape
	// Peek returns the next n shapes without consuming them.
	Peek(n int) []Shape
	// Reset starts a new sequence, as for a new game.
	Reset()
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Bag is the guideline "random generator": the seven shapes are shuffled and
// dealt one by one, and a new shuffled set is added when they run out. No
// shape waits more than 12 pieces to come back.
// https://tetris.wiki/Random_Generator
type Bag struct {
	rng   *rand.Rand
	bag   []Shape
	fresh bool
}

// NewBag returns a Bag drawing from rng. A nil rng uses a randomly seeded
// source.
func NewBag(rng *rand.Rand) *Bag {
	if rng == nil {
		rng = newRand()
	}
	b := &Bag{rng: rng}
	b.Reset()
	return b
}

func (b *Bag) Reset() {
	b.bag = nil
	b.fresh = true
}

func (b *Bag) Next() Shape {
	b.fill(1)
	s := b.bag[0]
	b.bag = b.bag[1:]
	return s
}

func (b *Bag) Peek(n int) []Shape {
	b.fill(n)
	return slices.Clone(b.bag[:n])
}

// fill appends shuffled sets until at least n shapes are queued.
func (b *Bag) fill(n int) {
	for len(b.bag) < n {
		set := Shapes
		b.rng.Shuffle(len(set), func(i, j int) { set[i], set[j] = set[j], set[i] })
		if b.fresh {
			// the first piece of a game is never an S, Z or O, so the
			// player is never forced into an overhang right away.
			for i, s := range set {
				if s != S && s != Z && s != O {
					set[0], set[i] = set[i], set[0]
					break
				}
			}
			b.fresh = false
		}
		b.bag = append(b.bag, set[:]...)
	}
}

// Uniform draws every shape independently with the same probability. It
// gives no fairness bound: a shape can be missing for any number of pieces.
type Uniform struct {
	rng   *rand.Rand
	queue []Shape
}

// NewUniform returns a Uniform generator. A nil rng uses a randomly seeded
// source.
func NewUniform(rng *rand.Rand) *Uniform {
	if rng == nil {
		rng = newRand()
	}
	return &Uniform{rng: rng}
}

func (u *Uniform) Reset() { u.queue = nil }

func (u *Uniform) Next() Shape {
	u.fill(1)
	s := u.queue[0]
	u.queue = u.queue[1:]
	return s
}

func (u *Uniform) Peek(n int) []Shape {
	u.fill(n)
	return slices.Clone(u.queue[:n])
}

func (u *Uniform) fill(n int) {
	for len(u.queue) < n {
		u.queue = append(u.queue, Shapes[u.rng.IntN(len(Shapes))])
	}
}
