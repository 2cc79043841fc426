package tetris

import (
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestBag(t *testing.T) {
	t.Run("every set of seven holds each shape once", func(t *testing.T) {
		t.Parallel()
		b := NewBag(seeded(1))
		for range 100 {
			var set []Shape
			for range 7 {
				set = append(set, b.Next())
			}
			slices.Sort(set)
			want := slices.Clone(Shapes[:])
			slices.Sort(want)
			if !reflect.DeepEqual(set, want) {
				t.Fatalf("wanted %v, got %v", want, set)
			}
		}
	})

	t.Run("first draw should always be I, J, L or T", func(t *testing.T) {
		t.Parallel()
		for seed := range uint64(200) {
			b := NewBag(seeded(seed))
			if s := b.Next(); s == O || s == Z || s == S {
				t.Errorf("seed %d: wanted I, J, L, or T, got %v", seed, s)
			}
			b.Next()
			b.Reset()
			if s := b.Next(); s == O || s == Z || s == S {
				t.Errorf("seed %d after reset: wanted I, J, L, or T, got %v", seed, s)
			}
		}
	})

	t.Run("no shape is missing for more than 12 pieces", func(t *testing.T) {
		t.Parallel()
		b := NewBag(seeded(7))
		last := map[Shape]int{}
		for i := range 7000 {
			s := b.Next()
			if prev, ok := last[s]; ok && i-prev-1 > 12 {
				t.Fatalf("%v came back after %d pieces", s, i-prev-1)
			}
			last[s] = i
		}
	})

	t.Run("peek doesn't consume", func(t *testing.T) {
		t.Parallel()
		b := NewBag(seeded(3))
		next := b.Peek(10)
		if len(next) != 10 {
			t.Fatalf("wanted 10 shapes, got %d", len(next))
		}
		for i, want := range next {
			if got := b.Next(); got != want {
				t.Errorf("piece %d: wanted %v, got %v", i, want, got)
			}
		}
	})

	t.Run("same seed same sequence", func(t *testing.T) {
		t.Parallel()
		a, b := NewBag(seeded(9)), NewBag(seeded(9))
		if !reflect.DeepEqual(a.Peek(50), b.Peek(50)) {
			t.Errorf("wanted equal sequences")
		}
	})
}

func TestUniform(t *testing.T) {
	u := NewUniform(seeded(5))
	next := u.Peek(3)
	for i, want := range next {
		if got := u.Next(); got != want {
			t.Errorf("piece %d: wanted %v, got %v", i, want, got)
		}
	}

	seen := map[Shape]int{}
	for range 7000 {
		s := u.Next()
		if !slices.Contains(Shapes[:], s) {
			t.Fatalf("wanted a playable shape, got %q", s)
		}
		seen[s]++
	}
	if len(seen) != 7 {
		t.Errorf("wanted all seven shapes, got %v", seen)
	}
}
