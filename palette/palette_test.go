package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"tetris/tetris"
)

func TestEveryShapeHasColors(t *testing.T) {
	for _, s := range append(tetris.Shapes[:], tetris.Gold, tetris.Silver) {
		_, ok := ANSI(s)
		assert.True(t, ok, "ANSI color for %s", s)
		assert.NotEqual(t, color.RGBA{0x80, 0x80, 0x80, 0xff}, RGBA(s), "RGBA color for %s", s)
	}
}

func TestCell(t *testing.T) {
	assert.Equal(t, "  ", Cell(""))
	assert.Equal(t, "\x1b[7m\x1b[34m[]\x1b[0m", Cell(tetris.J))
	assert.Equal(t, "\x1b[7m\x1b[38;5;214m[]\x1b[0m", Cell(tetris.L))
}

func TestBevel(t *testing.T) {
	c := RGBA(tetris.L)
	assert.Equal(t, color.RGBA{0xff, 0xbb, 0x66, 0xff}, Highlight(c))
	assert.Equal(t, color.RGBA{0x7f, 0x2a, 0x00, 0xff}, Shadow(c))

	g := Ghost(c)
	assert.Equal(t, uint8(77), g.A)
	assert.LessOrEqual(t, g.R, g.A, "ghost color must be premultiplied")
}
