// Package palette holds the colors of every shape, for the terminal and the
// window front-ends.
package palette

import (
	"fmt"
	"image/color"

	"tetris/tetris"
)

// ANSI foreground codes.
const (
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"
	Gold    = "38;5;220"
	Silver  = "37"
)

var ansi = map[tetris.Shape]string{
	tetris.I:      Cyan,
	tetris.J:      Blue,
	tetris.L:      Orange,
	tetris.O:      Yellow,
	tetris.S:      Green,
	tetris.Z:      Red,
	tetris.T:      Magenta,
	tetris.Gold:   Gold,
	tetris.Silver: Silver,
}

var rgba = map[tetris.Shape]color.RGBA{
	tetris.I:      {0x00, 0xff, 0xff, 0xff},
	tetris.O:      {0xff, 0xff, 0x00, 0xff},
	tetris.T:      {0xaa, 0x00, 0xff, 0xff},
	tetris.S:      {0x00, 0xff, 0x00, 0xff},
	tetris.Z:      {0xff, 0x00, 0x00, 0xff},
	tetris.J:      {0x00, 0x00, 0xff, 0xff},
	tetris.L:      {0xff, 0x55, 0x00, 0xff},
	tetris.Gold:   {0xff, 0xd6, 0x00, 0xff},
	tetris.Silver: {0xbf, 0xbf, 0xbf, 0xff},
}

// Background is the color of the empty stack.
var Background = color.RGBA{0x33, 0x33, 0x33, 0xff}

// ANSI returns the terminal color code of a shape, false for empty cells and
// unknown tags.
func ANSI(s tetris.Shape) (string, bool) {
	c, ok := ansi[s]
	return c, ok
}

// Cell renders a two character wide block in the shape's color, or two
// spaces for an empty cell.
func Cell(s tetris.Shape) string {
	c, ok := ansi[s]
	if !ok {
		return "  "
	}
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", c)
}

// RGBA returns the color of a shape. Unknown tags are gray.
func RGBA(s tetris.Shape) color.RGBA {
	if c, ok := rgba[s]; ok {
		return c
	}
	return color.RGBA{0x80, 0x80, 0x80, 0xff}
}

// Highlight is the lighter edge of a beveled block.
func Highlight(c color.RGBA) color.RGBA {
	lift := func(v uint8) uint8 { return uint8(min(int(v)+0x66, 0xff)) }
	return color.RGBA{lift(c.R), lift(c.G), lift(c.B), 0xff}
}

// Shadow is the darker edge of a beveled block.
func Shadow(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 2, c.G / 2, c.B / 2, 0xff}
}

// Ghost is the translucent color of the landing preview.
func Ghost(c color.RGBA) color.RGBA {
	// premultiplied alpha, 30%.
	scale := func(v uint8) uint8 { return uint8(int(v) * 77 / 255) }
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), 77}
}
