package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"tetris/palette"
	"tetris/tetris"
)

const (
	ScreenWidth  = 560
	ScreenHeight = 680

	tile      = 30
	smallTile = 16
	bevel     = 3
	boardX    = 30
	boardY    = 50
	panelX    = 360

	// basicfont.Face7x13
	charWidth  = 7
	lineHeight = 18
)

var (
	screenColor  = color.RGBA{0x10, 0x10, 0x10, 0xff}
	textColor    = color.RGBA{0xee, 0xee, 0xee, 0xff}
	dangerColor  = color.RGBA{0xff, 0x30, 0x30, 0xff}
	overlayColor = color.RGBA{0x00, 0x00, 0x00, 0xb0}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(screenColor)
	drawText(screen, g.title(), boardX, 30, textColor)
	g.drawBoard(screen)
	g.drawPanel(screen)
	if lines := overlay(g.snap); len(lines) > 0 {
		rows, cols := size(g.snap)
		vector.DrawFilledRect(screen, boardX, boardY, float32(cols*tile), float32(rows*tile), overlayColor, false)
		y := boardY + rows*tile/2 - len(lines)*lineHeight/2
		for i, l := range lines {
			x := boardX + (cols*tile-len(l)*charWidth)/2
			drawText(screen, l, x, y+i*lineHeight, textColor)
		}
	}
}

func (g *Game) title() string {
	if g.name == "" {
		return "TETRIS"
	}
	return "TETRIS  Player: " + g.name
}

func size(s *tetris.Snapshot) (rows, cols int) {
	if len(s.Stack) == 0 {
		return 0, 0
	}
	return len(s.Stack), len(s.Stack[0])
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	rows, cols := size(g.snap)
	vector.DrawFilledRect(screen, boardX, boardY, float32(cols*tile), float32(rows*tile), palette.Background, false)
	if g.snap.Danger {
		vector.StrokeRect(screen, boardX-2, boardY-2, float32(cols*tile+4), float32(rows*tile+4), 2, dangerColor, false)
	}

	for r, row := range g.snap.Stack {
		for c, s := range row {
			if s != "" {
				drawBlock(screen, boardX+c*tile, boardY+r*tile, tile, palette.RGBA(s))
			}
		}
	}
	if g.snap.Tetromino == nil {
		return
	}
	clr := palette.RGBA(g.snap.Tetromino.Shape)
	if !g.noGhost {
		for _, p := range g.snap.Ghost {
			if p.Row >= 0 {
				vector.DrawFilledRect(screen, float32(boardX+p.Col*tile), float32(boardY+p.Row*tile), tile, tile, palette.Ghost(clr), false)
			}
		}
	}
	for _, p := range g.snap.Cells {
		if p.Row >= 0 {
			drawBlock(screen, boardX+p.Col*tile, boardY+p.Row*tile, tile, clr)
		}
	}
}

// drawBlock draws a beveled square: light on the top left edges, dark on
// the bottom right ones.
func drawBlock(screen *ebiten.Image, x, y, size int, clr color.RGBA) {
	fx, fy, fs := float32(x), float32(y), float32(size)
	vector.DrawFilledRect(screen, fx, fy, fs, fs, palette.Highlight(clr), false)
	vector.DrawFilledRect(screen, fx+bevel, fy+bevel, fs-bevel, fs-bevel, palette.Shadow(clr), false)
	vector.DrawFilledRect(screen, fx+bevel, fy+bevel, fs-2*bevel, fs-2*bevel, clr, false)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	y := boardY + 14
	drawText(screen, "NEXT", panelX, y, textColor)
	var next tetris.Shape
	if len(g.snap.Next) > 0 {
		next = g.snap.Next[0]
	}
	drawPreview(screen, next, panelX, y+10)

	y += 80
	drawText(screen, "HOLD", panelX, y, textColor)
	drawPreview(screen, g.snap.Hold, panelX, y+10)

	y += 90
	for _, l := range hud(g.snap) {
		drawText(screen, l, panelX, y, textColor)
		y += lineHeight
	}

	y += lineHeight
	for _, s := range tetris.Shapes {
		drawBlock(screen, panelX, y-12, 14, palette.RGBA(s))
		drawText(screen, fmt.Sprintf("%4d", g.snap.Statistics[s]), panelX+20, y, textColor)
		y += lineHeight
	}

	y += lineHeight
	if g.snap.Danger {
		drawText(screen, "!! DANGER !!", panelX, y, dangerColor)
	}

	y = ScreenHeight - 5*lineHeight
	for _, l := range help {
		drawText(screen, l, panelX, y, textColor)
		y += lineHeight
	}
}

var help = []string{
	"ENTER start   P pause",
	"ARROWS move   SPACE drop",
	"Z/X rotate    C hold",
	"M mute        N track",
	"F11 fullscreen",
}

func drawPreview(screen *ebiten.Image, s tetris.Shape, x, y int) {
	if s == "" {
		return
	}
	clr := palette.RGBA(s)
	for _, p := range preview(s) {
		drawBlock(screen, x+p.Col*smallTile, y+p.Row*smallTile, smallTile, clr)
	}
}

// preview returns the cells of a shape in its spawn rotation, moved to the
// top left corner.
func preview(s tetris.Shape) []tetris.Point {
	cells := tetris.Offsets(s, 0)
	minRow, minCol := cells[0].Row, cells[0].Col
	for _, c := range cells[1:] {
		minRow = min(minRow, c.Row)
		minCol = min(minCol, c.Col)
	}
	out := make([]tetris.Point, len(cells))
	for i, c := range cells {
		out[i] = tetris.Point{Row: c.Row - minRow, Col: c.Col - minCol}
	}
	return out
}

func hud(s *tetris.Snapshot) []string {
	return []string{
		fmt.Sprintf("SCORE %8d", s.Score),
		fmt.Sprintf("LEVEL %8d", s.Level),
		fmt.Sprintf("LINES %8d", s.LinesClear),
	}
}

// overlay is the text shown over the board, none while playing.
func overlay(s *tetris.Snapshot) []string {
	switch s.Phase {
	case tetris.NotStarted:
		return []string{"Press ENTER to start", "ESC to quit"}
	case tetris.Paused:
		return []string{"PAUSED", "Press P to resume"}
	case tetris.GameOver:
		return []string{"GAME OVER", fmt.Sprintf("Score: %d", s.Score), "Press ENTER to play again"}
	}
	return nil
}

func drawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(screen, s, basicfont.Face7x13, x, y, clr)
}
