package tetris

import (
	"fmt"
	"slices"
)

// Grid is the playfield: a fixed size matrix of cells, row-major, with row 0
// at the top. An empty Shape is an empty cell, anything else is the tag of
// the piece that was locked there.
type Grid struct {
	width, height int
	cells         [][]Shape
	// pieces holds the id of the locked piece each cell came from. Merged
	// squares and empty cells have id 0.
	pieces [][]int
	lastID int
}

// NewGrid returns an empty grid. Its dimensions never change afterwards.
func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height}
	g.Reset()
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Reset empties every cell.
func (g *Grid) Reset() {
	g.cells = make([][]Shape, g.height)
	g.pieces = make([][]int, g.height)
	for i := range g.cells {
		g.cells[i] = make([]Shape, g.width)
		g.pieces[i] = make([]int, g.width)
	}
	g.lastID = 0
}

// At returns the tag of a cell, or an empty Shape when out of bounds.
func (g *Grid) At(row, col int) Shape {
	if !g.inBounds(row, col) {
		return ""
	}
	return g.cells[row][col]
}

// IsOccupied reports whether a piece cell may not be at row, col: every
// position outside the grid counts as occupied.
func (g *Grid) IsOccupied(row, col int) bool {
	if !g.inBounds(row, col) {
		return true
	}
	return g.cells[row][col] != ""
}

// collides reports whether any of the cells is occupied.
func (g *Grid) collides(cells [4]Point) bool {
	for _, c := range cells {
		if g.IsOccupied(c.Row, c.Col) {
			return true
		}
	}
	return false
}

// Place marks every in-bounds cell as occupied with tag. The caller must have
// checked that none of the cells collide; Place does not check it again.
func (g *Grid) Place(cells []Point, tag Shape) {
	g.lastID++
	for _, c := range cells {
		if !g.inBounds(c.Row, c.Col) {
			continue
		}
		if debug && g.cells[c.Row][c.Col] != "" {
			panic(fmt.Sprintf("tetris: placing %s over occupied cell %d,%d", tag, c.Row, c.Col))
		}
		g.cells[c.Row][c.Col] = tag
		g.pieces[c.Row][c.Col] = g.lastID
	}
}

// FullRows returns the indexes of the rows where every cell is occupied,
// from top to bottom.
func (g *Grid) FullRows() []int {
	var rows []int
	for i, r := range g.cells {
		if !slices.Contains(r, "") {
			rows = append(rows, i)
		}
	}
	return rows
}

// ClearRows removes the given rows and drops everything above them. The rows
// are all removed against the current layout, then the remaining rows are
// compacted to the bottom and empty rows fill the top.
func (g *Grid) ClearRows(rows []int) {
	remove := make([]bool, g.height)
	n := 0
	for _, r := range rows {
		if r >= 0 && r < g.height && !remove[r] {
			remove[r] = true
			n++
		}
	}
	if n == 0 {
		return
	}

	cells := make([][]Shape, g.height)
	pieces := make([][]int, g.height)
	dst := g.height - 1
	for src := g.height - 1; src >= 0; src-- {
		if remove[src] {
			continue
		}
		cells[dst] = g.cells[src]
		pieces[dst] = g.pieces[src]
		dst--
	}
	for ; dst >= 0; dst-- {
		cells[dst] = make([]Shape, g.width)
		pieces[dst] = make([]int, g.width)
	}
	g.cells = cells
	g.pieces = pieces
}

// StackHeight returns how many rows from the bottom up to the highest
// occupied cell. An empty grid has height 0.
func (g *Grid) StackHeight() int {
	for i, r := range g.cells {
		for _, c := range r {
			if c != "" {
				return g.height - i
			}
		}
	}
	return 0
}

// Rows returns a copy of the cells.
func (g *Grid) Rows() [][]Shape {
	rows := make([][]Shape, g.height)
	for i := range g.cells {
		rows[i] = slices.Clone(g.cells[i])
	}
	return rows
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}
