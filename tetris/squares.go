package tetris

import "slices"

const (
	squareSize = 4

	// GoldPoints and SilverPoints are awarded for every cleared row holding
	// a cell of a gold or silver square.
	GoldPoints   = 500
	SilverPoints = 200
)

// Square is a 4x4 region of the stack that was built out of exactly four
// whole pieces and has been merged into a single bonus block.
type Square struct {
	Row, Col int
	// Gold is set when the four pieces had the same shape.
	Gold bool
}

// MergeSquares turns every 4x4 region made of four complete locked pieces
// into a Gold or Silver square and returns the merged regions.
//
//	.	0 1 2 3			.	0 1 2 3
//	16	J J J T			16	G G G G
//	17	J T T T		->	17	G G G G
//	18	L L L O			18	G G G G
//	19	L O O O			19	G G G G
//
// (with two O pieces this is a silver square: the shapes are not all equal).
func (g *Grid) MergeSquares() []Square {
	var merged []Square
	for row := 0; row+squareSize <= g.height; row++ {
		for col := 0; col+squareSize <= g.width; col++ {
			sq, ok := g.squareAt(row, col)
			if !ok {
				continue
			}
			tag := Silver
			if sq.Gold {
				tag = Gold
			}
			for r := row; r < row+squareSize; r++ {
				for c := col; c < col+squareSize; c++ {
					g.cells[r][c] = tag
					g.pieces[r][c] = 0
				}
			}
			merged = append(merged, sq)
		}
	}
	return merged
}

func (g *Grid) squareAt(row, col int) (Square, bool) {
	inside := make(map[int]int, squareSize)
	var tags []Shape
	for r := row; r < row+squareSize; r++ {
		for c := col; c < col+squareSize; c++ {
			id := g.pieces[r][c]
			if id == 0 {
				// empty, or already part of a square.
				return Square{}, false
			}
			if inside[id] == 0 {
				tags = append(tags, g.cells[r][c])
			}
			inside[id]++
		}
	}
	for id, n := range inside {
		if n != 4 || g.pieceSize(id) != 4 {
			return Square{}, false
		}
	}
	gold := true
	for _, t := range tags[1:] {
		if t != tags[0] {
			gold = false
		}
	}
	return Square{Row: row, Col: col, Gold: gold}, true
}

func (g *Grid) pieceSize(id int) int {
	n := 0
	for _, r := range g.pieces {
		for _, p := range r {
			if p == id {
				n++
			}
		}
	}
	return n
}

// rowBonus returns the square bonus for clearing the given rows.
func (g *Grid) rowBonus(rows []int) int {
	points := 0
	for _, r := range rows {
		switch {
		case slices.Contains(g.cells[r], Gold):
			points += GoldPoints
		case slices.Contains(g.cells[r], Silver):
			points += SilverPoints
		}
	}
	return points
}
