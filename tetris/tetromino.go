package tetris

// Shape identifies a tetromino type. It is also the tag stored in every
// occupied cell of the stack: an empty string is an empty cell.
type Shape string

const (
	I Shape = "I"
	J Shape = "J"
	L Shape = "L"
	O Shape = "O"
	S Shape = "S"
	T Shape = "T"
	Z Shape = "Z"

	// Gold and Silver tag the cells of a merged 4x4 square. They are
	// reserved: a cleared row holding either scores a bonus, so no other
	// tag may use these characters.
	Gold   Shape = "*"
	Silver Shape = "+"
)

// Shapes lists the seven playable tetrominoes.
var Shapes = [7]Shape{I, O, T, S, Z, J, L}

// Point is a position on the stack. Row 0 is the top row.
type Point struct {
	Row, Col int
}

// Offsets are relative to the anchor, which is the top left corner of the
// tetromino's bounding box (4x4 for I, 3x3 for the rest). Rotation states are
// 0, R, 2, L in clockwise order.
var offsets = map[Shape][4][4]Point{
	/*
		.	0		R		2		L
		0	. . . .	. . O .	. . . .	. O . .
		1	O O O O	. . O .	. . . .	. O . .
		2	. . . .	. . O .	O O O O	. O . .
		3	. . . .	. . O .	. . . .	. O . .
	*/
	I: {
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	},
	/*
		.	0 1 2 3
		0	. O O .
		1	. O O .
	*/
	O: {
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
	},
	/*
		.	0		R		2		L
		0	. O .	. O .	. . .	. O .
		1	O O O	. O O	O O O	O O .
		2	. . .	. O .	. O .	. O .
	*/
	T: {
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
	},
	/*
		.	0		R		2		L
		0	. O O	. O .	. . .	O . .
		1	O O .	. O O	. O O	O O .
		2	. . .	. . O	O O .	. O .
	*/
	S: {
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	/*
		.	0		R		2		L
		0	O O .	. . O	. . .	. O .
		1	. O O	. O O	O O .	O O .
		2	. . .	. O .	. O O	O . .
	*/
	Z: {
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	},
	/*
		.	0		R		2		L
		0	O . .	. O O	. . .	. O .
		1	O O O	. O .	O O O	. O .
		2	. . .	. O .	. . O	O O .
	*/
	J: {
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
	},
	/*
		.	0		R		2		L
		0	. . O	. O .	. . .	O O .
		1	O O O	. O .	O O O	. O .
		2	. . .	. O O	O . .	. O .
	*/
	L: {
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	},
}

// Offsets returns the four occupied cells of shape in the given rotation,
// relative to the piece anchor. The rotation is taken modulo 4. Unknown
// shapes have no cells.
func Offsets(shape Shape, rotation int) [4]Point {
	return offsets[shape][mod4(rotation)]
}

// spawnAnchor is the anchor a new piece is placed at on a stack of the given
// width: horizontally centered, with the piece's top row on row 0.
//
//	.	0 1 2 3 4 5 6 7 8 9
//	0	. . . O O O O . . .		I
//	0	. . . . O O . . . .		O
//	0	. . . O . . . . . .		J
//	1	. . . O O O . . . .
func spawnAnchor(shape Shape, width int) Point {
	col := (width - 4) / 2
	if shape == I {
		// the I's cells sit on the second row of its box.
		return Point{Row: -1, Col: col}
	}
	return Point{Row: 0, Col: col}
}

func mod4(r int) int {
	return ((r % 4) + 4) % 4
}
