package tetris

// Wall kicks follow the SRS tables from https://tetris.wiki/Super_Rotation_System.
// The wiki lists them as (x, y) with y pointing up; here they are stored as
// row/col deltas, so every y is negated. Each list is tried in order and the
// first candidate that doesn't collide wins. The first entry is always the
// plain rotation.
//
// Keys are "from state" * 4 + "to state", states being 0, R(1), 2, L(3).
var kicksJLSTZ = map[int][]Point{
	0*4 + 1: {{0, 0}, {0, -1}, {-1, -1}, {2, 0}, {2, -1}},  // 0>R
	1*4 + 0: {{0, 0}, {0, 1}, {1, 1}, {-2, 0}, {-2, 1}},    // R>0
	1*4 + 2: {{0, 0}, {0, 1}, {1, 1}, {-2, 0}, {-2, 1}},    // R>2
	2*4 + 1: {{0, 0}, {0, -1}, {-1, -1}, {2, 0}, {2, -1}},  // 2>R
	2*4 + 3: {{0, 0}, {0, 1}, {-1, 1}, {2, 0}, {2, 1}},     // 2>L
	3*4 + 2: {{0, 0}, {0, -1}, {1, -1}, {-2, 0}, {-2, -1}}, // L>2
	3*4 + 0: {{0, 0}, {0, -1}, {1, -1}, {-2, 0}, {-2, -1}}, // L>0
	0*4 + 3: {{0, 0}, {0, 1}, {-1, 1}, {2, 0}, {2, 1}},     // 0>L
}

var kicksI = map[int][]Point{
	0*4 + 1: {{0, 0}, {0, -2}, {0, 1}, {1, -2}, {-2, 1}},  // 0>R
	1*4 + 0: {{0, 0}, {0, 2}, {0, -1}, {-1, 2}, {2, -1}},  // R>0
	1*4 + 2: {{0, 0}, {0, -1}, {0, 2}, {-2, -1}, {1, 2}},  // R>2
	2*4 + 1: {{0, 0}, {0, 1}, {0, -2}, {2, 1}, {-1, -2}},  // 2>R
	2*4 + 3: {{0, 0}, {0, 2}, {0, -1}, {-1, 2}, {2, -1}},  // 2>L
	3*4 + 2: {{0, 0}, {0, -2}, {0, 1}, {1, -2}, {-2, 1}},  // L>2
	3*4 + 0: {{0, 0}, {0, 1}, {0, -2}, {2, 1}, {-1, -2}},  // L>0
	0*4 + 3: {{0, 0}, {0, -1}, {0, 2}, {-2, -1}, {1, 2}},  // 0>L
}

// Kicks returns the ordered candidate offsets for rotating shape from one
// rotation state to another. The O piece has none: it doesn't rotate.
func Kicks(shape Shape, from, to int) []Point {
	key := mod4(from)*4 + mod4(to)
	switch shape {
	case O:
		return nil
	case I:
		return kicksI[key]
	default:
		return kicksJLSTZ[key]
	}
}
