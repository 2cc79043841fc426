package tetris

// Piece is a falling tetromino: its shape, rotation state and the position of
// its anchor on the stack.
type Piece struct {
	Shape    Shape
	Rotation int
	Row, Col int
}

// Cells returns the stack positions the piece occupies.
func (p Piece) Cells() [4]Point {
	cells := Offsets(p.Shape, p.Rotation)
	for i := range cells {
		cells[i].Row += p.Row
		cells[i].Col += p.Col
	}
	return cells
}

func (p Piece) moved(dRow, dCol int) Piece {
	p.Row += dRow
	p.Col += dCol
	return p
}

// Direction of a rotation.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// HoldResult is the outcome of a hold request.
type HoldResult int

const (
	// HoldRefused means nothing changed: hold was already used since the last
	// spawn, or the held piece doesn't fit at the spawn position.
	HoldRefused HoldResult = iota
	// HoldSwapped means the current piece went to the hold slot and a new one
	// is falling.
	HoldSwapped
	// HoldToppedOut means the slot was empty, the current piece was held and
	// the piece drawn to replace it could not spawn.
	HoldToppedOut
)

// Controller moves the active piece around the stack. Every operation takes
// the grid as a read-only collision oracle and either applies a change
// completely or leaves the piece untouched.
type Controller struct {
	current  *Piece
	held     Shape
	holdUsed bool
}

// Current returns a copy of the active piece, or nil when there is none.
func (c *Controller) Current() *Piece {
	if c.current == nil {
		return nil
	}
	p := *c.current
	return &p
}

// Held returns the shape in the hold slot, empty when nothing is held.
func (c *Controller) Held() Shape { return c.held }

// CanHold reports whether Hold may be used for the active piece.
func (c *Controller) CanHold() bool { return c.current != nil && !c.holdUsed }

func (c *Controller) reset() {
	c.current = nil
	c.held = ""
	c.holdUsed = false
}

// TrySpawn puts a new piece of the given shape at its spawn position. It
// returns false, leaving no active piece, when the spawn cells are taken:
// the stack has reached the top.
func (c *Controller) TrySpawn(g *Grid, shape Shape) bool {
	if !c.place(g, shape) {
		return false
	}
	c.holdUsed = false
	return true
}

// place spawns without touching the hold flag.
func (c *Controller) place(g *Grid, shape Shape) bool {
	a := spawnAnchor(shape, g.Width())
	p := Piece{Shape: shape, Row: a.Row, Col: a.Col}
	if g.collides(p.Cells()) {
		c.current = nil
		return false
	}
	c.current = &p
	return true
}

// TryMove shifts the piece by dRow rows down and dCol columns right.
func (c *Controller) TryMove(g *Grid, dRow, dCol int) bool {
	if c.current == nil {
		return false
	}
	next := c.current.moved(dRow, dCol)
	if g.collides(next.Cells()) {
		return false
	}
	*c.current = next
	return true
}

// TryRotate rotates the piece a quarter turn. When the rotated piece
// collides, the kick candidates are tried in order before giving up.
func (c *Controller) TryRotate(g *Grid, dir Direction) bool {
	if c.current == nil {
		return false
	}
	from := c.current.Rotation
	to := mod4(from + int(dir))
	for _, k := range Kicks(c.current.Shape, from, to) {
		next := c.current.moved(k.Row, k.Col)
		next.Rotation = to
		if !g.collides(next.Cells()) {
			*c.current = next
			return true
		}
	}
	return false
}

// SoftDropTick moves the piece one row down. False means it has landed and
// must be locked.
func (c *Controller) SoftDropTick(g *Grid) bool {
	return c.TryMove(g, 1, 0)
}

// HardDrop moves the piece down until it lands and returns how many rows it
// fell. The caller locks it right after.
func (c *Controller) HardDrop(g *Grid) int {
	n := 0
	for c.TryMove(g, 1, 0) {
		n++
	}
	return n
}

// Ghost returns the piece as it would land if dropped now.
func (c *Controller) Ghost(g *Grid) *Piece {
	if c.current == nil {
		return nil
	}
	p := *c.current
	for !g.collides(p.moved(1, 0).Cells()) {
		p = p.moved(1, 0)
	}
	return &p
}

// Hold swaps the active piece with the hold slot. With an empty slot the
// active piece is stored and draw supplies the next one. Hold works once per
// spawn: pieces coming out of the hold slot or drawn by it don't reset the
// flag, only TrySpawn does.
func (c *Controller) Hold(g *Grid, draw func() Shape) HoldResult {
	if !c.CanHold() {
		return HoldRefused
	}
	current := c.current.Shape
	if c.held == "" {
		c.held = current
		c.holdUsed = true
		if !c.place(g, draw()) {
			return HoldToppedOut
		}
		return HoldSwapped
	}

	prev := c.current
	if !c.place(g, c.held) {
		c.current = prev
		return HoldRefused
	}
	c.held = current
	c.holdUsed = true
	return HoldSwapped
}

// take removes the active piece, returning it.
func (c *Controller) take() *Piece {
	p := c.current
	c.current = nil
	return p
}
