package tetris

import (
	"math"
	"time"
)

// Config holds the rules of a session.
type Config struct {
	Width, Height int
	// StartLevel is the level a new game begins at. The level never goes
	// below it.
	StartLevel    int
	LinesPerLevel int
	// MinGravity is the shortest time between two gravity ticks.
	MinGravity time.Duration
	// SoftDropInterval is the gravity used while soft drop is held, when
	// it's faster than the level's.
	SoftDropInterval time.Duration
	// SquareBonus enables merging 4x4 squares of whole pieces.
	SquareBonus bool
	// DangerHeight is the stack height from which Snapshot.Danger is set.
	DangerHeight int
	// Preview is how many upcoming shapes the snapshot shows.
	Preview int
}

// DefaultConfig returns the standard 10x20 rules.
func DefaultConfig() Config {
	return Config{
		Width:            10,
		Height:           20,
		StartLevel:       1,
		LinesPerLevel:    10,
		MinGravity:       20 * time.Millisecond,
		SoftDropInterval: 50 * time.Millisecond,
		SquareBonus:      true,
		DangerHeight:     12,
		Preview:          1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width <= 0 || c.Height <= 0 {
		c.Width, c.Height = d.Width, d.Height
	}
	if c.StartLevel < 1 {
		c.StartLevel = d.StartLevel
	}
	if c.LinesPerLevel <= 0 {
		c.LinesPerLevel = d.LinesPerLevel
	}
	if c.MinGravity <= 0 {
		c.MinGravity = d.MinGravity
	}
	if c.SoftDropInterval <= 0 {
		c.SoftDropInterval = d.SoftDropInterval
	}
	if c.DangerHeight <= 0 {
		c.DangerHeight = d.DangerHeight
	}
	if c.Preview < 0 {
		c.Preview = 0
	}
	return c
}

// lineScores is indexed by the number of rows cleared at once. Multi-row
// clears are worth more than the same rows cleared one by one.
// https://tetris.wiki/Scoring
var lineScores = [5]int{0, 100, 300, 500, 800}

// maxSpeedLevel is where gravity stops getting faster.
const maxSpeedLevel = 20

// LineScore returns the points for clearing n rows at once at a level.
func LineScore(n, level int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(lineScores) {
		n = len(lineScores) - 1
	}
	return lineScores[n] * level
}

// levelFor returns the level after lines have been cleared. The level only
// goes up, so a game started at a higher level keeps it until the lines
// catch up.
func levelFor(current, lines, perLevel int) int {
	l := lines/perLevel + 1
	if l < current {
		return current
	}
	return l
}

// Gravity returns the time the piece takes to fall one row at a level,
// based on https://tetris.wiki/Marathon
//
//	Time = (0.8-((Level-1)*0.007))^(Level-1)
//
// The result never goes below floor.
func Gravity(level int, floor time.Duration) time.Duration {
	switch {
	case level < 1:
		level = 1
	case level > maxSpeedLevel:
		level = maxSpeedLevel
	}
	seconds := math.Pow(0.8-float64(level-1)*0.007, float64(level-1))
	d := time.Duration(seconds * float64(time.Second))
	if d < floor {
		return floor
	}
	return d
}
