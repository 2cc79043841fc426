package tetris

// Action is a discrete input command. Front-ends translate key presses into
// actions; the session never looks at raw input.
type Action string

const (
	MoveLeft      Action = "left"         // Moves the Tetromino one step to the left.
	MoveRight     Action = "right"        // Moves the Tetromino one step to the right.
	MoveDown      Action = "down"         // Moves the Tetromino one step down, locking it if it can't.
	SoftDropStart Action = "softdrop"     // Speeds gravity up until SoftDropStop.
	SoftDropStop  Action = "softdropstop" // Back to the level's gravity.
	DropDown      Action = "drop"         // Drops the Tetromino down the stack and locks it.
	RotateRight   Action = "rotatecw"     // Rotates the Tetromino clockwise.
	RotateLeft    Action = "rotateccw"    // Rotates the Tetromino counter-clockwise.
	HoldPiece     Action = "hold"         // Swaps the Tetromino with the held one.
	PauseToggle   Action = "pause"        // Pauses or resumes the game.
	StartNewGame  Action = "start"        // Starts a game from the lobby or after a game over.

	// MuteToggle and ChangeTrack are for the music player. The session
	// ignores them.
	MuteToggle  Action = "mute"
	ChangeTrack Action = "track"
)

// EventKind tells what happened in a session.
type EventKind int

const (
	EventStart EventKind = iota
	EventMove
	EventRotate
	EventSoftDrop
	EventHardDrop
	EventLock
	EventClear
	EventSquare
	EventLevelUp
	EventHold
	EventPause
	EventResume
	EventGameOver
)

var eventNames = [...]string{
	EventStart:    "start",
	EventMove:     "move",
	EventRotate:   "rotate",
	EventSoftDrop: "softdrop",
	EventHardDrop: "harddrop",
	EventLock:     "lock",
	EventClear:    "clear",
	EventSquare:   "square",
	EventLevelUp:  "levelup",
	EventHold:     "hold",
	EventPause:    "pause",
	EventResume:   "resume",
	EventGameOver: "gameover",
}

func (k EventKind) String() string {
	if int(k) < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is a notification for collaborators that react to the game, like
// sound effects. Rows and Points are set for EventClear, Level for
// EventLevelUp and Square for EventSquare.
type Event struct {
	Kind   EventKind
	Rows   []int
	Points int
	Level  int
	Square Square
}
