//go:build tetrisdebug

package tetris

// debug turns on the precondition assertions of the stack. Build with
// -tags tetrisdebug to enable them.
const debug = true
