//go:build !tetrisdebug

package tetris

const debug = false
