// Package core is the falling-block puzzle engine: board, piece catalog with
// SRS kicks, bag randomizer with preview, and the frame-stepped game state
// machine. It has no I/O, no wall clock and no global state.
package core
