package game

import "github.com/lox/minesweeper/internal/board"

// Errors returned by Session and Engine. Hitting a mine is an outcome, not
// an error.
var (
	ErrInvalidConfig = board.ErrInvalidConfig
	ErrInvalidMove   = board.ErrInvalidMove
)
