package board

import "errors"

var (
	// ErrInvalidConfig is returned when board dimensions or mine count are out of bounds.
	ErrInvalidConfig = errors.New("invalid board config")

	// ErrInvalidMove is returned when an action targets a cell that is not eligible for it.
	// The board is left unchanged.
	ErrInvalidMove = errors.New("invalid move")
)
