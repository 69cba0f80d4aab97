package board

import "strconv"

// CellState is the player-visible state of a cell
type CellState uint8

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// Cell is the value held at one grid position
type Cell struct {
	HasMine       bool
	AdjacentMines int // 0..8, valid once mines are placed
	State         CellState
}

// Pos addresses a cell by row and column, both zero-based
type Pos struct {
	Row, Col int
}

// CellUpdate reports the new value of a cell changed by a single action
type CellUpdate struct {
	Pos
	Cell
}
