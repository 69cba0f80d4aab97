package board

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Board size limits
const (
	MinHeight = 1
	MaxHeight = 23
	MinWidth  = 1
	MaxWidth  = 50
)

// Board owns the grid of cells, the mine layout and per-cell player state.
//
// Mines are placed lazily on the first reveal so that the first revealed cell
// is never a mine. A Board is not safe for concurrent use.
type Board struct {
	height, width, mines int
	cells                []Cell // row-major

	minesPlaced bool
	safeOpening bool
	rng         *rand.Rand

	revealed int // revealed cells without a mine
	flagged  int
}

// Option configures a Board
type Option func(*Board)

// WithRand sets the random source used for mine placement.
// A seeded source makes placement deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(b *Board) {
		b.rng = rng
	}
}

// WithSafeOpening also keeps the neighbours of the first revealed cell free of
// mines, guaranteeing an opening, whenever the board has room for it.
func WithSafeOpening(enabled bool) Option {
	return func(b *Board) {
		b.safeOpening = enabled
	}
}

// Validate checks board dimensions and mine count against the board limits
func Validate(height, width, mines int) error {
	if height < MinHeight || height > MaxHeight {
		return fmt.Errorf("%w: height %d not in [%d, %d]", ErrInvalidConfig, height, MinHeight, MaxHeight)
	}
	if width < MinWidth || width > MaxWidth {
		return fmt.Errorf("%w: width %d not in [%d, %d]", ErrInvalidConfig, width, MinWidth, MaxWidth)
	}
	if maxMines := height*width - 1; mines < 1 || mines > maxMines {
		return fmt.Errorf("%w: mine count %d not in [1, %d]", ErrInvalidConfig, mines, maxMines)
	}
	return nil
}

// New creates a board with every cell hidden and no mines placed yet
func New(height, width, mines int, opts ...Option) (*Board, error) {
	if err := Validate(height, width, mines); err != nil {
		return nil, err
	}

	b := &Board{
		height: height,
		width:  width,
		mines:  mines,
		cells:  make([]Cell, height*width),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return b, nil
}

func (b *Board) Height() int       { return b.height }
func (b *Board) Width() int        { return b.width }
func (b *Board) Mines() int        { return b.mines }
func (b *Board) MinesPlaced() bool { return b.minesPlaced }

// Revealed returns the number of revealed cells that do not hold a mine
func (b *Board) Revealed() int { return b.revealed }

// Flagged returns the number of flagged cells
func (b *Board) Flagged() int { return b.flagged }

// Cell returns the cell at row, col and whether the position is on the board
func (b *Board) Cell(row, col int) (Cell, bool) {
	if !b.inBounds(row, col) {
		return Cell{}, false
	}
	return b.cells[b.index(row, col)], true
}

// Rows yields a copy of every row, top to bottom
func (b *Board) Rows() iter.Seq2[int, []Cell] {
	return func(yield func(int, []Cell) bool) {
		for row := range b.height {
			start := row * b.width
			if !yield(row, append([]Cell(nil), b.cells[start:start+b.width]...)) {
				return
			}
		}
	}
}

// PlaceMines selects the mine layout, keeping the excluded cell (and its
// neighbours when safe opening is enabled) free. It runs exactly once per
// board; Reveal calls it on the first reveal.
func (b *Board) PlaceMines(exclude Pos) error {
	if b.minesPlaced {
		return fmt.Errorf("%w: mines already placed", ErrInvalidMove)
	}
	if !b.inBounds(exclude.Row, exclude.Col) {
		return fmt.Errorf("%w: %d,%d is off the board", ErrInvalidMove, exclude.Row, exclude.Col)
	}

	// Fall back to excluding only the clicked cell when the neighbourhood
	// would leave too few candidates
	excludeNeighbours := false
	if b.safeOpening {
		zone := 1
		b.forEachNeighbour(b.index(exclude.Row, exclude.Col), func(int) { zone++ })
		excludeNeighbours = len(b.cells)-zone >= b.mines
	}

	candidates := make([]int, 0, len(b.cells))
	for row := range b.height {
		for col := range b.width {
			dr, dc := absDiff(row, exclude.Row), absDiff(col, exclude.Col)
			if dr == 0 && dc == 0 {
				continue
			}
			if excludeNeighbours && dr <= 1 && dc <= 1 {
				continue
			}
			candidates = append(candidates, b.index(row, col))
		}
	}

	// Partial Fisher-Yates: pick and swap-remove
	k := len(candidates)
	for range b.mines {
		i := b.rng.IntN(k)
		b.cells[candidates[i]].HasMine = true
		k--
		candidates[i] = candidates[k]
	}

	b.countAdjacent()
	b.minesPlaced = true
	return nil
}

func (b *Board) countAdjacent() {
	for i := range b.cells {
		n := 0
		b.forEachNeighbour(i, func(j int) {
			if b.cells[j].HasMine {
				n++
			}
		})
		b.cells[i].AdjacentMines = n
	}
}

// RevealResult is the outcome of a single reveal action
type RevealResult struct {
	Updates []CellUpdate // cells revealed by this action, in reveal order
	HitMine bool
}

// Reveal opens a hidden cell. A cell with no adjacent mines flood-fills its
// hidden neighbours; flagged cells are never opened. Revealing a flagged or
// already revealed cell fails with ErrInvalidMove and changes nothing.
func (b *Board) Reveal(row, col int) (RevealResult, error) {
	if !b.inBounds(row, col) {
		return RevealResult{}, fmt.Errorf("%w: %d,%d is off the board", ErrInvalidMove, row, col)
	}
	if state := b.cells[b.index(row, col)].State; state != Hidden {
		return RevealResult{}, fmt.Errorf("%w: cannot reveal %s cell at %d,%d", ErrInvalidMove, state, row, col)
	}

	if !b.minesPlaced {
		if err := b.PlaceMines(Pos{Row: row, Col: col}); err != nil {
			return RevealResult{}, err
		}
	}

	return b.open(b.index(row, col)), nil
}

// open reveals cell i, which must be hidden, using a breadth-first work queue
func (b *Board) open(i int) RevealResult {
	var result RevealResult

	if b.cells[i].HasMine {
		b.cells[i].State = Revealed
		result.Updates = append(result.Updates, b.update(i))
		result.HitMine = true
		return result
	}

	b.markRevealed(i)
	result.Updates = append(result.Updates, b.update(i))

	queue := []int{i}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if b.cells[cur].AdjacentMines > 0 {
			continue
		}
		// A zero cell has no mined neighbours, so nothing opened here is a mine
		b.forEachNeighbour(cur, func(j int) {
			if b.cells[j].State != Hidden {
				return
			}
			b.markRevealed(j)
			result.Updates = append(result.Updates, b.update(j))
			queue = append(queue, j)
		})
	}

	return result
}

func (b *Board) markRevealed(i int) {
	b.cells[i].State = Revealed
	b.revealed++
}

// Chord reveals every hidden neighbour of a revealed number once the player
// has flagged as many neighbours as the number shows. It stops at the first
// mine hit.
func (b *Board) Chord(row, col int) (RevealResult, error) {
	if !b.inBounds(row, col) {
		return RevealResult{}, fmt.Errorf("%w: %d,%d is off the board", ErrInvalidMove, row, col)
	}
	i := b.index(row, col)
	cell := b.cells[i]
	if cell.State != Revealed || cell.HasMine || cell.AdjacentMines == 0 {
		return RevealResult{}, fmt.Errorf("%w: nothing to chord at %d,%d", ErrInvalidMove, row, col)
	}

	flags := 0
	var hidden []int
	b.forEachNeighbour(i, func(j int) {
		switch b.cells[j].State {
		case Flagged:
			flags++
		case Hidden:
			hidden = append(hidden, j)
		}
	})
	if flags != cell.AdjacentMines {
		return RevealResult{}, fmt.Errorf("%w: %d flags around a %d at %d,%d", ErrInvalidMove, flags, cell.AdjacentMines, row, col)
	}
	if len(hidden) == 0 {
		return RevealResult{}, fmt.Errorf("%w: no hidden neighbours at %d,%d", ErrInvalidMove, row, col)
	}

	var result RevealResult
	for _, j := range hidden {
		// may already be open from an earlier flood fill
		if b.cells[j].State != Hidden {
			continue
		}
		r := b.open(j)
		result.Updates = append(result.Updates, r.Updates...)
		if r.HitMine {
			result.HitMine = true
			break
		}
	}
	return result, nil
}

// ToggleFlag flips a cell between hidden and flagged and returns the new state
func (b *Board) ToggleFlag(row, col int) (CellState, error) {
	if !b.inBounds(row, col) {
		return Hidden, fmt.Errorf("%w: %d,%d is off the board", ErrInvalidMove, row, col)
	}
	cell := &b.cells[b.index(row, col)]
	switch cell.State {
	case Hidden:
		cell.State = Flagged
		b.flagged++
	case Flagged:
		cell.State = Hidden
		b.flagged--
	default:
		return cell.State, fmt.Errorf("%w: cannot flag revealed cell at %d,%d", ErrInvalidMove, row, col)
	}
	return cell.State, nil
}

// RevealMines exposes every mine not yet revealed, including flagged ones
func (b *Board) RevealMines() []CellUpdate {
	var updates []CellUpdate
	for i := range b.cells {
		cell := &b.cells[i]
		if !cell.HasMine || cell.State == Revealed {
			continue
		}
		if cell.State == Flagged {
			b.flagged--
		}
		cell.State = Revealed
		updates = append(updates, b.update(i))
	}
	return updates
}

// IsSolved reports whether every cell without a mine is revealed.
// Flags play no part in winning.
func (b *Board) IsSolved() bool {
	return b.revealed == len(b.cells)-b.mines
}

// String renders the board for debugging: # hidden, F flagged, * mine,
// . empty, digits for counts.
func (b *Board) String() string {
	var s strings.Builder
	for row := range b.height {
		for col := range b.width {
			if col > 0 {
				s.WriteByte(' ')
			}
			cell := b.cells[b.index(row, col)]
			switch {
			case cell.State == Hidden:
				s.WriteByte('#')
			case cell.State == Flagged:
				s.WriteByte('F')
			case cell.HasMine:
				s.WriteByte('*')
			case cell.AdjacentMines == 0:
				s.WriteByte('.')
			default:
				s.WriteString(strconv.Itoa(cell.AdjacentMines))
			}
		}
		s.WriteByte('\n')
	}
	return s.String()
}

func (b *Board) update(i int) CellUpdate {
	return CellUpdate{Pos: Pos{Row: i / b.width, Col: i % b.width}, Cell: b.cells[i]}
}

func (b *Board) index(row, col int) int {
	return row*b.width + col
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// forEachNeighbour calls fn with the index of each of the up to 8 cells
// around i. There is no wraparound at the edges.
func (b *Board) forEachNeighbour(i int, fn func(j int)) {
	row, col := i/b.width, i%b.width
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if b.inBounds(r, c) {
				fn(b.index(r, c))
			}
		}
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
