package game

import (
	"fmt"
	"io"
	"iter"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/minesweeper/internal/board"
	"github.com/lox/minesweeper/internal/gameid"
)

// Status is the lifecycle stage of a session
type Status uint8

const (
	Ready   Status = iota // no cell revealed yet, clock not started
	Running               // clock running
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Over reports whether the game has ended
func (s Status) Over() bool {
	return s == Won || s == Lost
}

// Outcome is the effect of a reveal on the game
type Outcome uint8

const (
	OutcomeContinue Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return fmt.Sprintf("unknown(%d)", o)
	}
}

// RevealResult lists the cells changed by a reveal or chord. On a loss the
// remaining mines follow the cells the action opened.
type RevealResult struct {
	Updates []board.CellUpdate
	Outcome Outcome
}

// Snapshot is a point-in-time view of a session
type Snapshot struct {
	Status         Status
	Elapsed        time.Duration
	RemainingMines int // may go negative when more cells are flagged than there are mines
	Revealed       int
	Difficulty     Difficulty
}

// View is the read-only board surface a front-end renders from
type View interface {
	Height() int
	Width() int
	Mines() int
	Cell(row, col int) (board.Cell, bool)
	Rows() iter.Seq2[int, []board.Cell]
}

// Option configures sessions, and the sessions an Engine creates
type Option func(*options)

type options struct {
	clock       quartz.Clock
	rng         *rand.Rand
	logger      *log.Logger
	safeOpening bool
}

// WithClock sets the clock used to time games
func WithClock(clock quartz.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithRand sets the source used for mine placement
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSafeOpening keeps the first revealed cell's neighbours free of mines
func WithSafeOpening(enabled bool) Option {
	return func(o *options) {
		o.safeOpening = enabled
	}
}

func buildOptions(opts []Option) options {
	o := options{
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Session is one game from the first reveal to a win or loss
type Session struct {
	id         string
	difficulty Difficulty
	board      *board.Board
	status     Status

	clock     quartz.Clock
	startedAt time.Time
	stoppedAt time.Time

	logger *log.Logger
}

// NewSession creates a session in the Ready state. The board is validated
// here; mines are placed on the first reveal.
func NewSession(d Difficulty, opts ...Option) (*Session, error) {
	o := buildOptions(opts)
	return newSession(d, o)
}

func newSession(d Difficulty, o options) (*Session, error) {
	boardOpts := []board.Option{board.WithSafeOpening(o.safeOpening)}
	if o.rng != nil {
		boardOpts = append(boardOpts, board.WithRand(o.rng))
	}
	b, err := board.New(d.Height, d.Width, d.Mines, boardOpts...)
	if err != nil {
		return nil, err
	}

	id := gameid.Generate()
	s := &Session{
		id:         id,
		difficulty: d,
		board:      b,
		status:     Ready,
		clock:      o.clock,
		logger:     o.logger.WithPrefix("session").With("game", id),
	}
	s.logger.Debug("New game", "difficulty", d.Name, "height", d.Height, "width", d.Width, "mines", d.Mines)
	return s, nil
}

func (s *Session) ID() string             { return s.id }
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// Board returns a read-only view of the board
func (s *Session) Board() View { return s.board }

// Reveal opens a cell. The first successful reveal starts the clock.
func (s *Session) Reveal(row, col int) (RevealResult, error) {
	if s.status.Over() {
		return RevealResult{}, fmt.Errorf("%w: game is %s", ErrInvalidMove, s.status)
	}
	res, err := s.board.Reveal(row, col)
	if err != nil {
		return RevealResult{}, err
	}
	if s.status == Ready {
		s.status = Running
		s.startedAt = s.clock.Now()
		s.logger.Debug("Clock started", "row", row, "col", col)
	}
	return s.settle(res), nil
}

// Chord opens the neighbours of a satisfied number
func (s *Session) Chord(row, col int) (RevealResult, error) {
	if s.status != Running {
		return RevealResult{}, fmt.Errorf("%w: cannot chord while game is %s", ErrInvalidMove, s.status)
	}
	res, err := s.board.Chord(row, col)
	if err != nil {
		return RevealResult{}, err
	}
	return s.settle(res), nil
}

func (s *Session) settle(res board.RevealResult) RevealResult {
	result := RevealResult{Updates: res.Updates}
	switch {
	case res.HitMine:
		result.Updates = append(result.Updates, s.board.RevealMines()...)
		result.Outcome = OutcomeLost
		s.finish(Lost)
	case s.board.IsSolved():
		result.Outcome = OutcomeWon
		s.finish(Won)
	}
	return result
}

func (s *Session) finish(status Status) {
	s.status = status
	s.stoppedAt = s.clock.Now()
	s.logger.Debug("Game over", "status", status, "elapsed", s.Elapsed())
}

// ToggleFlag flags or unflags a hidden cell. Flagging is allowed before the
// first reveal.
func (s *Session) ToggleFlag(row, col int) (board.CellState, error) {
	if s.status.Over() {
		return board.Hidden, fmt.Errorf("%w: game is %s", ErrInvalidMove, s.status)
	}
	return s.board.ToggleFlag(row, col)
}

// Elapsed is zero before the first reveal, live while running and frozen
// once the game ends
func (s *Session) Elapsed() time.Duration {
	switch s.status {
	case Ready:
		return 0
	case Running:
		return s.clock.Since(s.startedAt)
	default:
		return s.stoppedAt.Sub(s.startedAt)
	}
}

// ElapsedSeconds is Elapsed in whole seconds
func (s *Session) ElapsedSeconds() int {
	return int(s.Elapsed() / time.Second)
}

// RemainingMines is the mine count minus the flag count
func (s *Session) RemainingMines() int {
	return s.board.Mines() - s.board.Flagged()
}

func (s *Session) Status() Snapshot {
	return Snapshot{
		Status:         s.status,
		Elapsed:        s.Elapsed(),
		RemainingMines: s.RemainingMines(),
		Revealed:       s.board.Revealed(),
		Difficulty:     s.difficulty,
	}
}
