package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/minesweeper/internal/board"
	"github.com/lox/minesweeper/internal/leaderboard"
)

// FlagResult is the effect of a flag toggle
type FlagResult struct {
	State board.CellState
}

// State is an Engine snapshot: the session's Snapshot plus leaderboard
// status for a finished game
type State struct {
	Snapshot
	ScorePending bool // a ranked game was won and its time not yet submitted
	Qualifies    bool // the pending time would make the leaderboard
}

// Engine drives the current game for a front-end. It owns at most one
// session and submits winning times to the leaderboard it was given.
type Engine struct {
	leaderboard *leaderboard.Leaderboard
	opts        options
	logger      *log.Logger

	session      *Session
	scorePending bool
}

// NewEngine creates an engine with no game in progress. A nil leaderboard
// leaves every game unranked. The options apply to every session the engine
// creates.
func NewEngine(lb *leaderboard.Leaderboard, opts ...Option) *Engine {
	o := buildOptions(opts)
	return &Engine{
		leaderboard: lb,
		opts:        o,
		logger:      o.logger.WithPrefix("engine"),
	}
}

// NewGame replaces the current session. On an invalid difficulty the
// previous session stays in place.
func (e *Engine) NewGame(d Difficulty) error {
	s, err := newSession(d, e.opts)
	if err != nil {
		return err
	}
	e.session = s
	e.scorePending = false
	e.logger.Info("Started game", "game", s.ID(), "difficulty", d.Name)
	return nil
}

func (e *Engine) current() (*Session, error) {
	if e.session == nil {
		return nil, fmt.Errorf("%w: no game in progress", ErrInvalidMove)
	}
	return e.session, nil
}

func (e *Engine) Reveal(row, col int) (RevealResult, error) {
	s, err := e.current()
	if err != nil {
		return RevealResult{}, err
	}
	res, err := s.Reveal(row, col)
	if err != nil {
		return RevealResult{}, err
	}
	e.afterMove(res)
	return res, nil
}

func (e *Engine) Chord(row, col int) (RevealResult, error) {
	s, err := e.current()
	if err != nil {
		return RevealResult{}, err
	}
	res, err := s.Chord(row, col)
	if err != nil {
		return RevealResult{}, err
	}
	e.afterMove(res)
	return res, nil
}

func (e *Engine) afterMove(res RevealResult) {
	switch res.Outcome {
	case OutcomeWon:
		d := e.session.Difficulty()
		e.scorePending = e.leaderboard != nil && d.Ranked()
		e.logger.Info("Game won", "game", e.session.ID(), "difficulty", d.Name, "seconds", e.session.ElapsedSeconds())
	case OutcomeLost:
		e.logger.Info("Game lost", "game", e.session.ID(), "seconds", e.session.ElapsedSeconds())
	}
}

func (e *Engine) ToggleFlag(row, col int) (FlagResult, error) {
	s, err := e.current()
	if err != nil {
		return FlagResult{}, err
	}
	state, err := s.ToggleFlag(row, col)
	if err != nil {
		return FlagResult{}, err
	}
	return FlagResult{State: state}, nil
}

// Status returns the current game's snapshot. Before the first NewGame it
// is the zero State.
func (e *Engine) Status() State {
	if e.session == nil {
		return State{}
	}
	st := State{Snapshot: e.session.Status(), ScorePending: e.scorePending}
	if e.scorePending {
		st.Qualifies = e.leaderboard.Qualifies(st.Difficulty.Key, e.session.ElapsedSeconds())
	}
	return st
}

// SubmitScore records the winning time of the current game under name. It
// is accepted once per won ranked game. If the name is rejected or saving
// fails the score stays pending so it can be submitted again.
func (e *Engine) SubmitScore(name string) error {
	if !e.scorePending {
		return fmt.Errorf("%w: no score to submit", ErrInvalidMove)
	}
	key := e.session.Difficulty().Key
	if err := e.leaderboard.Submit(key, name, e.session.ElapsedSeconds()); err != nil {
		if !errors.Is(err, leaderboard.ErrInvalidInput) {
			e.logger.Error("Failed to record score", "game", e.session.ID(), "error", err)
		}
		return err
	}
	e.scorePending = false
	return nil
}

// DiscardScore drops a pending score without recording it
func (e *Engine) DiscardScore() {
	e.scorePending = false
}

// Board returns a read-only view of the current board, or nil before the
// first NewGame
func (e *Engine) Board() View {
	if e.session == nil {
		return nil
	}
	return e.session.Board()
}

// Leaderboard returns the leaderboard scores are submitted to, which may be
// nil
func (e *Engine) Leaderboard() *leaderboard.Leaderboard {
	return e.leaderboard
}
