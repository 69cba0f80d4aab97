package game

import (
	"slices"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/minesweeper/internal/board"
	"github.com/lox/minesweeper/internal/leaderboard"
	"github.com/lox/minesweeper/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, lb *leaderboard.Leaderboard) (*Engine, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	return NewEngine(lb, WithClock(clock), WithRand(randutil.New(7))), clock
}

// win plays the current game to a win after the given time
func win(t *testing.T, e *Engine, clock *quartz.Mock, elapsed time.Duration) {
	t.Helper()
	_, err := e.Reveal(0, 0)
	require.NoError(t, err)
	if elapsed > 0 {
		advance(t, clock, elapsed)
	}
	if e.Status().Status == Won {
		return
	}
	res := solve(t, e.Board(), e.Reveal)
	require.Equal(t, OutcomeWon, res.Outcome)
}

func TestEngineWithoutGame(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, nil)

	_, err := e.Reveal(0, 0)
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, err = e.Chord(0, 0)
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, err = e.ToggleFlag(0, 0)
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, State{}, e.Status())
	assert.Nil(t, e.Board())
}

func TestEngineNewGameInvalidKeepsSession(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, nil)
	require.NoError(t, e.NewGame(Beginner))
	_, err := e.Reveal(4, 4)
	require.NoError(t, err)

	err = e.NewGame(Difficulty{Name: "Broken", Height: 0, Width: 5, Mines: 1})
	require.ErrorIs(t, err, ErrInvalidConfig)

	st := e.Status()
	assert.Equal(t, Beginner, st.Difficulty)
	assert.Equal(t, Running, st.Status)
}

func TestEngineNewGameResets(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, nil)
	require.NoError(t, e.NewGame(Beginner))
	_, err := e.Reveal(4, 4)
	require.NoError(t, err)

	require.NoError(t, e.NewGame(Expert))
	st := e.Status()
	assert.Equal(t, Ready, st.Status)
	assert.Equal(t, 99, st.RemainingMines)
	assert.Equal(t, 30, e.Board().Width())
}

func TestEngineToggleFlag(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, nil)
	require.NoError(t, e.NewGame(Beginner))

	res, err := e.ToggleFlag(2, 3)
	require.NoError(t, err)
	assert.Equal(t, FlagResult{State: board.Flagged}, res)
	assert.Equal(t, 14, e.Status().RemainingMines)

	_, err = e.ToggleFlag(9, 0)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestEngineSubmitScore(t *testing.T) {
	t.Parallel()
	lb := leaderboard.New(leaderboard.NewMemoryStore(), leaderboard.WithLimit(5))
	e, clock := newTestEngine(t, lb)
	require.NoError(t, e.NewGame(Beginner))

	win(t, e, clock, 42*time.Second)

	st := e.Status()
	assert.Equal(t, Won, st.Status)
	assert.True(t, st.ScorePending)
	assert.True(t, st.Qualifies)

	require.NoError(t, e.SubmitScore("Alice"))
	assert.False(t, e.Status().ScorePending)
	assert.Equal(t, []leaderboard.Entry{{Name: "Alice", Seconds: 42}}, slices.Collect(lb.TopEntries("beginner", 0)))

	err := e.SubmitScore("Alice")
	assert.ErrorIs(t, err, ErrInvalidMove, "a win is recorded once")
	assert.Len(t, slices.Collect(lb.TopEntries("beginner", 0)), 1)
}

func TestEngineSubmitScoreInvalidNameStaysPending(t *testing.T) {
	t.Parallel()
	lb := leaderboard.New(leaderboard.NewMemoryStore())
	e, clock := newTestEngine(t, lb)
	require.NoError(t, e.NewGame(Beginner))
	win(t, e, clock, 10*time.Second)

	err := e.SubmitScore("Smith, J")
	require.ErrorIs(t, err, leaderboard.ErrInvalidInput)
	assert.True(t, e.Status().ScorePending)

	require.NoError(t, e.SubmitScore(""))
	assert.Equal(t, []leaderboard.Entry{{Name: leaderboard.Anonymous, Seconds: 10}}, slices.Collect(lb.TopEntries("beginner", 0)))
}

func TestEngineQualifies(t *testing.T) {
	t.Parallel()
	lb := leaderboard.New(leaderboard.NewMemoryStore(), leaderboard.WithLimit(1))
	require.NoError(t, lb.Submit("beginner", "Fast", 5))

	e, clock := newTestEngine(t, lb)
	require.NoError(t, e.NewGame(Beginner))
	win(t, e, clock, 30*time.Second)

	st := e.Status()
	assert.True(t, st.ScorePending)
	assert.False(t, st.Qualifies)

	e.DiscardScore()
	assert.False(t, e.Status().ScorePending)
	assert.ErrorIs(t, e.SubmitScore("Slow"), ErrInvalidMove)
}

func TestEngineUnrankedGames(t *testing.T) {
	t.Parallel()
	lb := leaderboard.New(leaderboard.NewMemoryStore())
	e, clock := newTestEngine(t, lb)

	custom, err := Custom(1, 2, 1)
	require.NoError(t, err)
	require.NoError(t, e.NewGame(custom))
	win(t, e, clock, 0)

	st := e.Status()
	assert.Equal(t, Won, st.Status)
	assert.False(t, st.ScorePending)
	assert.ErrorIs(t, e.SubmitScore("Alice"), ErrInvalidMove)

	// no leaderboard at all
	e2, clock2 := newTestEngine(t, nil)
	require.NoError(t, e2.NewGame(Beginner))
	win(t, e2, clock2, time.Second)
	assert.False(t, e2.Status().ScorePending)
}

func TestEngineLossHasNoScore(t *testing.T) {
	t.Parallel()
	lb := leaderboard.New(leaderboard.NewMemoryStore())
	e, _ := newTestEngine(t, lb)
	require.NoError(t, e.NewGame(Beginner))

	_, err := e.Reveal(4, 4)
	require.NoError(t, err)
	mines, _ := positions(e.Board())
	res, err := e.Reveal(mines[0].Row, mines[0].Col)
	require.NoError(t, err)
	assert.Equal(t, OutcomeLost, res.Outcome)

	st := e.Status()
	assert.Equal(t, Lost, st.Status)
	assert.False(t, st.ScorePending)
	assert.ErrorIs(t, e.SubmitScore("Alice"), ErrInvalidMove)
}

func TestEngineNewGameClearsPendingScore(t *testing.T) {
	t.Parallel()
	lb := leaderboard.New(leaderboard.NewMemoryStore())
	e, clock := newTestEngine(t, lb)
	require.NoError(t, e.NewGame(Beginner))
	win(t, e, clock, time.Second)
	require.True(t, e.Status().ScorePending)

	require.NoError(t, e.NewGame(Beginner))
	assert.False(t, e.Status().ScorePending)
	assert.ErrorIs(t, e.SubmitScore("Alice"), ErrInvalidMove)
}
