package tui

import (
	"os"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/lox/minesweeper/internal/board"
	"github.com/lox/minesweeper/internal/game"
	"github.com/lox/minesweeper/internal/leaderboard"
	"github.com/lox/minesweeper/internal/randutil"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, d game.Difficulty, opts ...Option) (*Model, *leaderboard.Leaderboard) {
	t.Helper()
	lb := leaderboard.New(leaderboard.NewMemoryStore())
	engine := game.NewEngine(lb,
		game.WithClock(quartz.NewMock(t)),
		game.WithRand(randutil.New(99)))
	m, err := New(engine, d, opts...)
	require.NoError(t, err)
	return m, lb
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func cellAt(m *Model, p board.Pos) board.Cell {
	c, _ := m.engine.Board().Cell(p.Row, p.Col)
	return c
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// winGame reveals every safe cell through the UI
func winGame(t *testing.T, m *Model) {
	t.Helper()
	press(m, "enter")
	for row, cells := range m.engine.Board().Rows() {
		for col, cell := range cells {
			if cell.HasMine {
				continue
			}
			p := board.Pos{Row: row, Col: col}
			if cellAt(m, p).State != board.Hidden {
				continue
			}
			m.cursor = p
			press(m, "enter")
		}
	}
	require.Equal(t, game.Won, m.engine.Status().Status)
}

func TestCursorMovement(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, game.Beginner)
	assert.Equal(t, board.Pos{Row: 4, Col: 4}, m.cursor)

	press(m, "h", "h", "left", "left", "left", "left")
	assert.Equal(t, board.Pos{Row: 4, Col: 0}, m.cursor, "cursor stops at the edge")

	press(m, "j", "down", "l")
	assert.Equal(t, board.Pos{Row: 6, Col: 1}, m.cursor)

	press(m, "k", "up", "up", "up", "up", "up", "up", "right")
	assert.Equal(t, board.Pos{Row: 0, Col: 2}, m.cursor)
}

func TestRevealAndFlag(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, game.Beginner)
	assert.Contains(t, m.View(), "015  :)  000")

	press(m, "enter")
	assert.Equal(t, board.Revealed, cellAt(m, m.cursor).State)
	assert.Equal(t, game.Running, m.engine.Status().Status)

	// flag a hidden cell
	var hidden board.Pos
	for row, cells := range m.engine.Board().Rows() {
		for col, cell := range cells {
			if cell.State == board.Hidden {
				hidden = board.Pos{Row: row, Col: col}
			}
		}
	}
	m.cursor = hidden
	press(m, "f")
	assert.Equal(t, board.Flagged, cellAt(m, hidden).State)
	assert.Contains(t, m.View(), "014")
	assert.Contains(t, m.View(), "[F]")

	// revealing a flagged cell is refused
	press(m, "enter")
	assert.Equal(t, board.Flagged, cellAt(m, hidden).State)
	assert.True(t, m.isError)
	assert.Contains(t, m.message, "invalid move")

	press(m, "f")
	assert.Equal(t, board.Hidden, cellAt(m, hidden).State)
	assert.Empty(t, m.message)
}

func TestLoseShowsMines(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, game.Beginner)
	press(m, "enter")

	var mine board.Pos
	for row, cells := range m.engine.Board().Rows() {
		for col, cell := range cells {
			if cell.HasMine {
				mine = board.Pos{Row: row, Col: col}
			}
		}
	}
	m.cursor = mine
	press(m, "enter")

	assert.Equal(t, game.Lost, m.engine.Status().Status)
	view := m.View()
	assert.Contains(t, view, "X(")
	assert.Contains(t, view, "Boom!")
	assert.Equal(t, 15, strings.Count(view, "*"))

	press(m, "n")
	assert.Equal(t, game.Ready, m.engine.Status().Status)
	assert.Contains(t, m.View(), ":)")
}

func TestWinPromptsForName(t *testing.T) {
	t.Parallel()
	m, lb := newTestModel(t, game.Beginner)
	winGame(t, m)

	require.Equal(t, modeName, m.mode)
	assert.Contains(t, m.View(), "B)")
	assert.Contains(t, m.View(), "Name:")

	// q is typed, not a quit
	typeText(m, "Quinn")
	press(m, "enter")

	assert.Equal(t, modeScores, m.mode)
	entries := slices.Collect(lb.TopEntries("beginner", 0))
	require.Len(t, entries, 1)
	assert.Equal(t, "Quinn", entries[0].Name)
	assert.Contains(t, m.View(), "Quinn")

	press(m, "x")
	assert.Equal(t, modePlay, m.mode)
}

func TestWinInvalidNameKeepsPrompt(t *testing.T) {
	t.Parallel()
	m, lb := newTestModel(t, game.Beginner)
	winGame(t, m)

	typeText(m, "a,b")
	press(m, "enter")
	assert.Equal(t, modeName, m.mode)
	assert.True(t, m.isError)
	assert.Empty(t, slices.Collect(lb.TopEntries("beginner", 0)))

	press(m, "esc")
	assert.Equal(t, modePlay, m.mode)
	assert.False(t, m.engine.Status().ScorePending)
}

func TestPlayerNamePrefill(t *testing.T) {
	t.Parallel()
	m, lb := newTestModel(t, game.Beginner, WithPlayerName("Robin"))
	winGame(t, m)
	press(m, "enter")

	entries := slices.Collect(lb.TopEntries("beginner", 0))
	require.Len(t, entries, 1)
	assert.Equal(t, "Robin", entries[0].Name)
}

func TestCustomWinDoesNotPrompt(t *testing.T) {
	t.Parallel()
	d, err := game.Custom(1, 2, 1)
	require.NoError(t, err)
	m, _ := newTestModel(t, d)

	press(m, "enter")
	assert.Equal(t, game.Won, m.engine.Status().Status)
	assert.Equal(t, modePlay, m.mode)
	assert.Contains(t, m.message, "Board cleared")
}

func TestSwitchDifficulty(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, game.Beginner)

	press(m, "3")
	assert.Equal(t, game.Expert, m.engine.Status().Difficulty)
	assert.Equal(t, 30, m.engine.Board().Width())
	assert.Equal(t, board.Pos{Row: 8, Col: 15}, m.cursor)

	press(m, "enter", "n")
	assert.Equal(t, game.Expert, m.engine.Status().Difficulty)
	assert.Equal(t, game.Ready, m.engine.Status().Status)

	press(m, "2")
	assert.Equal(t, game.Intermediate, m.engine.Status().Difficulty)
	press(m, "1")
	assert.Equal(t, game.Beginner, m.engine.Status().Difficulty)
}

func TestScoresScreen(t *testing.T) {
	t.Parallel()
	m, lb := newTestModel(t, game.Beginner)
	require.NoError(t, lb.Submit("expert", "Sam", 321))

	press(m, "s")
	require.Equal(t, modeScores, m.mode)
	view := m.View()
	assert.Contains(t, view, "Sam")
	assert.Contains(t, view, "321s")
	assert.Contains(t, view, "no times yet")

	press(m, "s")
	assert.Equal(t, modePlay, m.mode)
}

func TestQuit(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, game.Beginner)
	assert.False(t, isQuit(press(m, "j")))
	assert.True(t, isQuit(press(m, "q")))
	assert.Empty(t, m.View())

	m, _ = newTestModel(t, game.Beginner)
	winGame(t, m)
	assert.True(t, isQuit(press(m, "ctrl+c")), "ctrl+c quits from the name prompt")
}

func TestTickKeepsTicking(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, game.Beginner)
	assert.NotNil(t, m.Init())
	_, cmd := m.Update(tickMsg{})
	assert.NotNil(t, cmd)
}

func TestHelpToggle(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, game.Beginner)
	assert.NotContains(t, m.View(), "chord")
	press(m, "?")
	assert.Contains(t, m.View(), "chord")
}

func TestRenderScores(t *testing.T) {
	t.Parallel()
	lb := leaderboard.New(leaderboard.NewMemoryStore())
	require.NoError(t, lb.Submit("beginner", "Alice", 50))
	require.NoError(t, lb.Submit("beginner", "Bob", 30))

	out := RenderScores(lb, 0, game.Beginner, game.Intermediate)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "Beginner")
	assert.Contains(t, lines[1], "1. Bob")
	assert.Contains(t, lines[1], "30s")
	assert.Contains(t, lines[2], "2. Alice")
	assert.Empty(t, lines[3])
	assert.Contains(t, lines[4], "Intermediate")
	assert.Contains(t, lines[5], "no times yet")
}
