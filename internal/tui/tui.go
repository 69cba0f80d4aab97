// Package tui is the terminal front-end, built on Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/minesweeper/internal/board"
	"github.com/lox/minesweeper/internal/game"
	"github.com/lox/minesweeper/internal/leaderboard"
)

type mode int

const (
	modePlay mode = iota
	modeName      // asking for a name after a qualifying win
	modeScores
)

// tickMsg refreshes the timer
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubble Tea model for the game screen
type Model struct {
	engine *game.Engine
	logger *log.Logger

	keys      KeyMap
	help      help.Model
	nameInput textinput.Model

	difficulty game.Difficulty
	cursor     board.Pos
	mode       mode

	message  string
	isError  bool
	quitting bool

	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithPlayerName pre-fills the name prompt
func WithPlayerName(name string) Option {
	return func(m *Model) {
		m.nameInput.SetValue(name)
	}
}

func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// New creates the model and starts a game at the given difficulty
func New(engine *game.Engine, d game.Difficulty, opts ...Option) (*Model, error) {
	ti := textinput.New()
	ti.Placeholder = leaderboard.Anonymous
	ti.CharLimit = leaderboard.MaxNameLength
	ti.Width = leaderboard.MaxNameLength
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "Name: "

	m := &Model{
		engine:    engine,
		logger:    log.New(io.Discard),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		nameInput: ti,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithPrefix("tui")

	if err := m.newGame(d); err != nil {
		return nil, err
	}
	return m, nil
}

// Init starts the timer tick
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()

	case tea.WindowSizeMsg:
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeName:
			return m.updateName(msg)
		case modeScores:
			if key.Matches(msg, m.keys.Quit) && msg.String() == "q" {
				m.quitting = true
				return m, tea.Quit
			}
			m.mode = modePlay
			return m, nil
		default:
			return m.updatePlay(msg)
		}
	}

	return m, nil
}

func (m *Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.move(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.move(0, 1)
	case key.Matches(msg, m.keys.Reveal):
		return m, m.reveal()
	case key.Matches(msg, m.keys.Chord):
		return m, m.chord()
	case key.Matches(msg, m.keys.Flag):
		m.flag()
	case key.Matches(msg, m.keys.NewGame):
		m.startGame(m.difficulty)
	case key.Matches(msg, m.keys.Beginner):
		m.startGame(game.Beginner)
	case key.Matches(msg, m.keys.Intermediate):
		m.startGame(game.Intermediate)
	case key.Matches(msg, m.keys.Expert):
		m.startGame(game.Expert)
	case key.Matches(msg, m.keys.Scores):
		if m.engine.Leaderboard() != nil {
			m.mode = modeScores
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		name := m.nameInput.Value()
		if err := m.engine.SubmitScore(name); err != nil {
			if !errors.Is(err, leaderboard.ErrInvalidInput) {
				m.logger.Error("Failed to save score", "error", err)
			}
			m.setError(err)
			return m, nil
		}
		m.nameInput.Blur()
		m.mode = modeScores
		m.setMessage("Time saved")
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.engine.DiscardScore()
		m.nameInput.Blur()
		m.mode = modePlay
		m.setMessage("Time not saved. Press n for a new game.")
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) startGame(d game.Difficulty) {
	if err := m.newGame(d); err != nil {
		m.setError(err)
	}
}

func (m *Model) newGame(d game.Difficulty) error {
	if err := m.engine.NewGame(d); err != nil {
		return err
	}
	m.difficulty = d
	m.cursor = board.Pos{Row: d.Height / 2, Col: d.Width / 2}
	m.mode = modePlay
	m.setMessage("")
	m.logger.Debug("New game", "difficulty", d.Name)
	return nil
}

func (m *Model) move(dr, dc int) {
	v := m.engine.Board()
	m.cursor.Row = max(0, min(m.cursor.Row+dr, v.Height()-1))
	m.cursor.Col = max(0, min(m.cursor.Col+dc, v.Width()-1))
}

// reveal opens the cell under the cursor, or chords it when already open
func (m *Model) reveal() tea.Cmd {
	if cell, _ := m.engine.Board().Cell(m.cursor.Row, m.cursor.Col); cell.State == board.Revealed {
		return m.chord()
	}
	res, err := m.engine.Reveal(m.cursor.Row, m.cursor.Col)
	if err != nil {
		m.setError(err)
		return nil
	}
	return m.settle(res)
}

func (m *Model) chord() tea.Cmd {
	res, err := m.engine.Chord(m.cursor.Row, m.cursor.Col)
	if err != nil {
		m.setError(err)
		return nil
	}
	return m.settle(res)
}

func (m *Model) flag() {
	if _, err := m.engine.ToggleFlag(m.cursor.Row, m.cursor.Col); err != nil {
		m.setError(err)
		return
	}
	m.setMessage("")
}

func (m *Model) settle(res game.RevealResult) tea.Cmd {
	m.logger.Debug("Revealed cells", "count", len(res.Updates), "outcome", res.Outcome)
	switch res.Outcome {
	case game.OutcomeLost:
		m.setAlert("Boom! You hit a mine. Press n for a new game.")
	case game.OutcomeWon:
		st := m.engine.Status()
		m.setMessage(fmt.Sprintf("Board cleared in %ds!", min(int(st.Elapsed/time.Second), leaderboard.MaxSeconds)))
		switch {
		case st.ScorePending && st.Qualifies:
			m.mode = modeName
			m.message += " New best time, enter your name."
			return m.nameInput.Focus()
		case st.ScorePending:
			m.engine.DiscardScore()
		}
	default:
		m.setMessage("")
	}
	return nil
}

func (m *Model) setMessage(msg string) {
	m.message = msg
	m.isError = false
}

func (m *Model) setError(err error) {
	m.setAlert(err.Error())
}

func (m *Model) setAlert(msg string) {
	m.message = msg
	m.isError = true
}

// View renders the game screen
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.engine.Status()
	sections := []string{
		HeaderStyle.Render(" " + st.Difficulty.String() + " "),
		m.renderCounters(st),
		m.renderBoard(st.Status),
	}

	if m.message != "" {
		style := SuccessStyle
		if m.isError {
			style = ErrorStyle
		}
		sections = append(sections, style.Render(m.message))
	}

	switch m.mode {
	case modeName:
		sections = append(sections, m.nameInput.View(), m.help.ShortHelpView([]key.Binding{m.keys.Confirm, m.keys.Cancel}))
	case modeScores:
		sections = append(sections,
			RenderScores(m.engine.Leaderboard(), 5, game.Presets()...),
			InfoStyle.Render("press any key to return"))
	default:
		sections = append(sections, m.help.View(m.keys))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderCounters(st game.State) string {
	face := ":)"
	switch st.Status {
	case game.Won:
		face = "B)"
	case game.Lost:
		face = "X("
	}
	seconds := min(int(st.Elapsed/time.Second), leaderboard.MaxSeconds)
	return fmt.Sprintf("%s  %s  %s",
		CounterStyle.Render(fmt.Sprintf("%03d", st.RemainingMines)),
		WarningStyle.Render(face),
		CounterStyle.Render(fmt.Sprintf("%03d", seconds)))
}

// renderBoard draws the grid with the cursor cell between brackets
func (m *Model) renderBoard(status game.Status) string {
	var s strings.Builder
	for row, cells := range m.engine.Board().Rows() {
		onRow := row == m.cursor.Row
		for col, cell := range cells {
			switch {
			case onRow && col == m.cursor.Col:
				s.WriteString(CursorStyle.Render("["))
			case onRow && col == m.cursor.Col+1:
				s.WriteString(CursorStyle.Render("]"))
			default:
				s.WriteByte(' ')
			}
			s.WriteString(renderCell(cell, status))
		}
		if onRow && m.cursor.Col == len(cells)-1 {
			s.WriteString(CursorStyle.Render("]"))
		} else {
			s.WriteByte(' ')
		}
		s.WriteByte('\n')
	}
	return strings.TrimSuffix(s.String(), "\n")
}

func renderCell(cell board.Cell, status game.Status) string {
	switch cell.State {
	case board.Hidden:
		return HiddenStyle.Render("·")
	case board.Flagged:
		if status == game.Lost && !cell.HasMine {
			return MineStyle.Render("X")
		}
		return FlagStyle.Render("F")
	}
	switch {
	case cell.HasMine:
		return MineStyle.Render("*")
	case cell.AdjacentMines == 0:
		return " "
	default:
		return NumberStyles[cell.AdjacentMines].Render(fmt.Sprint(cell.AdjacentMines))
	}
}

// Run shows the game until the player quits or ctx is cancelled
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
