package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/lox/minesweeper/internal/config"
	"github.com/lox/minesweeper/internal/game"
	"github.com/lox/minesweeper/internal/randutil"
	"github.com/lox/minesweeper/internal/tui"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"
)

type PlayCmd struct {
	Difficulty  string `short:"d" help:"beginner, intermediate, expert or a preset from the config file"`
	Height      int    `help:"Rows of a custom board"`
	Width       int    `help:"Columns of a custom board"`
	Mines       int    `help:"Mines on a custom board"`
	Seed        int64  `help:"Seed for mine placement (0 picks one)"`
	SafeOpening bool   `help:"Keep the first revealed cell's neighbours free of mines"`
	Name        string `help:"Name to suggest when recording a time (defaults to $USER)"`
	NoColor     bool   `help:"Disable colours"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, logger, closeLog, err := g.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	d, err := c.difficulty(cfg)
	if err != nil {
		return err
	}

	seed := c.seed(cfg)
	logger.Info("Starting", "difficulty", d.Name, "seed", seed)

	engine := game.NewEngine(openLeaderboard(cfg, logger),
		game.WithClock(quartz.NewReal()),
		game.WithRand(randutil.New(seed)),
		game.WithLogger(logger),
		game.WithSafeOpening(c.SafeOpening || cfg.Game.SafeOpening))

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model, err := tui.New(engine, d,
		tui.WithLogger(logger),
		tui.WithPlayerName(c.playerName()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer stop()
		return tui.Run(ctx, model)
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Debug("Shutting down", "cause", context.Cause(ctx))
		return nil
	})
	return group.Wait()
}

// difficulty picks the board from the custom size flags, --difficulty or
// the config file, in that order
func (c *PlayCmd) difficulty(cfg *config.Config) (game.Difficulty, error) {
	if c.Height != 0 || c.Width != 0 || c.Mines != 0 {
		if c.Height == 0 || c.Width == 0 || c.Mines == 0 {
			return game.Difficulty{}, fmt.Errorf("--height, --width and --mines must be given together")
		}
		return game.Custom(c.Height, c.Width, c.Mines)
	}
	name := c.Difficulty
	if name == "" {
		name = cfg.Game.Difficulty
	}
	return cfg.Difficulty(name)
}

func (c *PlayCmd) seed(cfg *config.Config) int64 {
	switch {
	case c.Seed != 0:
		return c.Seed
	case cfg.Game.Seed != 0:
		return cfg.Game.Seed
	default:
		return randutil.Seed()
	}
}

func (c *PlayCmd) playerName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return os.Getenv("USER")
}
