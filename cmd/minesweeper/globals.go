package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/minesweeper/internal/config"
	"github.com/lox/minesweeper/internal/game"
	"github.com/lox/minesweeper/internal/leaderboard"
)

// Globals are the flags shared by every command
type Globals struct {
	Config string `short:"c" default:"minesweeper.hcl" env:"MINESWEEPER_CONFIG" help:"Path to the HCL config file"`
	Debug  bool   `help:"Log at debug level"`
}

// setup loads the config and opens the log file. The returned func closes
// the log file.
func (g *Globals) setup() (*config.Config, *log.Logger, func(), error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config %s: %w", g.Config, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config %s: %w", g.Config, err)
	}

	// The UI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := cfg.LogLevel()
	if g.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(logFile, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "minesweeper",
	})

	closeLog := func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}
	return cfg, logger, closeLog, nil
}

// openLeaderboard loads every ranked difficulty from the configured directory
func openLeaderboard(cfg *config.Config, logger *log.Logger) *leaderboard.Leaderboard {
	lb := leaderboard.New(leaderboard.NewFileStore(cfg.Leaderboard.Dir),
		leaderboard.WithLimit(cfg.Leaderboard.Size),
		leaderboard.WithLogger(logger))
	lb.Load(game.Keys()...)
	return lb
}

// rankedDifficulties resolves an optional --difficulty filter to the ranked
// difficulties it names
func rankedDifficulties(key string) ([]game.Difficulty, error) {
	if key == "" {
		return game.Presets(), nil
	}
	d, ok := game.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("unknown difficulty %q: only beginner, intermediate and expert are ranked", key)
	}
	return []game.Difficulty{d}, nil
}
