// Package config loads minesweeper settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/minesweeper/internal/game"
	"github.com/lox/minesweeper/internal/leaderboard"
)

// DefaultFile is the config file read when no path is given
const DefaultFile = "minesweeper.hcl"

// Config represents the complete minesweeper configuration
type Config struct {
	Game        *GameSettings        `hcl:"game,block"`
	Leaderboard *LeaderboardSettings `hcl:"leaderboard,block"`
	Log         *LogSettings         `hcl:"log,block"`
	Presets     []PresetConfig       `hcl:"preset,block"`
}

// GameSettings controls new games
type GameSettings struct {
	Difficulty  string `hcl:"difficulty,optional"`
	SafeOpening bool   `hcl:"safe_opening,optional"`
	Seed        int64  `hcl:"seed,optional"` // 0 picks a random seed per run
}

// LeaderboardSettings controls where scores are kept
type LeaderboardSettings struct {
	Dir  string `hcl:"dir,optional"`
	Size int    `hcl:"size,optional"`
}

// LogSettings controls the log file. The terminal belongs to the UI, so logs
// never go to stdout.
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// PresetConfig defines an extra, unranked board size
type PresetConfig struct {
	Name   string `hcl:"name,label"`
	Height int    `hcl:"height"`
	Width  int    `hcl:"width"`
	Mines  int    `hcl:"mines"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			Difficulty: game.Beginner.Key,
		},
		Leaderboard: &LeaderboardSettings{
			Dir:  ".",
			Size: leaderboard.DefaultLimit,
		},
		Log: &LogSettings{
			Level: "info",
			File:  "minesweeper.log",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; settings left out of the file keep their default values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.Game.Difficulty == "" {
		c.Game.Difficulty = defaults.Game.Difficulty
	}

	if c.Leaderboard == nil {
		c.Leaderboard = defaults.Leaderboard
	}
	if c.Leaderboard.Dir == "" {
		c.Leaderboard.Dir = defaults.Leaderboard.Dir
	}
	if c.Leaderboard.Size == 0 {
		c.Leaderboard.Size = defaults.Leaderboard.Size
	}

	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Leaderboard.Size < 1 {
		return fmt.Errorf("leaderboard size must be positive")
	}

	seen := make(map[string]bool)
	for _, p := range c.Presets {
		if _, ok := game.Lookup(p.Name); ok {
			return fmt.Errorf("preset %s: name is reserved for a built-in difficulty", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("preset %s: defined more than once", p.Name)
		}
		seen[p.Name] = true
		if err := p.Difficulty().Validate(); err != nil {
			return fmt.Errorf("preset %s: %w", p.Name, err)
		}
	}

	if _, err := c.Difficulty(c.Game.Difficulty); err != nil {
		return err
	}

	return nil
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Difficulty resolves a built-in difficulty key or a preset name
func (c *Config) Difficulty(name string) (game.Difficulty, error) {
	if d, ok := game.Lookup(name); ok {
		return d, nil
	}
	for _, p := range c.Presets {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p.Difficulty(), nil
		}
	}
	return game.Difficulty{}, fmt.Errorf("unknown difficulty: %s", name)
}

// Difficulty returns the preset as an unranked difficulty
func (p PresetConfig) Difficulty() game.Difficulty {
	return game.Difficulty{Name: p.Name, Height: p.Height, Width: p.Width, Mines: p.Mines}
}
