package game

import (
	"fmt"
	"strings"

	"github.com/lox/minesweeper/internal/board"
)

// Difficulty describes a board size and mine count. Only the built-in
// presets carry a Key and are ranked on the leaderboard.
type Difficulty struct {
	Key    string
	Name   string
	Height int
	Width  int
	Mines  int
}

// Built-in presets
var (
	Beginner     = Difficulty{Key: "beginner", Name: "Beginner", Height: 9, Width: 9, Mines: 15}
	Intermediate = Difficulty{Key: "intermediate", Name: "Intermediate", Height: 16, Width: 16, Mines: 40}
	Expert       = Difficulty{Key: "expert", Name: "Expert", Height: 16, Width: 30, Mines: 99}
)

// Presets returns the built-in difficulties, easiest first
func Presets() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Expert}
}

// Keys returns the leaderboard keys of the built-in difficulties
func Keys() []string {
	presets := Presets()
	keys := make([]string, len(presets))
	for i, d := range presets {
		keys[i] = d.Key
	}
	return keys
}

// Lookup finds a built-in difficulty by key, ignoring case
func Lookup(key string) (Difficulty, bool) {
	for _, d := range Presets() {
		if strings.EqualFold(d.Key, strings.TrimSpace(key)) {
			return d, true
		}
	}
	return Difficulty{}, false
}

// Custom returns an unranked difficulty after checking it against the board
// limits
func Custom(height, width, mines int) (Difficulty, error) {
	d := Difficulty{Name: "Custom", Height: height, Width: width, Mines: mines}
	if err := d.Validate(); err != nil {
		return Difficulty{}, err
	}
	return d, nil
}

// Ranked reports whether winning times are recorded on the leaderboard
func (d Difficulty) Ranked() bool {
	return d.Key != ""
}

func (d Difficulty) Validate() error {
	return board.Validate(d.Height, d.Width, d.Mines)
}

func (d Difficulty) String() string {
	return fmt.Sprintf("%s (%dx%d, %d mines)", d.Name, d.Height, d.Width, d.Mines)
}
